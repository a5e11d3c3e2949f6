package search

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/events"
)

// Status describes the most recent search run, for /search/status.
type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}

// Runner fans a query out to the enabled providers and merges the
// normalized results. One provider failing is tolerated; all of them
// failing is not.
type Runner struct {
	DB     *sql.DB       // nil disables persistence
	Hub    *events.Hub   // nil disables events
	Status *atomic.Value // stores Status

	// injected for testability
	BuildProviders func(cfg config.Config) ([]domain.Provider, error)
}

func NewRunner(db *sql.DB, hub *events.Hub, status *atomic.Value) *Runner {
	return &Runner{
		DB:             db,
		Hub:            hub,
		Status:         status,
		BuildProviders: Providers,
	}
}

const providerTimeout = 2 * time.Minute

func (r *Runner) Run(ctx context.Context, cfg config.Config, q domain.SearchQuery) ([]domain.JobRecord, error) {
	if q.Limit <= 0 {
		q.Limit = cfg.Search.DefaultLimit
	}
	if q.Pages <= 0 {
		q.Pages = cfg.Search.MaxPages
	}

	providers, err := r.BuildProviders(cfg)
	if err != nil {
		return nil, err
	}

	r.setRunning(true)
	r.publish("", events.TypeSearchStarted, map[string]any{"query": q.Query, "location": q.Location})

	merged, err := r.fanOut(ctx, providers, q)
	if err != nil {
		r.finish(0, err)
		return nil, err
	}

	if len(merged) > q.Limit {
		merged = merged[:q.Limit]
	}

	added := r.persist(ctx, merged)
	r.publish("", events.TypeSearchFinished, map[string]any{"total": len(merged), "added": added})
	r.finish(added, nil)

	return merged, nil
}

func (r *Runner) fanOut(ctx context.Context, providers []domain.Provider, q domain.SearchQuery) ([]domain.JobRecord, error) {
	results := make([][]domain.JobRecord, len(providers))
	errs := make([]error, len(providers))

	var g errgroup.Group
	for i, p := range providers {
		i, p := i, p
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(ctx, providerTimeout)
			defer cancel()

			logrus.WithField("provider", p.Name()).Info("searching")
			recs, err := p.Search(pctx, q)
			if err != nil {
				logrus.WithField("provider", p.Name()).WithError(err).Warn("provider failed")
				errs[i] = err
				return nil // best-effort: don't cancel siblings
			}
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	var firstErr error
	for _, e := range errs {
		if e != nil {
			failed++
			if firstErr == nil {
				firstErr = e
			}
		}
	}
	if failed == len(providers) {
		return nil, fmt.Errorf("all providers failed: %w", firstErr)
	}

	var merged []domain.JobRecord
	for _, batch := range results {
		merged = append(merged, batch...)
	}
	return merged, nil
}

// Raw returns one provider's first upstream page untouched.
func (r *Runner) Raw(ctx context.Context, cfg config.Config, name string, q domain.SearchQuery) (json.RawMessage, error) {
	providers, err := r.BuildProviders(cfg)
	if err != nil {
		return nil, err
	}
	for _, p := range providers {
		if p.Name() != name {
			continue
		}
		rp, ok := p.(domain.RawProvider)
		if !ok {
			return nil, fmt.Errorf("provider %q has no raw passthrough", name)
		}
		return rp.SearchRaw(ctx, q)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
}

var ErrUnknownProvider = errors.New("unknown or disabled provider")

func (r *Runner) persist(ctx context.Context, recs []domain.JobRecord) int {
	if r.DB == nil {
		return 0
	}
	added := 0
	for _, rec := range recs {
		ok, err := insertRecord(ctx, r.DB, rec)
		if err != nil {
			logrus.WithError(err).Warn("persist job")
			continue
		}
		if ok {
			added++
			r.publish("", events.TypeJobStored, map[string]any{"title": rec.Title, "source": rec.Source})
		}
	}
	return added
}

func (r *Runner) publish(reqID, typ string, data any) {
	if r.Hub == nil {
		return
	}
	r.Hub.Publish(events.MakeEvent(reqID, typ, data))
}

func (r *Runner) setRunning(v bool) {
	if r.Status == nil {
		return
	}
	st, _ := r.Status.Load().(Status)
	st.Running = v
	if v {
		st.LastRunAt = time.Now().UTC().Format(time.RFC3339)
		st.LastError = ""
		st.LastAdded = 0
	}
	r.Status.Store(st)
}

func (r *Runner) finish(added int, err error) {
	if r.Status == nil {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	st, _ := r.Status.Load().(Status)
	st.Running = false
	st.LastRunAt = now
	st.LastAdded = added
	if err != nil {
		st.LastError = err.Error()
	} else {
		st.LastError = ""
		st.LastOkAt = now
	}
	r.Status.Store(st)
}
