package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/search"
)

type SearchHandler struct {
	Status    *atomic.Value // search.Status
	RunSearch func(ctx context.Context, q domain.SearchQuery) ([]domain.JobRecord, error)
	RawSearch func(ctx context.Context, provider string, q domain.SearchQuery) (json.RawMessage, error)
}

type searchRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`
	Pages    int    `json:"pages"`
}

type searchResponse struct {
	TotalJobs int                `json:"total_jobs"`
	Jobs      []domain.JobRecord `json:"jobs"`
}

// Search handles both GET (query params) and POST (JSON body).
func (h SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	jobs, err := h.RunSearch(r.Context(), q)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "upstream_failed", err.Error())
		return
	}
	if jobs == nil {
		jobs = []domain.JobRecord{} // zero results are a success, serialize as []
	}
	writeJSON(w, searchResponse{TotalJobs: len(jobs), Jobs: jobs})
}

// Raw is the debug passthrough: one provider's first page, untouched.
func (h SearchHandler) Raw(w http.ResponseWriter, r *http.Request) {
	provider := r.URL.Query().Get("provider")
	if provider == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "provider is required")
		return
	}
	q, err := parseSearchQuery(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	raw, err := h.RawSearch(r.Context(), provider, q)
	if err != nil {
		if errors.Is(err, search.ErrUnknownProvider) {
			WriteError(w, r, http.StatusBadRequest, "unknown_provider", err.Error())
			return
		}
		WriteError(w, r, http.StatusBadGateway, "upstream_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func (h SearchHandler) StatusGet(w http.ResponseWriter, r *http.Request) {
	st, _ := h.Status.Load().(search.Status)
	writeJSON(w, st)
}

func parseSearchQuery(r *http.Request) (domain.SearchQuery, error) {
	var req searchRequest

	if r.Method == http.MethodPost {
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&req); err != nil {
			return domain.SearchQuery{}, errors.New("invalid JSON body")
		}
	} else {
		p := r.URL.Query()
		req.Query = p.Get("q")
		if req.Query == "" {
			req.Query = p.Get("query")
		}
		req.Location = p.Get("location")
		req.Limit, _ = strconv.Atoi(p.Get("limit"))
		req.Pages, _ = strconv.Atoi(p.Get("pages"))
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return domain.SearchQuery{}, errors.New("query is required")
	}
	if req.Limit < 0 || req.Pages < 0 {
		return domain.SearchQuery{}, errors.New("limit and pages must be >= 0")
	}

	return domain.SearchQuery{
		Query:    req.Query,
		Location: strings.TrimSpace(req.Location),
		Limit:    req.Limit,
		Pages:    req.Pages,
	}, nil
}
