package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/normalize"
	"jobsearch-engine/internal/provider/httpx"
)

const defaultBaseURL = "https://serpapi.com/search"

type Config struct {
	APIKey       string
	BaseURL      string // override for tests
	GoogleDomain string
	Language     string
	MaxPages     int
	PageDelay    time.Duration // pause between continuation calls
}

// Client queries SerpAPI's google_jobs engine, following the
// next_page_token continuation until the configured page cap.
type Client struct {
	cfg   Config
	hc    *http.Client
	pacer *rate.Limiter
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.GoogleDomain == "" {
		cfg.GoogleDomain = "google.com"
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 1
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = 2 * time.Second
	}
	return &Client{
		cfg: cfg,
		hc:  httpx.NewClient(30 * time.Second),
		// burst 1: the initial token is spent on page 0, so each
		// continuation call waits out the delay
		pacer: rate.NewLimiter(rate.Every(cfg.PageDelay), 1),
	}
}

func (c *Client) Name() string { return "serpapi" }

func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.JobRecord, error) {
	pages := q.Pages
	if pages <= 0 || pages > c.cfg.MaxPages {
		pages = c.cfg.MaxPages
	}

	var out []domain.JobRecord
	nextToken := ""

	for page := 0; page < pages; page++ {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		payload, err := c.fetchPage(ctx, q, nextToken)
		if err != nil {
			return nil, err
		}
		if msg, ok := payload["error"].(string); ok && msg != "" {
			return nil, fmt.Errorf("serpapi: upstream error: %s", msg)
		}

		batch := normalize.ExtractAll(payload["jobs_results"], normalize.DefaultAliases, 0)
		if len(batch) == 0 {
			break
		}
		for i := range batch {
			batch[i].Page = page + 1
			batch[i].Source = c.Name()
			if batch[i].JobLink == "" {
				batch[i].JobLink = searchLink(batch[i])
			}
		}
		out = append(out, batch...)

		nextToken, _ = payload["next_page_token"].(string)
		if nextToken == "" {
			break
		}
	}

	logrus.WithFields(logrus.Fields{"provider": c.Name(), "jobs": len(out)}).Debug("search done")
	return out, nil
}

// SearchRaw fetches the first page and returns the upstream body as-is.
func (c *Client) SearchRaw(ctx context.Context, q domain.SearchQuery) (json.RawMessage, error) {
	res, err := c.get(ctx, q, "")
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("serpapi: decode: %w", err)
	}
	return raw, nil
}

func (c *Client) fetchPage(ctx context.Context, q domain.SearchQuery, token string) (map[string]any, error) {
	res, err := c.get(ctx, q, token)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("serpapi: decode: %w", err)
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, q domain.SearchQuery, token string) (*http.Response, error) {
	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", queryText(q))
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	params.Set("google_domain", c.cfg.GoogleDomain)
	params.Set("hl", c.cfg.Language)
	params.Set("api_key", c.cfg.APIKey)
	if token != "" {
		params.Set("next_page_token", token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: build request: %w", err)
	}
	req.Header.Set("User-Agent", httpx.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi: get: %w", err)
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, fmt.Errorf("serpapi: status %d", res.StatusCode)
	}
	return res, nil
}

func queryText(q domain.SearchQuery) string {
	if q.Location == "" {
		return q.Query
	}
	return fmt.Sprintf("%s in %s", q.Query, q.Location)
}

// searchLink synthesizes a google search URL for records whose payload
// carried no direct link.
func searchLink(rec domain.JobRecord) string {
	terms := rec.Title
	if rec.CompanyName != "" {
		terms += " at " + rec.CompanyName
	}
	if rec.Location != "" {
		terms += " in " + rec.Location
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(terms)
}
