package rapidapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/normalize"
	"jobsearch-engine/internal/provider/httpx"
)

const (
	defaultLinkedInHost   = "linkedin-job-search-api.p.rapidapi.com"
	defaultLinkedInPath   = "/active-jb-24h"
	defaultActiveJobsHost = "active-jobs-db.p.rapidapi.com"
	defaultActiveJobsPath = "/active-ats-7d"
)

type Config struct {
	APIKey  string
	Host    string
	Path    string
	BaseURL string // override for tests; defaults to https://<Host>
}

// Client queries one RapidAPI-hosted job search endpoint. The endpoints
// share auth headers and parameter names but differ in payload shape,
// which is exactly what the alias table absorbs.
type Client struct {
	name    string
	cfg     Config
	hc      *http.Client
	limiter *httpx.HostLimiter
}

func NewLinkedIn(cfg Config, limiter *httpx.HostLimiter) *Client {
	if cfg.Host == "" {
		cfg.Host = defaultLinkedInHost
	}
	if cfg.Path == "" {
		cfg.Path = defaultLinkedInPath
	}
	return newClient("linkedin", cfg, limiter)
}

func NewActiveJobs(cfg Config, limiter *httpx.HostLimiter) *Client {
	if cfg.Host == "" {
		cfg.Host = defaultActiveJobsHost
	}
	if cfg.Path == "" {
		cfg.Path = defaultActiveJobsPath
	}
	return newClient("activejobs", cfg, limiter)
}

func newClient(name string, cfg Config, limiter *httpx.HostLimiter) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://" + cfg.Host
	}
	return &Client{
		name:    name,
		cfg:     cfg,
		hc:      httpx.NewClient(30 * time.Second),
		limiter: limiter,
	}
}

func (c *Client) Name() string { return c.name }

func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.JobRecord, error) {
	payload, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", c.name, err)
	}

	recs := normalize.ExtractAll(decoded, normalize.DefaultAliases, q.Limit)
	for i := range recs {
		recs[i].Page = 1
		recs[i].Source = c.name
	}
	logrus.WithFields(logrus.Fields{"provider": c.name, "jobs": len(recs)}).Debug("search done")
	return recs, nil
}

// SearchRaw returns the upstream body untouched.
func (c *Client) SearchRaw(ctx context.Context, q domain.SearchQuery) (json.RawMessage, error) {
	return c.fetch(ctx, q)
}

func (c *Client) fetch(ctx context.Context, q domain.SearchQuery) (json.RawMessage, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("title_filter", q.Query)
	}
	if q.Location != "" {
		params.Set("location_filter", q.Location)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	reqURL := c.cfg.BaseURL + c.cfg.Path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.name, err)
	}
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.Host)
	req.Header.Set("User-Agent", httpx.UserAgent)
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, reqURL); err != nil {
			return nil, err
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: get: %w", c.name, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: status %d", c.name, res.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", c.name, err)
	}
	return raw, nil
}
