package domain

import (
	"context"
	"encoding/json"
)

// JobRecord is the canonical job shape every provider normalizes into.
// Title is the only field with a default ("N/A"); the rest are omitted
// from the response when the upstream payload carried nothing usable.
type JobRecord struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name,omitempty"`
	JobLink     string `json:"job_link,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	DatePosted  string `json:"date_posted,omitempty"`
	Page        int    `json:"page,omitempty"`
	Source      string `json:"source,omitempty"`
}

// SearchQuery carries the caller's search parameters to a provider.
type SearchQuery struct {
	Query    string
	Location string
	Limit    int // max records to return; <=0 means provider default
	Pages    int // max upstream pages to walk; <=0 means provider default
}

// Provider fetches jobs from one upstream search API.
type Provider interface {
	Name() string
	Search(ctx context.Context, q SearchQuery) ([]JobRecord, error)
}

// RawProvider is implemented by providers that can hand back the first
// upstream page untouched, for the debug passthrough endpoint.
type RawProvider interface {
	SearchRaw(ctx context.Context, q SearchQuery) (json.RawMessage, error)
}
