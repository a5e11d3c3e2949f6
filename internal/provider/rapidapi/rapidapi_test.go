package rapidapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobsearch-engine/internal/domain"
)

func TestSearch_BareArrayPayload(t *testing.T) {
	var gotKey, gotHost, gotTitle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-rapidapi-key")
		gotHost = r.Header.Get("x-rapidapi-host")
		gotTitle = r.URL.Query().Get("title_filter")
		fmt.Fprint(w, `[
			{"title":"Platform Engineer","organization":"Acme","url":"https://acme.example/1","date_posted":"2026-08-30"},
			{"title":"SRE","organization":"Beta","url":"https://beta.example/2"}
		]`)
	}))
	defer srv.Close()

	c := NewLinkedIn(Config{APIKey: "rk", BaseURL: srv.URL}, nil)
	jobs, err := c.Search(context.Background(), domain.SearchQuery{Query: "engineer", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "rk" || gotHost != defaultLinkedInHost {
		t.Errorf("auth headers: key=%q host=%q", gotKey, gotHost)
	}
	if gotTitle != "engineer" {
		t.Errorf("title_filter = %q", gotTitle)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	j := jobs[0]
	if j.Title != "Platform Engineer" || j.CompanyName != "Acme" || j.JobLink != "https://acme.example/1" {
		t.Errorf("unexpected record: %+v", j)
	}
	if j.Source != "linkedin" || j.Page != 1 {
		t.Errorf("expected source/page stamped, got %+v", j)
	}
}

func TestSearch_LimitTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"title":"A"},{"title":"B"},{"title":"C"}]`)
	}))
	defer srv.Close()

	c := NewActiveJobs(Config{APIKey: "rk", BaseURL: srv.URL}, nil)
	jobs, err := c.Search(context.Background(), domain.SearchQuery{Query: "x", Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
}

func TestSearch_ObjectPayloadWithoutList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"no results for this filter"}`)
	}))
	defer srv.Close()

	c := NewActiveJobs(Config{APIKey: "rk", BaseURL: srv.URL}, nil)
	jobs, err := c.Search(context.Background(), domain.SearchQuery{Query: "x"})
	if err != nil {
		t.Fatalf("shape surprises are zero results, not errors; got %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
}

func TestSearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewLinkedIn(Config{APIKey: "bad", BaseURL: srv.URL}, nil)
	if _, err := c.Search(context.Background(), domain.SearchQuery{Query: "x"}); err == nil {
		t.Fatal("expected error for HTTP 403, got nil")
	}
}
