package serpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobsearch-engine/internal/domain"
)

func newTestClient(srv *httptest.Server) *Client {
	return New(Config{
		APIKey:    "test-key",
		BaseURL:   srv.URL,
		MaxPages:  5,
		PageDelay: time.Millisecond,
	})
}

func TestSearch_FollowsContinuationToken(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Query().Get("next_page_token"))
		w.Header().Set("Content-Type", "application/json")
		if len(calls) == 1 {
			fmt.Fprint(w, `{"jobs_results":[{"title":"A","company_name":"Acme"}],"next_page_token":"tok-2"}`)
			return
		}
		fmt.Fprint(w, `{"jobs_results":[{"title":"B","company_name":"Beta"}]}`)
	}))
	defer srv.Close()

	jobs, err := newTestClient(srv).Search(context.Background(), domain.SearchQuery{
		Query: "go engineer", Location: "Austin, TX", Pages: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", len(calls))
	}
	if calls[0] != "" || calls[1] != "tok-2" {
		t.Errorf("unexpected token sequence: %q", calls)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Page != 1 || jobs[1].Page != 2 {
		t.Errorf("expected 1-based page stamps, got %d and %d", jobs[0].Page, jobs[1].Page)
	}
	if jobs[0].Source != "serpapi" {
		t.Errorf("expected source serpapi, got %q", jobs[0].Source)
	}
}

func TestSearch_PacesContinuationCall(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, `{"jobs_results":[{"title":"A"}],"next_page_token":"tok-2"}`)
			return
		}
		fmt.Fprint(w, `{"jobs_results":[{"title":"B"}]}`)
	}))
	defer srv.Close()

	delay := 150 * time.Millisecond
	c := New(Config{APIKey: "test-key", BaseURL: srv.URL, MaxPages: 5, PageDelay: delay})

	start := time.Now()
	jobs, err := c.Search(context.Background(), domain.SearchQuery{Query: "x", Pages: 2})
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if elapsed < delay {
		t.Errorf("continuation call not paced: 2 pages in %v, want >= %v", elapsed, delay)
	}
}

func TestSearch_StopsAtPageCap(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// always offers another page
		fmt.Fprintf(w, `{"jobs_results":[{"title":"J%d"}],"next_page_token":"tok-%d"}`, calls, calls)
	}))
	defer srv.Close()

	jobs, err := newTestClient(srv).Search(context.Background(), domain.SearchQuery{Query: "x", Pages: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls at the page cap, got %d", calls)
	}
	if len(jobs) != 2 {
		t.Errorf("expected 2 jobs, got %d", len(jobs))
	}
}

func TestSearch_UpstreamErrorKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"Invalid API key"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), domain.SearchQuery{Query: "x"})
	if err == nil || !strings.Contains(err.Error(), "Invalid API key") {
		t.Fatalf("expected upstream error surfaced, got %v", err)
	}
}

func TestSearch_NoResultsKeyIsZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"search_metadata":{"status":"Success"}}`)
	}))
	defer srv.Close()

	jobs, err := newTestClient(srv).Search(context.Background(), domain.SearchQuery{Query: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs, got %d", len(jobs))
	}
}

func TestSearch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), domain.SearchQuery{Query: "x"})
	if err == nil {
		t.Fatal("expected error for HTTP 502, got nil")
	}
}

func TestSearch_SynthesizedLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jobs_results":[{"title":"SRE","company_name":"Acme"}]}`)
	}))
	defer srv.Close()

	jobs, err := newTestClient(srv).Search(context.Background(), domain.SearchQuery{Query: "sre"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(jobs[0].JobLink, "https://www.google.com/search?q=") {
		t.Errorf("expected synthesized link, got %q", jobs[0].JobLink)
	}
}

func TestSearch_RequestParams(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = map[string]string{
			"engine":   r.URL.Query().Get("engine"),
			"q":        r.URL.Query().Get("q"),
			"location": r.URL.Query().Get("location"),
			"api_key":  r.URL.Query().Get("api_key"),
		}
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Search(context.Background(), domain.SearchQuery{
		Query: "go engineer", Location: "Remote",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got["engine"] != "google_jobs" {
		t.Errorf("engine = %q", got["engine"])
	}
	if got["q"] != "go engineer in Remote" {
		t.Errorf("q = %q", got["q"])
	}
	if got["location"] != "Remote" || got["api_key"] != "test-key" {
		t.Errorf("unexpected params: %v", got)
	}
}
