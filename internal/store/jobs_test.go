package store

import (
	"context"
	"path/filepath"
	"testing"

	"jobsearch-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestInsertJobIgnore_DedupsOnSourceID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	rec := domain.JobRecord{
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		JobLink:     "https://acme.example/1",
		Source:      "serpapi",
		Page:        1,
	}

	added, err := InsertJobIgnore(ctx, db.Pool, rec)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if !added {
		t.Fatal("expected first insert to add a row")
	}

	added, err = InsertJobIgnore(ctx, db.Pool, rec)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if added {
		t.Fatal("expected duplicate insert to be ignored")
	}

	jobs, err := ListJobs(ctx, db.Pool, ListJobsOpts{Window: "all"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Title != "Backend Engineer" || jobs[0].Source != "serpapi" {
		t.Errorf("unexpected row: %+v", jobs[0])
	}
}

func TestSourceID_DistinguishesProviders(t *testing.T) {
	a := domain.JobRecord{Title: "SRE", CompanyName: "Acme", Source: "serpapi"}
	b := a
	b.Source = "linkedin"
	if SourceID(a) == SourceID(b) {
		t.Error("expected different source IDs for different providers")
	}
}

func TestDeleteJob(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := InsertJobIgnore(ctx, db.Pool, domain.JobRecord{Title: "X", Source: "serpapi"}); err != nil {
		t.Fatal(err)
	}
	jobs, err := ListJobs(ctx, db.Pool, ListJobsOpts{Window: "all"})
	if err != nil || len(jobs) != 1 {
		t.Fatalf("setup: jobs=%v err=%v", jobs, err)
	}

	if err := DeleteJob(ctx, db.Pool, jobs[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	jobs, err = ListJobs(ctx, db.Pool, ListJobsOpts{Window: "all"})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected 0 jobs after delete, got %d", len(jobs))
	}
}
