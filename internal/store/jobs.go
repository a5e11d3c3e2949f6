package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"jobsearch-engine/internal/domain"
)

// Job is a persisted search result row.
type Job struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name,omitempty"`
	JobLink     string `json:"job_link,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	DatePosted  string `json:"date_posted,omitempty"`
	Page        int    `json:"page,omitempty"`
	Source      string `json:"source,omitempty"`
	FirstSeen   string `json:"first_seen"`
}

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  company TEXT NOT NULL DEFAULT '',
  job_link TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  date_posted TEXT NOT NULL DEFAULT '',
  page INTEGER NOT NULL DEFAULT 0,
  source TEXT NOT NULL DEFAULT '',
  source_id TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_first_seen ON jobs(first_seen);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_source_id
ON jobs(source_id)
WHERE source_id != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// SourceID dedups a record across repeated searches: same provider plus
// the same link/title/company means the same posting.
func SourceID(rec domain.JobRecord) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(rec.JobLink))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(rec.Title))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(rec.CompanyName))
	return fmt.Sprintf("%s:%016x", rec.Source, h.Sum64())
}

// InsertJobIgnore stores a record unless its source_id already exists.
// Reports whether a new row was added.
func InsertJobIgnore(ctx context.Context, db *sql.DB, rec domain.JobRecord) (added bool, err error) {
	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs (title, company, job_link, location, description, date_posted, page, source, source_id, first_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		rec.Title, rec.CompanyName, rec.JobLink, rec.Location, rec.Description,
		rec.DatePosted, rec.Page, rec.Source, SourceID(rec),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}

	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

type ListJobsOpts struct {
	Sort   string // date | company | title
	Window string // 24h | 7d | all
	Limit  int
}

func ListJobs(ctx context.Context, db *sql.DB, opts ListJobsOpts) ([]Job, error) {
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	// whitelist sort columns
	sortCol, order := "first_seen", "DESC"
	switch opts.Sort {
	case "company":
		sortCol, order = "company", "ASC"
	case "title":
		sortCol, order = "title", "ASC"
	case "", "date":
	default:
	}

	where := ""
	switch opts.Window {
	case "24h":
		where = "WHERE first_seen >= datetime('now','-24 hours')"
	case "all":
	default:
		where = "WHERE first_seen >= datetime('now','-7 days')"
	}

	query := fmt.Sprintf(`
SELECT id, title, company, job_link, location, description, date_posted, page, source, first_seen
FROM jobs
%s
ORDER BY %s %s
LIMIT ?;
`, where, sortCol, order)

	rows, err := db.QueryContext(ctx, query, opts.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(
			&j.ID, &j.Title, &j.CompanyName, &j.JobLink, &j.Location,
			&j.Description, &j.DatePosted, &j.Page, &j.Source, &j.FirstSeen,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func DeleteJob(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, id)
	return err
}

func CleanupOldJobs(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM jobs
WHERE first_seen < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
