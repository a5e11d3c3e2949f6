package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync/atomic"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	SearchStatus *atomic.Value // stores search.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	DeleteJob func(ctx context.Context, db *sql.DB, id int64) error

	// Search entrypoints (injected for testability)
	RunSearch func(ctx context.Context, q domain.SearchQuery) ([]domain.JobRecord, error)
	RawSearch func(ctx context.Context, provider string, q domain.SearchQuery) (json.RawMessage, error)
}
