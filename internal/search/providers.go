package search

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/provider/httpx"
	"jobsearch-engine/internal/provider/rapidapi"
	"jobsearch-engine/internal/provider/serpapi"
	"jobsearch-engine/internal/secrets"
	"jobsearch-engine/internal/store"
)

// Providers builds clients for every enabled provider, resolving each
// one's credential from the keyring or environment.
func Providers(cfg config.Config) ([]domain.Provider, error) {
	var out []domain.Provider
	limiter := httpx.NewHostLimiter(1.0, 2)

	if cfg.Providers.SerpAPI.Enabled {
		key, err := secrets.GetAPIKey(secrets.ProviderSerpAPI)
		if err != nil {
			return nil, err
		}
		out = append(out, serpapi.New(serpapi.Config{
			APIKey:       key,
			BaseURL:      cfg.Providers.SerpAPI.BaseURL,
			GoogleDomain: cfg.Providers.SerpAPI.GoogleDomain,
			Language:     cfg.Providers.SerpAPI.Language,
			MaxPages:     cfg.Search.MaxPages,
			PageDelay:    time.Duration(cfg.Search.PageDelaySeconds) * time.Second,
		}))
	}

	if cfg.Providers.LinkedIn.Enabled || cfg.Providers.ActiveJobs.Enabled {
		key, err := secrets.GetAPIKey(secrets.ProviderRapidAPI)
		if err != nil {
			return nil, err
		}
		if cfg.Providers.LinkedIn.Enabled {
			out = append(out, rapidapi.NewLinkedIn(rapidapi.Config{
				APIKey: key,
				Host:   cfg.Providers.LinkedIn.Host,
				Path:   cfg.Providers.LinkedIn.Path,
			}, limiter))
		}
		if cfg.Providers.ActiveJobs.Enabled {
			out = append(out, rapidapi.NewActiveJobs(rapidapi.Config{
				APIKey: key,
				Host:   cfg.Providers.ActiveJobs.Host,
				Path:   cfg.Providers.ActiveJobs.Path,
			}, limiter))
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no providers enabled")
	}
	return out, nil
}

func insertRecord(ctx context.Context, db *sql.DB, rec domain.JobRecord) (bool, error) {
	return store.InsertJobIgnore(ctx, db, rec)
}
