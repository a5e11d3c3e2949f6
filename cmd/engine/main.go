package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"jobsearch-engine/internal/config"
	"jobsearch-engine/internal/domain"
	"jobsearch-engine/internal/events"
	"jobsearch-engine/internal/httpapi"
	"jobsearch-engine/internal/search"
	"jobsearch-engine/internal/store"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("ENGINE_DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	dataDir := os.Getenv("ENGINE_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logrus.Fatal(err)
	}

	// One engine per data dir.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		logrus.Fatalf("instance lock: %v", err)
	}
	if !locked {
		logrus.Fatalf("another engine instance holds %s", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		logrus.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable.
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		logrus.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("config invalid (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "jobsearch.db"))
	if err != nil {
		logrus.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		logrus.Fatal(err)
	}
	if n, err := store.CleanupOldJobs(db.Pool); err == nil && n > 0 {
		logrus.WithField("deleted", n).Info("pruned old jobs")
	}

	hub := events.NewHub()

	var searchStatus atomic.Value
	searchStatus.Store(search.Status{})

	runner := search.NewRunner(db.Pool, hub, &searchStatus)

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		CfgVal:       &cfgVal,
		SearchStatus: &searchStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		DeleteJob:    store.DeleteJob,
		RunSearch: func(ctx context.Context, q domain.SearchQuery) ([]domain.JobRecord, error) {
			return runner.Run(ctx, cfgVal.Load().(config.Config), q)
		},
		RawSearch: func(ctx context.Context, provider string, q domain.SearchQuery) (json.RawMessage, error) {
			return runner.Raw(ctx, cfgVal.Load().(config.Config), provider, q)
		},
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logrus.WithField("addr", "http://"+addr).Info("engine listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
