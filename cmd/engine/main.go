package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"gamecraft-engine/internal/config"
	"gamecraft-engine/internal/events"
	"gamecraft-engine/internal/httpapi"
	"gamecraft-engine/internal/platform"
	"gamecraft-engine/internal/query"
	"gamecraft-engine/internal/scheduler"
	"gamecraft-engine/internal/secrets"
	"gamecraft-engine/internal/service"
	"gamecraft-engine/internal/session"
	"gamecraft-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the UI shell can pass one), else local folder.
	dataDir := os.Getenv("GAMECRAFT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over sqlite
	// and the session row.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	userCfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		applyEnv(&cfg)
		normalized, vr := config.NormalizeAndValidate(cfg)
		for _, w := range vr.Warnings {
			log.Printf("level=warn msg=\"config\" warn=%q", w)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "gamecraft.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()
	cache := query.NewCache()
	api := platform.New(cfg.Backend.BaseURL)

	sessions := session.NewStore(session.NewDBPersister(db.Pool, secrets.SessionAccount(dataDir)))

	auth := &service.AuthService{Sessions: sessions, API: api, Cache: cache, Hub: hub}
	applications := &service.ApplicationsService{API: api, Cache: cache, Hub: hub, CfgVal: &cfgVal}
	admin := &service.AdminService{API: api, Cache: cache, Hub: hub, CfgVal: &cfgVal}
	positions := service.NewPositionsService(api, cache, hub, &cfgVal)

	var syncStatus atomic.Value
	syncStatus.Store(httpapi.SyncStatus{})

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Rehydrate against the backend: unknown -> authenticated or anonymous.
	{
		ctx, cancel := context.WithTimeout(rootCtx, 15*time.Second)
		ok, err := auth.CheckAuthStatus(ctx)
		cancel()
		st := httpapi.SyncStatus{
			LastCheckAt:   time.Now().Format(time.RFC3339),
			Authenticated: ok,
		}
		if err != nil {
			st.LastError = err.Error()
		} else {
			st.LastOkAt = st.LastCheckAt
		}
		syncStatus.Store(st)
	}

	// Keep the session and slow-moving caches warm in the background.
	go scheduler.Every(rootCtx, 10*time.Minute, "auth-recheck", func(ctx context.Context) error {
		_, err := auth.CheckAuthStatus(ctx)
		return err
	})
	go scheduler.Every(rootCtx, 5*time.Minute, "filter-options", func(ctx context.Context) error {
		_, err := positions.FilterOptions(ctx)
		return err
	})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		CfgVal:       &cfgVal,
		SyncStatus:   &syncStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		Auth:         auth,
		Applications: applications,
		Admin:        admin,
		Positions:    positions,
	})

	handler := httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
	)

	port := cfg.App.Port
	if port <= 0 {
		port = 38471
	}
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s backend=%s)", addr, dbPath, cfg.Backend.BaseURL)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-rootCtx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// applyEnv lets the shell override deployment-specific values without
// touching the config file.
func applyEnv(cfg *config.Config) {
	if v := os.Getenv("GAMECRAFT_API_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("GAMECRAFT_OAUTH_CLIENT_ID"); v != "" {
		cfg.Backend.OAuthClientID = v
	}
}
