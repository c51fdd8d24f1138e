package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/xolan/daylog/internal/config"
	"github.com/xolan/daylog/internal/session"
	"github.com/xolan/daylog/internal/shared"
	"github.com/xolan/daylog/internal/storage"
	"github.com/xolan/daylog/internal/storage/postgres"
	"github.com/xolan/daylog/internal/store"
	"github.com/xolan/daylog/internal/supabase"
)

// Services holds all service instances used by the application
type Services struct {
	Auth      *AuthService
	Journal   *JournalService
	Dashboard *DashboardService
	Export    *ExportService
	Config    *ConfigService
	// Storage is nil unless the local backend is in use
	Storage *StorageService
	// Now is the clock shared by every service
	Now func() time.Time

	closers []func() error
}

// Options configures NewServices.
type Options struct {
	Config     config.Config
	ConfigPath string
	Logger     *zap.Logger
	Now        func() time.Time

	// Backend replaces the configured backend (useful for testing)
	Backend store.Backend
	// Gateway replaces the hosted session gateway (useful for testing)
	Gateway *session.Gateway
}

// NewServices connects the configured backend and builds every service.
func NewServices(ctx context.Context, opts Options) (*Services, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Services{Config: NewConfigService(opts.ConfigPath, cfg), Now: opts.Now}
	gateway := opts.Gateway
	backend := opts.Backend
	local := StaticIdentity(cfg.Local.UserID)

	if backend == nil {
		var err error
		backend, gateway, err = s.connect(ctx, opts, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Backend == config.BackendPostgres {
			local = StaticIdentity(cfg.Postgres.UserID)
		}
	}

	s.Auth = NewAuthService(gateway, cfg.Backend, local)
	st := store.New(backend, logger.Named("store"))
	s.Journal = NewJournalService(st, s.Auth, cfg, logger, opts.Now)
	s.Dashboard = NewDashboardService(s.Journal, cfg.Scale, opts.Now)
	s.Export = NewExportService(s.Journal, cfg.Export, opts.Now)

	if gateway != nil {
		gateway.Subscribe(func(ev session.Event, _ *supabase.Session) {
			switch ev {
			case session.EventSignedIn, session.EventSignedOut, session.EventUserUpdated:
				s.Journal.Forget()
			}
		})
	}
	return s, nil
}

func (s *Services) connect(ctx context.Context, opts Options, logger *zap.Logger) (store.Backend, *session.Gateway, error) {
	cfg := opts.Config
	switch cfg.Backend {
	case config.BackendLocal:
		path := cfg.Local.Path
		if path == "" {
			p, err := storage.GetStoragePath()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to determine storage location: %w", err)
			}
			path = p
		}
		s.Storage = NewStorageService(path)
		return storage.NewJSONLBackend(path, logger.Named("storage")), nil, nil

	case config.BackendPostgres:
		if cfg.Postgres.DSN == "" {
			return nil, nil, fmt.Errorf("%w: set postgres.dsn or DAYLOG_DATABASE_URL", shared.ErrNotConfigured)
		}
		pg, err := postgres.Open(ctx, cfg.Postgres.DSN, logger.Named("postgres"))
		if err != nil {
			return nil, nil, err
		}
		s.closers = append(s.closers, pg.Close)
		return pg, nil, nil

	case config.BackendMemory:
		return store.NewMemoryBackend(), nil, nil
	}

	client, err := supabase.NewClient(supabase.Config{
		URL:     cfg.Supabase.URL,
		AnonKey: cfg.Supabase.AnonKey,
		Timeout: cfg.Supabase.Timeout,
	}, logger.Named("supabase"))
	if err != nil {
		if errors.Is(err, shared.ErrNotConfigured) {
			return nil, nil, fmt.Errorf("%w: set supabase.url and supabase.anon_key or DAYLOG_SUPABASE_URL and DAYLOG_SUPABASE_ANON_KEY", err)
		}
		return nil, nil, err
	}

	cacheDir := cfg.Session.CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(filepath.Dir(opts.ConfigPath), "session")
	}
	gateway := session.NewGateway(client, session.NewDiskCache(cacheDir),
		session.WithRedirectDelay(cfg.Session.RedirectDelay),
		session.WithRecoveryURL(cfg.Session.RecoveryURL),
		session.WithLogger(logger.Named("session")),
		session.WithClock(opts.Now),
	)
	return supabase.NewEntries(client, gateway.AccessToken), gateway, nil
}

// Close releases backend connections.
func (s *Services) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
