// Package app wires storage, the record store and the services from
// configuration. Both binaries start through Open.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/tranum/internal/config"
	"github.com/atinyakov/tranum/internal/db"
	"github.com/atinyakov/tranum/internal/hash"
	"github.com/atinyakov/tranum/internal/repository"
	"github.com/atinyakov/tranum/internal/service"
	"github.com/atinyakov/tranum/internal/storage"
	"go.uber.org/zap"
)

// App holds the wired services.
type App struct {
	Store    *repository.Store
	Auth     *service.AuthService
	Traveler *service.TravelerService
	Admin    *service.AdminService

	db *sql.DB
}

// Open selects the backend, loads and seeds the store and restores the
// saved session.
func Open(ctx context.Context, options *config.Options, log *zap.Logger) (*App, error) {
	a := &App{}

	var backend storage.Backend
	switch options.Backend {
	case config.BackendPostgres:
		conn, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		a.db = conn
		backend = db.NewPostgresBackend(conn)
	case config.BackendMemory:
		backend = storage.NewMemoryBackend()
	default:
		fb, err := storage.NewFileBackend(options.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		backend = fb
	}

	hasher, err := hash.New(hash.Mode(options.PasswordMode))
	if err != nil {
		a.Close()
		return nil, err
	}

	store, err := repository.NewStore(ctx, backend,
		repository.WithLogger(log),
		repository.WithPasswordHasher(hasher),
	)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load store: %w", err)
	}
	if err := store.Initialize(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("seed store: %w", err)
	}

	a.Store = store
	a.Auth = service.NewAuthService(store, backend, service.AuthOptions{
		Hasher:          hasher,
		AdminSecretCode: options.AdminSecretCode,
		Logger:          log,
	})
	if err := a.Auth.Restore(ctx); err != nil {
		// A broken snapshot only costs a login.
		log.Warn("cannot restore session", zap.Error(err))
	}
	a.Traveler = service.NewTravelerService(store)
	a.Admin = service.NewAdminService(store)
	return a, nil
}

// Close releases the database connection, if any.
func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
