package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	ownerservice "petclinic/internal/owner/service"
	ownerstore "petclinic/internal/owner/store"
	pettypeservice "petclinic/internal/pettype/service"
	pettypestore "petclinic/internal/pettype/store"
	"petclinic/internal/platform/config"
	"petclinic/internal/platform/database"
	vetservice "petclinic/internal/vet/service"
	vetstore "petclinic/internal/vet/store"
)

type ownerStore interface {
	ownerservice.Store
	ownerstore.Saver
}

type vetStore interface {
	vetservice.Store
	vetstore.Seeder
}

type petTypeStore interface {
	pettypeservice.Store
	pettypestore.Seeder
}

// backend is the storage selected by configuration.
type backend struct {
	owners   ownerStore
	vets     vetStore
	petTypes petTypeStore
	health   func(ctx context.Context) error
	closers  []func() error
}

func (b *backend) Health(ctx context.Context) error {
	if b.health == nil {
		return nil
	}
	return b.health(ctx)
}

func (b *backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	return errors.Join(errs...)
}

func openBackend(ctx context.Context, cfg config.Storage, log *slog.Logger) (*backend, error) {
	var (
		b   *backend
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		b, err = openPostgres(ctx, cfg.DSN)
	case config.DriverSQLite:
		b, err = openSQLite(ctx, cfg.SQLitePath)
	default:
		b = &backend{
			owners:   ownerstore.NewInMemory(),
			vets:     vetstore.NewInMemory(),
			petTypes: pettypestore.NewInMemory(),
		}
	}
	if err != nil {
		return nil, err
	}

	if cfg.Seed {
		if err := seed(ctx, b, log); err != nil {
			_ = b.Close()
			return nil, err
		}
	}
	log.InfoContext(ctx, "storage ready", "driver", cfg.Driver)
	return b, nil
}

func openPostgres(ctx context.Context, dsn string) (*backend, error) {
	db, err := database.OpenPostgres(ctx, dsn, database.DefaultPool)
	if err != nil {
		return nil, err
	}
	if err := database.ApplySchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &backend{
		owners:   ownerstore.NewPostgres(db),
		vets:     vetstore.NewPostgres(db),
		petTypes: pettypestore.NewPostgres(db),
		health:   db.PingContext,
		closers:  []func() error{db.Close},
	}, nil
}

func openSQLite(ctx context.Context, path string) (*backend, error) {
	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		_ = database.CloseGorm(db)
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}

	owners := ownerstore.NewGorm(db)
	vets := vetstore.NewGorm(db)
	petTypes := pettypestore.NewGorm(db)
	for _, migrate := range []func(context.Context) error{owners.Migrate, vets.Migrate, petTypes.Migrate} {
		if err := migrate(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return &backend{
		owners:   owners,
		vets:     vets,
		petTypes: petTypes,
		health:   sqlDB.PingContext,
		closers:  []func() error{sqlDB.Close},
	}, nil
}

func seed(ctx context.Context, b *backend, log *slog.Logger) error {
	owners, err := ownerstore.Seed(ctx, b.owners)
	if err != nil {
		return fmt.Errorf("seed owners: %w", err)
	}
	vets, err := vetstore.Seed(ctx, b.vets)
	if err != nil {
		return fmt.Errorf("seed vets: %w", err)
	}
	petTypes, err := pettypestore.Seed(ctx, b.petTypes)
	if err != nil {
		return fmt.Errorf("seed pet types: %w", err)
	}
	if owners > 0 || vets > 0 || petTypes > 0 {
		log.InfoContext(ctx, "sample data loaded", "owners", owners, "vets", vets, "pet_types", petTypes)
	}
	return nil
}
