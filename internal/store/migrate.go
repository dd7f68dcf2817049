package store

import (
	"context"
	"embed"
	errs "errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrator handles DB schema migrations using golang-migrate.
type Migrator struct {
	dsn string
}

func NewMigrator(dsn string) (*Migrator, error) {
	if dsn == "" {
		return nil, errors.New("missing DSN")
	}
	return &Migrator{dsn: dsn}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, func(mig *migrate.Migrate) error { return mig.Up() })
}

func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, func(mig *migrate.Migrate) error { return mig.Steps(-1) })
}

// Version reports the applied schema version; ok is false on a fresh database.
func (m *Migrator) Version(ctx context.Context) (version uint, dirty bool, ok bool, err error) {
	err = m.run(ctx, func(mig *migrate.Migrate) error {
		v, d, verr := mig.Version()
		if errs.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		if verr != nil {
			return verr
		}
		version, dirty, ok = v, d, true
		return nil
	})
	return version, dirty, ok, err
}

func (m *Migrator) run(ctx context.Context, step func(*migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mig, closer, err := m.migrateInstance()
	if err != nil {
		return err
	}
	defer closer()
	done := make(chan error, 1)
	go func() { done <- step(mig) }()
	select {
	case <-ctx.Done():
		mig.GracefulStop <- true
		<-done
		return ctx.Err()
	case err := <-done:
		if errs.Is(err, migrate.ErrNoChange) {
			return ErrNoChange
		}
		return wrap(err, "migrate")
	}
}

func (m *Migrator) migrateInstance() (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, func() {}, wrap(err, "migration source")
	}
	mig, err := migrate.NewWithSourceInstance("iofs", src, m.dsn)
	if err != nil {
		return nil, func() {}, wrap(err, "migrate init")
	}
	return mig, func() { mig.Close() }, nil
}
