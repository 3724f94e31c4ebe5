package migration

import (
	"github.com/go-pg/migrations/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"
)

// Migrator applies the registered schema migrations to the configured
// Postgres database. With no database configured it is a no-op, so the
// service can still boot for local poking around.
type Migrator struct {
	pg  *cs.PG
	col *migrations.Collection
}

func New(pg *cs.PG, col *migrations.Collection) *Migrator {
	return &Migrator{
		pg:  pg,
		col: col,
	}
}

func (s *Migrator) Run(args ...string) error {
	db := s.pg.Get()
	if db == nil {
		log.Info("no database configured, skipping schema migrations")
		return nil
	}
	s.col.DiscoverSQLMigrations("migrations")
	if _, _, err := s.col.Run(db, "init"); err != nil {
		return errors.Wrap(err, "failed to init migrations table")
	}
	oldVersion, newVersion, err := s.col.Run(db, args...)
	if err != nil {
		return errors.Wrap(err, "failed to run schema migrations")
	}
	if newVersion != oldVersion {
		log.Infof("schema migrated from version %d to %d", oldVersion, newVersion)
	} else {
		log.Infof("schema version is %d", oldVersion)
	}
	return nil
}
