package ingest

import (
	"context"

	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	"github.com/playproof-io/footage-web/models"
)

// PGStore backs the ingest workflow with the real footage tables.
type PGStore struct {
	pg *cs.PG
}

func NewPGStore(pg *cs.PG) *PGStore {
	return &PGStore{pg: pg}
}

func (s *PGStore) FootageURLExists(ctx context.Context, url string) (bool, error) {
	db := s.pg.Get()
	if db == nil {
		return false, errors.New("no db")
	}
	return models.FootageURLExists(ctx, db, url)
}

func (s *PGStore) CreateFootage(ctx context.Context, f *models.Footage) error {
	db := s.pg.Get()
	if db == nil {
		return errors.New("no db")
	}
	return models.CreateFootage(ctx, db, f)
}

func (s *PGStore) CreateClips(ctx context.Context, clips []*models.Clip) error {
	db := s.pg.Get()
	if db == nil {
		return errors.New("no db")
	}
	return models.CreateClips(ctx, db, clips)
}
