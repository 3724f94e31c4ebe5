package footage

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	"github.com/playproof-io/footage-web/models"
)

// PGStore backs the footage handler with the real tables.
type PGStore struct {
	pg *cs.PG
}

func NewPGStore(pg *cs.PG) *PGStore {
	return &PGStore{pg: pg}
}

func (s *PGStore) GetFootage(ctx context.Context, id uuid.UUID) (*models.Footage, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	return models.GetFootage(ctx, db, id)
}

func (s *PGStore) GetUserFootage(ctx context.Context, userID uuid.UUID) ([]*models.Footage, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	return models.GetUserFootage(ctx, db, userID)
}

func (s *PGStore) GetFootageByCategory(ctx context.Context, category models.Category, page int) ([]*models.Footage, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	return models.GetFootageByCategory(ctx, db, category, page)
}

func (s *PGStore) UpdateFootage(ctx context.Context, f *models.Footage) error {
	db := s.pg.Get()
	if db == nil {
		return errors.New("no db")
	}
	return models.UpdateFootage(ctx, db, f)
}

func (s *PGStore) DeleteFootage(ctx context.Context, id uuid.UUID) error {
	db := s.pg.Get()
	if db == nil {
		return errors.New("no db")
	}
	return models.DeleteFootage(ctx, db, id)
}

func (s *PGStore) GetFootageClips(ctx context.Context, footageID uuid.UUID) ([]*models.Clip, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	return models.GetFootageClips(ctx, db, footageID)
}
