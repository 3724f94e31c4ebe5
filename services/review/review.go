package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	"github.com/playproof-io/footage-web/models"
)

var (
	ErrNothingToReview = errors.New("nothing to review")
	ErrAlreadyVoted    = errors.New("already voted on this footage")
	ErrInvalidCategory = errors.New("unsupported category")
)

type Store interface {
	PickUnvotedFootage(ctx context.Context, userID uuid.UUID) (*models.Footage, error)
	CreateVote(ctx context.Context, v *models.Vote) error
	GetFootage(ctx context.Context, id uuid.UUID) (*models.Footage, error)
}

// Service hands reviewers an approximately-random footage item they
// have not judged yet and records their verdict.
type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) PickReviewItem(ctx context.Context, userID uuid.UUID) (*models.Footage, error) {
	f, err := s.store.PickUnvotedFootage(ctx, userID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNothingToReview
	}
	return f, nil
}

func (s *Service) SubmitVote(ctx context.Context, userID uuid.UUID, footageID uuid.UUID, isGame bool, category models.Category) (*models.Vote, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	f, err := s.store.GetFootage(ctx, footageID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, models.ErrNotFound
	}
	v := &models.Vote{
		FootageID:     footageID,
		UserID:        userID,
		IsGameFootage: isGame,
		Category:      category,
	}
	if err = s.store.CreateVote(ctx, v); err != nil {
		if errors.Is(err, models.ErrAlreadyVoted) {
			return nil, ErrAlreadyVoted
		}
		return nil, err
	}
	return v, nil
}

// PGStore backs the review workflow with the real tables.
type PGStore struct {
	pg *cs.PG
}

func NewPGStore(pg *cs.PG) *PGStore {
	return &PGStore{pg: pg}
}

func (s *PGStore) PickUnvotedFootage(ctx context.Context, userID uuid.UUID) (*models.Footage, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	return models.PickUnvotedFootage(ctx, db, userID)
}

func (s *PGStore) CreateVote(ctx context.Context, v *models.Vote) error {
	db := s.pg.Get()
	if db == nil {
		return errors.New("no db")
	}
	return models.CreateVote(ctx, db, v)
}

func (s *PGStore) GetFootage(ctx context.Context, id uuid.UUID) (*models.Footage, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("no db")
	}
	return models.GetFootage(ctx, db, id)
}
