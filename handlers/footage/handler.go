package footage

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/auth"
	"github.com/playproof-io/footage-web/services/ingest"
)

// Store is the footage persistence the handler needs. Backed by
// Postgres in production, mocked in tests.
type Store interface {
	GetFootage(ctx context.Context, id uuid.UUID) (*models.Footage, error)
	GetUserFootage(ctx context.Context, userID uuid.UUID) ([]*models.Footage, error)
	GetFootageByCategory(ctx context.Context, category models.Category, page int) ([]*models.Footage, error)
	UpdateFootage(ctx context.Context, f *models.Footage) error
	DeleteFootage(ctx context.Context, id uuid.UUID) error
	GetFootageClips(ctx context.Context, footageID uuid.UUID) ([]*models.Clip, error)
}

type Handler struct {
	store    Store
	ingestor *ingest.Ingestor
}

func New(store Store, ingestor *ingest.Ingestor) *Handler {
	return &Handler{
		store:    store,
		ingestor: ingestor,
	}
}

func (s *Handler) RegisterHandler(r *gin.Engine) {
	gr := r.Group("/footage")
	gr.GET("/:id", s.get)
	gr.GET("/:id/clips", s.clips)
	gr.GET("/category/:category", s.listCategory)

	authed := gr.Group("")
	authed.Use(auth.HasAuth)
	authed.POST("", s.create)
	authed.GET("", s.listOwn)
	authed.POST("/:id", s.update)
	authed.DELETE("/:id", s.delete)
}
