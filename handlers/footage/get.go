package footage

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/auth"
)

func (s *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.SendError(c, errors.Wrap(common.ErrBadInput, "bad footage id"))
		return
	}
	f, err := s.Get(c.Request.Context(), id)
	if err != nil {
		common.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Handler) Get(ctx context.Context, id uuid.UUID) (*models.Footage, error) {
	f, err := s.store.GetFootage(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, models.ErrNotFound
	}
	return f, nil
}

func (s *Handler) listOwn(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	fs, err := s.ListByOwner(c.Request.Context(), u.ID)
	if err != nil {
		common.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, fs)
}

func (s *Handler) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*models.Footage, error) {
	return s.store.GetUserFootage(ctx, userID)
}

func (s *Handler) listCategory(c *gin.Context) {
	category := models.Category(c.Param("category"))
	page := 1
	if p := c.Query("page"); p != "" {
		var err error
		page, err = strconv.Atoi(p)
		if err != nil || page < 1 {
			common.SendError(c, errors.Wrap(common.ErrBadInput, "bad page"))
			return
		}
	}
	fs, err := s.ListByCategory(c.Request.Context(), category, page)
	if err != nil {
		common.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, fs)
}

func (s *Handler) ListByCategory(ctx context.Context, category models.Category, page int) ([]*models.Footage, error) {
	if !category.Valid() {
		return nil, errors.Wrap(common.ErrBadInput, "unsupported category")
	}
	if page < 1 {
		return nil, errors.Wrap(common.ErrBadInput, "bad page")
	}
	return s.store.GetFootageByCategory(ctx, category, page)
}
