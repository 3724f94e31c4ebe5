package footage

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/models"
)

func (s *Handler) clips(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.SendError(c, errors.Wrap(common.ErrBadInput, "bad footage id"))
		return
	}
	clips, err := s.Clips(c.Request.Context(), id)
	if err != nil {
		common.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, clips)
}

func (s *Handler) Clips(ctx context.Context, id uuid.UUID) ([]*models.Clip, error) {
	// Ensure the parent exists so a bogus id reads as 404, not [].
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.GetFootageClips(ctx, id)
}
