package footage

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/services/auth"
	"github.com/playproof-io/footage-web/services/perm"
)

func (s *Handler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.SendError(c, errors.Wrap(common.ErrBadInput, "bad footage id"))
		return
	}
	u := auth.GetUserFromContext(c)
	if err := s.Delete(c.Request.Context(), u, id); err != nil {
		common.SendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes footage with its clips and votes. Owner-level.
func (s *Handler) Delete(ctx context.Context, u *auth.User, id uuid.UUID) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !perm.Evaluate(u.ID, u.Role, f.UserID, u.Blacklisted, perm.LevelOwner) {
		return common.ErrForbidden
	}
	return s.store.DeleteFootage(ctx, id)
}
