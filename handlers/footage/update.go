package footage

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/auth"
	"github.com/playproof-io/footage-web/services/perm"
)

// UpdateArgs carries the whitelisted mutable fields. Nil means leave
// the field alone.
type UpdateArgs struct {
	Category   *models.Category `json:"category"`
	IsAnalyzed *bool            `json:"is_analyzed"`
}

func (s *Handler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.SendError(c, errors.Wrap(common.ErrBadInput, "bad footage id"))
		return
	}
	args := &UpdateArgs{}
	if err := c.ShouldBindJSON(args); err != nil {
		common.SendError(c, errors.Wrap(common.ErrBadInput, err.Error()))
		return
	}
	u := auth.GetUserFromContext(c)
	f, err := s.Update(c.Request.Context(), u, id, args)
	if err != nil {
		common.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Update applies whitelisted changes. Category edits are owner-level,
// flipping the analysis flag needs moderator or above.
func (s *Handler) Update(ctx context.Context, u *auth.User, id uuid.UUID, args *UpdateArgs) (*models.Footage, error) {
	if args.Category == nil && args.IsAnalyzed == nil {
		return nil, errors.Wrap(common.ErrBadInput, "nothing to update")
	}
	if args.Category != nil && !args.Category.Valid() {
		return nil, errors.Wrap(common.ErrBadInput, "unsupported category")
	}
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if args.Category != nil {
		if !perm.Evaluate(u.ID, u.Role, f.UserID, u.Blacklisted, perm.LevelOwner) {
			return nil, common.ErrForbidden
		}
		f.Category = *args.Category
	}
	if args.IsAnalyzed != nil {
		if !perm.Evaluate(u.ID, u.Role, f.UserID, u.Blacklisted, perm.LevelModerator) {
			return nil, common.ErrForbidden
		}
		f.IsAnalyzed = *args.IsAnalyzed
	}
	if err = s.store.UpdateFootage(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
