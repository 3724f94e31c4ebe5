package footage

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/auth"
	"github.com/playproof-io/footage-web/services/perm"
)

type CreateArgs struct {
	URL      string          `json:"url" form:"url"`
	Category models.Category `json:"category" form:"category"`
}

func (s *Handler) bindCreateArgs(c *gin.Context) (*CreateArgs, error) {
	args := &CreateArgs{}
	if err := c.ShouldBind(args); err != nil {
		return nil, errors.Wrap(common.ErrBadInput, err.Error())
	}
	args.URL = strings.TrimSpace(args.URL)
	if args.URL == "" {
		return nil, errors.Wrap(common.ErrBadInput, "url is required")
	}
	if u, err := url.Parse(args.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Wrap(common.ErrBadInput, "url is not absolute")
	}
	if !args.Category.Valid() {
		return nil, errors.Wrap(common.ErrBadInput, "unsupported category")
	}
	return args, nil
}

func (s *Handler) create(c *gin.Context) {
	args, err := s.bindCreateArgs(c)
	if err != nil {
		common.SendError(c, err)
		return
	}
	u := auth.GetUserFromContext(c)
	f, err := s.Create(c.Request.Context(), u, args)
	if err != nil {
		common.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// Create runs the ingestion pipeline for an authenticated,
// non-blacklisted submitter.
func (s *Handler) Create(ctx context.Context, u *auth.User, args *CreateArgs) (*models.Footage, error) {
	if !perm.Evaluate(u.ID, u.Role, u.ID, u.Blacklisted, perm.LevelOwner) {
		return nil, common.ErrForbidden
	}
	f, _, err := s.ingestor.Ingest(ctx, u.ID, args.URL, args.Category)
	if err != nil {
		return nil, err
	}
	return f, nil
}
