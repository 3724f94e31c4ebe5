// Package rpc exposes the same operations as the path-style API
// through a single method-dispatch endpoint.
package rpc

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/handlers/footage"
	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/auth"
	"github.com/playproof-io/footage-web/services/perm"
	"github.com/playproof-io/footage-web/services/review"
)

type Handler struct {
	footage *footage.Handler
	review  *review.Service
}

func RegisterHandler(r *gin.Engine, fh *footage.Handler, rs *review.Service) {
	h := &Handler{
		footage: fh,
		review:  rs,
	}
	r.POST("/rpc", h.call)
}

type request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type idParams struct {
	ID string `json:"id"`
}

type listCategoryParams struct {
	Category models.Category `json:"category"`
	Page     int             `json:"page"`
}

type updateParams struct {
	ID string `json:"id"`
	footage.UpdateArgs
}

type voteParams struct {
	FootageID     string          `json:"footage_id"`
	IsGameFootage bool            `json:"is_game_footage"`
	Category      models.Category `json:"category"`
}

func (s *Handler) call(c *gin.Context) {
	req := &request{}
	if err := c.ShouldBindJSON(req); err != nil {
		common.SendError(c, errors.Wrap(common.ErrBadInput, err.Error()))
		return
	}
	u := auth.GetUserFromContext(c)
	res, err := s.dispatch(c.Request.Context(), u, req)
	if err != nil {
		common.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

func (s *Handler) dispatch(ctx context.Context, u *auth.User, req *request) (any, error) {
	switch req.Method {
	case "footage.create":
		args := &footage.CreateArgs{}
		if err := s.bind(req, args); err != nil {
			return nil, err
		}
		if err := s.requireAuth(u); err != nil {
			return nil, err
		}
		if !args.Category.Valid() {
			return nil, errors.Wrap(common.ErrBadInput, "unsupported category")
		}
		return s.footage.Create(ctx, u, args)
	case "footage.get":
		id, err := s.bindID(req)
		if err != nil {
			return nil, err
		}
		return s.footage.Get(ctx, id)
	case "footage.listByOwner":
		if err := s.requireAuth(u); err != nil {
			return nil, err
		}
		return s.footage.ListByOwner(ctx, u.ID)
	case "footage.listByCategory":
		args := &listCategoryParams{Page: 1}
		if err := s.bind(req, args); err != nil {
			return nil, err
		}
		return s.footage.ListByCategory(ctx, args.Category, args.Page)
	case "footage.update":
		args := &updateParams{}
		if err := s.bind(req, args); err != nil {
			return nil, err
		}
		if err := s.requireAuth(u); err != nil {
			return nil, err
		}
		id, err := parseID(args.ID)
		if err != nil {
			return nil, err
		}
		return s.footage.Update(ctx, u, id, &args.UpdateArgs)
	case "footage.delete":
		id, err := s.bindID(req)
		if err != nil {
			return nil, err
		}
		if err := s.requireAuth(u); err != nil {
			return nil, err
		}
		return gin.H{"deleted": true}, s.footage.Delete(ctx, u, id)
	case "clips.list":
		id, err := s.bindID(req)
		if err != nil {
			return nil, err
		}
		return s.footage.Clips(ctx, id)
	case "review.pick":
		if err := s.requireAuth(u); err != nil {
			return nil, err
		}
		if !perm.Evaluate(u.ID, u.Role, u.ID, u.Blacklisted, perm.LevelOwner) {
			return nil, common.ErrForbidden
		}
		return s.review.PickReviewItem(ctx, u.ID)
	case "review.vote":
		args := &voteParams{}
		if err := s.bind(req, args); err != nil {
			return nil, err
		}
		if err := s.requireAuth(u); err != nil {
			return nil, err
		}
		if !perm.Evaluate(u.ID, u.Role, u.ID, u.Blacklisted, perm.LevelOwner) {
			return nil, common.ErrForbidden
		}
		id, err := parseID(args.FootageID)
		if err != nil {
			return nil, err
		}
		return s.review.SubmitVote(ctx, u.ID, id, args.IsGameFootage, args.Category)
	default:
		return nil, errors.Wrapf(common.ErrBadInput, "unknown method %q", req.Method)
	}
}

func (s *Handler) bind(req *request, out any) error {
	if len(req.Params) == 0 {
		return errors.Wrap(common.ErrBadInput, "params required")
	}
	if err := json.Unmarshal(req.Params, out); err != nil {
		return errors.Wrap(common.ErrBadInput, err.Error())
	}
	return nil
}

func (s *Handler) bindID(req *request) (uuid.UUID, error) {
	args := &idParams{}
	if err := s.bind(req, args); err != nil {
		return uuid.Nil, err
	}
	return parseID(args.ID)
}

func (s *Handler) requireAuth(u *auth.User) error {
	if !u.HasAuth() {
		return common.ErrUnauthorized
	}
	return nil
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrap(common.ErrBadInput, "bad id")
	}
	return id, nil
}
