package review

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/auth"
	"github.com/playproof-io/footage-web/services/perm"
	"github.com/playproof-io/footage-web/services/review"
)

type Handler struct {
	svc *review.Service
}

func RegisterHandler(r *gin.Engine, svc *review.Service) *Handler {
	h := &Handler{svc: svc}
	gr := r.Group("/review")
	gr.Use(auth.HasAuth)
	gr.GET("", h.pick)
	gr.POST("/vote", h.vote)
	return h
}

func (s *Handler) pick(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	if !perm.Evaluate(u.ID, u.Role, u.ID, u.Blacklisted, perm.LevelOwner) {
		common.SendError(c, common.ErrForbidden)
		return
	}
	f, err := s.svc.PickReviewItem(c.Request.Context(), u.ID)
	if err != nil {
		common.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

type VoteArgs struct {
	FootageID     string          `json:"footage_id" form:"footage_id"`
	IsGameFootage bool            `json:"is_game_footage" form:"is_game_footage"`
	Category      models.Category `json:"category" form:"category"`
}

func (s *Handler) vote(c *gin.Context) {
	u := auth.GetUserFromContext(c)
	if !perm.Evaluate(u.ID, u.Role, u.ID, u.Blacklisted, perm.LevelOwner) {
		common.SendError(c, common.ErrForbidden)
		return
	}
	args := &VoteArgs{}
	if err := c.ShouldBind(args); err != nil {
		common.SendError(c, errors.Wrap(common.ErrBadInput, err.Error()))
		return
	}
	id, err := uuid.Parse(args.FootageID)
	if err != nil {
		common.SendError(c, errors.Wrap(common.ErrBadInput, "bad footage id"))
		return
	}
	v, err := s.svc.SubmitVote(c.Request.Context(), u.ID, id, args.IsGameFootage, args.Category)
	if err != nil {
		common.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}
