package job

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/job"
)

type Handler struct {
	jobs *job.Storage
}

func RegisterHandler(r *gin.Engine, jobs *job.Storage) {
	h := &Handler{jobs: jobs}
	r.GET("/job/:id", h.get)
}

func (s *Handler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.SendError(c, errors.Wrap(common.ErrBadInput, "bad job id"))
		return
	}
	st, err := s.jobs.Get(c.Request.Context(), id)
	if err != nil {
		common.SendError(c, err)
		return
	}
	if st == nil {
		common.SendError(c, models.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, st)
}
