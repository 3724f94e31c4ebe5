package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/ingest"
	"github.com/playproof-io/footage-web/services/review"
	"github.com/playproof-io/footage-web/services/source"
)

var (
	// ErrBadInput marks missing or malformed request fields.
	ErrBadInput = errors.New("bad input")
	// ErrForbidden marks a permission denial, blacklisting included.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized marks calls that need an authenticated identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusFor maps domain errors onto HTTP statuses. Anything unknown
// is an internal error and its detail stays out of the response.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ingest.ErrDuplicateSubmission),
		errors.Is(err, models.ErrURLTaken),
		errors.Is(err, review.ErrAlreadyVoted),
		errors.Is(err, models.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, source.ErrUnacceptable),
		errors.Is(err, ingest.ErrInvalidCategory),
		errors.Is(err, review.ErrInvalidCategory),
		errors.Is(err, ErrBadInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, review.ErrNothingToReview):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ingest.ErrDownloadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// SendError writes the mapped status with a safe message body.
func SendError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("internal error")
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
