package common

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/ingest"
	"github.com/playproof-io/footage-web/services/review"
	"github.com/playproof-io/footage-web/services/source"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ingest.ErrDuplicateSubmission, http.StatusConflict},
		{models.ErrURLTaken, http.StatusConflict},
		{review.ErrAlreadyVoted, http.StatusConflict},
		{source.ErrUnacceptable, http.StatusBadRequest},
		{ingest.ErrInvalidCategory, http.StatusBadRequest},
		{ErrBadInput, http.StatusBadRequest},
		{errors.Wrap(ErrBadInput, "url is required"), http.StatusBadRequest},
		{models.ErrNotFound, http.StatusNotFound},
		{review.ErrNothingToReview, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ingest.ErrDownloadFailed, http.StatusBadGateway},
		{errors.Wrap(ingest.ErrDownloadFailed, "connection reset"), http.StatusBadGateway},
		{errors.New("pg: something broke"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), "%v", tt.err)
	}
}
