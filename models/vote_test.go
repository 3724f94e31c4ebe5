package models

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// fakePGError satisfies pg.Error with a fixed SQLSTATE code.
type fakePGError struct {
	code string
}

func (e *fakePGError) Error() string {
	return "ERROR #" + e.code
}

func (e *fakePGError) Field(f byte) string {
	if f == 'C' {
		return e.code
	}
	return ""
}

func (e *fakePGError) IntegrityViolation() bool {
	return strings.HasPrefix(e.code, "23")
}

func TestVoteInsertErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation is a repeat vote", &fakePGError{code: "23505"}, ErrAlreadyVoted},
		{"fk violation means footage is gone", &fakePGError{code: "23503"}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, voteInsertError(tt.err), tt.want)
		})
	}
}

func TestVoteInsertErrorPassesThroughOtherFailures(t *testing.T) {
	err := voteInsertError(&fakePGError{code: "23502"})
	assert.NotErrorIs(t, err, ErrAlreadyVoted)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = voteInsertError(errors.New("connection reset"))
	assert.NotErrorIs(t, err, ErrAlreadyVoted)
	assert.Error(t, err)
}
