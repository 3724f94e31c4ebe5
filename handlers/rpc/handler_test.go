package rpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/handlers/footage"
	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/auth"
	"github.com/playproof-io/footage-web/services/review"
)

type mockFootageStore struct{}

func (m *mockFootageStore) GetFootage(_ context.Context, _ uuid.UUID) (*models.Footage, error) {
	return nil, nil
}

func (m *mockFootageStore) GetUserFootage(_ context.Context, _ uuid.UUID) ([]*models.Footage, error) {
	return nil, nil
}

func (m *mockFootageStore) GetFootageByCategory(_ context.Context, _ models.Category, _ int) ([]*models.Footage, error) {
	return []*models.Footage{}, nil
}

func (m *mockFootageStore) UpdateFootage(_ context.Context, _ *models.Footage) error {
	return nil
}

func (m *mockFootageStore) DeleteFootage(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (m *mockFootageStore) GetFootageClips(_ context.Context, _ uuid.UUID) ([]*models.Clip, error) {
	return nil, nil
}

type mockReviewStore struct{}

func (m *mockReviewStore) PickUnvotedFootage(_ context.Context, _ uuid.UUID) (*models.Footage, error) {
	return &models.Footage{FootageID: uuid.New()}, nil
}

func (m *mockReviewStore) CreateVote(_ context.Context, _ *models.Vote) error {
	return nil
}

func (m *mockReviewStore) GetFootage(_ context.Context, _ uuid.UUID) (*models.Footage, error) {
	return nil, nil
}

func newTestHandler() *Handler {
	return &Handler{
		footage: footage.New(&mockFootageStore{}, nil),
		review:  review.New(&mockReviewStore{}),
	}
}

func call(t *testing.T, h *Handler, u *auth.User, method string, params string) (any, error) {
	t.Helper()
	req := &request{Method: method}
	if params != "" {
		req.Params = json.RawMessage(params)
	}
	return h.dispatch(context.Background(), u, req)
}

func TestListByCategoryRejectsBadPage(t *testing.T) {
	h := newTestHandler()
	u := &auth.User{}

	for _, params := range []string{
		`{"category":"VAL","page":0}`,
		`{"category":"VAL","page":-3}`,
	} {
		_, err := call(t, h, u, "footage.listByCategory", params)
		assert.ErrorIs(t, err, common.ErrBadInput, "%s", params)
	}
}

func TestListByCategoryDefaultsToFirstPage(t *testing.T) {
	h := newTestHandler()

	res, err := call(t, h, &auth.User{}, "footage.listByCategory", `{"category":"VAL"}`)
	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestReviewPickBlacklistedDenied(t *testing.T) {
	h := newTestHandler()
	u := &auth.User{ID: uuid.New(), Role: models.RoleUser, Blacklisted: true, HasToken: true}

	_, err := call(t, h, u, "review.pick", "")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestReviewVoteBlacklistedDenied(t *testing.T) {
	h := newTestHandler()
	u := &auth.User{ID: uuid.New(), Role: models.RoleUser, Blacklisted: true, HasToken: true}

	_, err := call(t, h, u, "review.vote", `{"footage_id":"`+uuid.New().String()+`","is_game_footage":true,"category":"VAL"}`)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestUnknownMethod(t *testing.T) {
	h := newTestHandler()

	_, err := call(t, h, &auth.User{}, "footage.destroyAll", "")
	assert.ErrorIs(t, err, common.ErrBadInput)
}
