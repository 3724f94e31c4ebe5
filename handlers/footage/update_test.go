package footage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playproof-io/footage-web/handlers/common"
	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/auth"
)

type mockStore struct {
	footage map[uuid.UUID]*models.Footage
	updated *models.Footage
	deleted []uuid.UUID
}

func newMockStore() *mockStore {
	return &mockStore{
		footage: map[uuid.UUID]*models.Footage{},
	}
}

func (m *mockStore) add(f *models.Footage) *models.Footage {
	m.footage[f.FootageID] = f
	return f
}

func (m *mockStore) GetFootage(_ context.Context, id uuid.UUID) (*models.Footage, error) {
	return m.footage[id], nil
}

func (m *mockStore) GetUserFootage(_ context.Context, userID uuid.UUID) ([]*models.Footage, error) {
	var fs []*models.Footage
	for _, f := range m.footage {
		if f.UserID == userID {
			fs = append(fs, f)
		}
	}
	return fs, nil
}

func (m *mockStore) GetFootageByCategory(_ context.Context, category models.Category, _ int) ([]*models.Footage, error) {
	var fs []*models.Footage
	for _, f := range m.footage {
		if f.Category == category {
			fs = append(fs, f)
		}
	}
	return fs, nil
}

func (m *mockStore) UpdateFootage(_ context.Context, f *models.Footage) error {
	if _, ok := m.footage[f.FootageID]; !ok {
		return models.ErrNotFound
	}
	m.footage[f.FootageID] = f
	m.updated = f
	return nil
}

func (m *mockStore) DeleteFootage(_ context.Context, id uuid.UUID) error {
	if _, ok := m.footage[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.footage, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockStore) GetFootageClips(_ context.Context, _ uuid.UUID) ([]*models.Clip, error) {
	return nil, nil
}

func addFootage(st *mockStore, owner uuid.UUID) *models.Footage {
	return st.add(&models.Footage{
		FootageID: uuid.New(),
		UserID:    owner,
		URL:       "https://youtu.be/" + uuid.New().String(),
		Category:  models.CategoryValorant,
	})
}

func plainUser(id uuid.UUID) *auth.User {
	return &auth.User{ID: id, Role: models.RoleUser, HasToken: true}
}

func moderator(id uuid.UUID) *auth.User {
	return &auth.User{ID: id, Role: models.RoleModerator, HasToken: true}
}

func boolPtr(v bool) *bool                           { return &v }
func categoryPtr(v models.Category) *models.Category { return &v }

func TestUpdateAnalysisFlagAsOwnerDenied(t *testing.T) {
	st := newMockStore()
	owner := uuid.New()
	f := addFootage(st, owner)
	h := New(st, nil)

	_, err := h.Update(context.Background(), plainUser(owner), f.FootageID, &UpdateArgs{IsAnalyzed: boolPtr(true)})
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Nil(t, st.updated)
	assert.False(t, st.footage[f.FootageID].IsAnalyzed)
}

func TestUpdateAnalysisFlagAsStrangerDenied(t *testing.T) {
	st := newMockStore()
	f := addFootage(st, uuid.New())
	h := New(st, nil)

	_, err := h.Update(context.Background(), plainUser(uuid.New()), f.FootageID, &UpdateArgs{IsAnalyzed: boolPtr(true)})
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Nil(t, st.updated)
}

func TestUpdateAnalysisFlagAsModerator(t *testing.T) {
	st := newMockStore()
	f := addFootage(st, uuid.New())
	h := New(st, nil)

	got, err := h.Update(context.Background(), moderator(uuid.New()), f.FootageID, &UpdateArgs{IsAnalyzed: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, got.IsAnalyzed)
	require.NotNil(t, st.updated)
	assert.True(t, st.updated.IsAnalyzed)
}

func TestUpdateCategoryAsOwner(t *testing.T) {
	st := newMockStore()
	owner := uuid.New()
	f := addFootage(st, owner)
	h := New(st, nil)

	got, err := h.Update(context.Background(), plainUser(owner), f.FootageID, &UpdateArgs{Category: categoryPtr(models.CategoryFortnite)})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFortnite, got.Category)
	require.NotNil(t, st.updated)
	assert.Equal(t, models.CategoryFortnite, st.updated.Category)
}

func TestUpdateCategoryAsStrangerDenied(t *testing.T) {
	st := newMockStore()
	f := addFootage(st, uuid.New())
	h := New(st, nil)

	_, err := h.Update(context.Background(), plainUser(uuid.New()), f.FootageID, &UpdateArgs{Category: categoryPtr(models.CategoryFortnite)})
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Nil(t, st.updated)
}

func TestUpdateBlacklistedModeratorDenied(t *testing.T) {
	st := newMockStore()
	f := addFootage(st, uuid.New())
	h := New(st, nil)

	u := moderator(uuid.New())
	u.Blacklisted = true
	_, err := h.Update(context.Background(), u, f.FootageID, &UpdateArgs{IsAnalyzed: boolPtr(true)})
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Nil(t, st.updated)
}

func TestUpdateNothingToUpdate(t *testing.T) {
	st := newMockStore()
	f := addFootage(st, uuid.New())
	h := New(st, nil)

	_, err := h.Update(context.Background(), plainUser(uuid.New()), f.FootageID, &UpdateArgs{})
	assert.ErrorIs(t, err, common.ErrBadInput)
}

func TestUpdateUnknownFootage(t *testing.T) {
	h := New(newMockStore(), nil)

	_, err := h.Update(context.Background(), moderator(uuid.New()), uuid.New(), &UpdateArgs{IsAnalyzed: boolPtr(true)})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateBlacklistedSubmitterDenied(t *testing.T) {
	h := New(newMockStore(), nil)

	u := plainUser(uuid.New())
	u.Blacklisted = true
	_, err := h.Create(context.Background(), u, &CreateArgs{URL: "https://youtu.be/x", Category: models.CategoryValorant})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestListByCategoryRejectsBadPage(t *testing.T) {
	h := New(newMockStore(), nil)

	for _, page := range []int{0, -1} {
		_, err := h.ListByCategory(context.Background(), models.CategoryValorant, page)
		assert.ErrorIs(t, err, common.ErrBadInput)
	}
}
