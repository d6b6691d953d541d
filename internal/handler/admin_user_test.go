package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokakpati/shelter-api/internal/config"
	"github.com/sokakpati/shelter-api/internal/model"
	"github.com/sokakpati/shelter-api/internal/repository"
)

// fakeAdminStore mimics the repository's last-admin guard in memory.
type fakeAdminStore struct {
	admins map[uint64]model.Admin
}

func (s *fakeAdminStore) List(context.Context) ([]model.Admin, error) {
	out := make([]model.Admin, 0, len(s.admins))
	for _, a := range s.admins {
		out = append(out, a)
	}
	return out, nil
}

func (s *fakeAdminStore) Update(_ context.Context, id uint64, username, email, _ string, _ int) (model.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return model.Admin{}, repository.ErrAdminNotFound
	}
	a.Username = username
	a.Email = email
	s.admins[id] = a
	return a, nil
}

func (s *fakeAdminStore) Delete(_ context.Context, id uint64) error {
	if len(s.admins) <= 1 {
		return repository.ErrLastAdmin
	}
	if _, ok := s.admins[id]; !ok {
		return repository.ErrAdminNotFound
	}
	delete(s.admins, id)
	return nil
}

func newAdminFixture(ids ...uint64) (*AdminUserHandler, *fakeAdminStore) {
	store := &fakeAdminStore{admins: make(map[uint64]model.Admin)}
	for _, id := range ids {
		store.admins[id] = model.Admin{ID: id, Username: "admin", Email: "a@x.com"}
	}
	return NewAdminUserHandler(config.Config{BcryptCost: 4}, store), store
}

func TestDeleteAdmin(t *testing.T) {
	h, store := newAdminFixture(1, 2)

	rec := doJSON(t, h.Delete, http.MethodDelete, "/v1/admin/users/2", "", map[string]string{"id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, store.admins, 1)
}

func TestDeleteLastAdminRefused(t *testing.T) {
	h, store := newAdminFixture(1)

	rec := doJSON(t, h.Delete, http.MethodDelete, "/v1/admin/users/1", "", map[string]string{"id": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot delete the last admin account")
	assert.Len(t, store.admins, 1, "the account must survive")
}

func TestDeleteUnknownAdminIs404(t *testing.T) {
	h, _ := newAdminFixture(1, 2)

	for _, id := range []string{"99", "abc"} {
		rec := doJSON(t, h.Delete, http.MethodDelete, "/v1/admin/users/"+id, "", map[string]string{"id": id})
		assert.Equal(t, http.StatusNotFound, rec.Code, "id=%s", id)
	}
}

func TestUpdateAdmin(t *testing.T) {
	h, store := newAdminFixture(1, 2)

	rec := doJSON(t, h.Update, http.MethodPut, "/v1/admin/users/2",
		`{"username":"night-shift","email":"n@x.com"}`, map[string]string{"id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "night-shift", store.admins[2].Username)
	assert.Equal(t, "n@x.com", store.admins[2].Email)
}

func TestUpdateAdminRejectsShortPassword(t *testing.T) {
	h, store := newAdminFixture(1)

	rec := doJSON(t, h.Update, http.MethodPut, "/v1/admin/users/1",
		`{"username":"admin","email":"a@x.com","password":"short"}`, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "admin", store.admins[1].Username)
}
