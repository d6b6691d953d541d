package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokakpati/shelter-api/internal/model"
	"github.com/sokakpati/shelter-api/internal/queue"
	"github.com/sokakpati/shelter-api/internal/reconcile"
	"github.com/sokakpati/shelter-api/internal/repository"
)

// fakeFormStore is an in-memory FormStore.
type fakeFormStore struct {
	forms  map[uint64]*model.Form
	nextID uint64
}

func newFakeFormStore() *fakeFormStore {
	return &fakeFormStore{forms: make(map[uint64]*model.Form), nextID: 1}
}

func (s *fakeFormStore) Create(_ context.Context, f *model.Form) error {
	f.ID = s.nextID
	s.nextID++
	f.Status = model.FormStatusPending
	cp := *f
	s.forms[f.ID] = &cp
	return nil
}

func (s *fakeFormStore) GetByID(_ context.Context, id uint64) (*model.Form, error) {
	f, ok := s.forms[id]
	if !ok {
		return nil, repository.ErrFormNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *fakeFormStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	f, ok := s.forms[id]
	if !ok {
		return repository.ErrFormNotFound
	}
	f.Status = status
	return nil
}

func (s *fakeFormStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.forms[id]; !ok {
		return repository.ErrFormNotFound
	}
	delete(s.forms, id)
	return nil
}

func (s *fakeFormStore) ListAdoption(ctx context.Context) ([]*repository.FormWithPet, error) {
	return s.List(ctx, model.FormKindAdoption, "")
}

func (s *fakeFormStore) List(_ context.Context, kind, status string) ([]*repository.FormWithPet, error) {
	out := make([]*repository.FormWithPet, 0)
	for _, f := range s.forms {
		if kind != "" && f.Kind != kind {
			continue
		}
		if status != "" && f.Status != status {
			continue
		}
		out = append(out, &repository.FormWithPet{Form: *f})
	}
	return out, nil
}

// fakePets satisfies reconcile.PetFlagStore.
type fakePets struct {
	flags map[uint64]bool
	calls int
}

func (p *fakePets) SetAdopted(_ context.Context, id uint64, adopted bool) error {
	p.calls++
	if _, ok := p.flags[id]; !ok {
		return repository.ErrPetNotFound
	}
	p.flags[id] = adopted
	return nil
}

type formFixture struct {
	handler *FormHandler
	forms   *fakeFormStore
	pets    *fakePets
	events  []queue.AdoptionDecidedEvent
}

func newFormFixture(petIDs ...uint64) *formFixture {
	fx := &formFixture{
		forms: newFakeFormStore(),
		pets:  &fakePets{flags: make(map[uint64]bool)},
	}
	for _, id := range petIDs {
		fx.pets.flags[id] = false
	}
	fx.handler = NewFormHandler(fx.forms, reconcile.New(fx.pets),
		func(_ context.Context, ev queue.AdoptionDecidedEvent) error {
			fx.events = append(fx.events, ev)
			return nil
		})
	return fx
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	require.NoError(t, h(c))
	return rec
}

const adoptionBody = `{"fullName":"Ayşe Yılmaz","email":"a@x.com","phone":"5551112233",
	"address":"Kadıköy, İstanbul","hasExperience":true,
	"livingConditions":"Apartment with a garden","petId":7}`

func TestAdoptionIntakeStartsPending(t *testing.T) {
	fx := newFormFixture(7)

	rec := doJSON(t, fx.handler.CreateAdoption, http.MethodPost, "/v1/adoption-forms", adoptionBody, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var f model.Form
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, model.FormStatusPending, f.Status)
	require.NotNil(t, f.PetID)
	assert.Equal(t, uint64(7), *f.PetID)
	assert.False(t, fx.pets.flags[7], "intake must not touch the pet")
}

func TestAdoptionIntakeRejectsMissingFields(t *testing.T) {
	fx := newFormFixture(7)

	// No petId: the adoption kind requires the reference.
	rec := doJSON(t, fx.handler.CreateAdoption, http.MethodPost, "/v1/adoption-forms",
		`{"fullName":"Ayşe","email":"a@x.com","phone":"1","address":"x","hasExperience":false,"livingConditions":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, fx.forms.forms)
}

func TestApproveThenRejectTogglesPetFlag(t *testing.T) {
	fx := newFormFixture(7)
	doJSON(t, fx.handler.CreateAdoption, http.MethodPost, "/v1/adoption-forms", adoptionBody, nil)

	params := map[string]string{"id": "1"}
	rec := doJSON(t, fx.handler.UpdateAdoptionStatus, http.MethodPut,
		"/v1/adoption-forms/1/status", `{"status":"approved"}`, params)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, fx.pets.flags[7], "approval must mark the pet adopted")

	rec = doJSON(t, fx.handler.UpdateAdoptionStatus, http.MethodPut,
		"/v1/adoption-forms/1/status", `{"status":"rejected"}`, params)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, fx.pets.flags[7], "demoting an approved form must free the pet")

	require.Len(t, fx.events, 2)
	assert.Equal(t, "approved", fx.events[0].NewStatus)
	assert.Equal(t, "approved", fx.events[1].OldStatus)
	assert.Equal(t, "rejected", fx.events[1].NewStatus)
}

func TestInvalidStatusValueRejected(t *testing.T) {
	fx := newFormFixture(7)
	doJSON(t, fx.handler.CreateAdoption, http.MethodPost, "/v1/adoption-forms", adoptionBody, nil)

	rec := doJSON(t, fx.handler.UpdateAdoptionStatus, http.MethodPut,
		"/v1/adoption-forms/1/status", `{"status":"Onaylandı"}`, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.FormStatusPending, fx.forms.forms[1].Status, "nothing mutated")
	assert.Zero(t, fx.pets.calls)
}

func TestAdoptionRouteRefusesOtherKinds(t *testing.T) {
	fx := newFormFixture(7)
	doJSON(t, fx.handler.CreateVolunteer, http.MethodPost, "/v1/volunteer-forms",
		`{"fullName":"Mehmet","email":"m@x.com","phone":"2","motivation":"help"}`, nil)

	rec := doJSON(t, fx.handler.UpdateAdoptionStatus, http.MethodPut,
		"/v1/adoption-forms/1/status", `{"status":"approved"}`, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, fx.pets.calls)
}

func TestGenericStatusRouteReconcilesAdoptionOnly(t *testing.T) {
	fx := newFormFixture(7)
	doJSON(t, fx.handler.CreateContact, http.MethodPost, "/v1/contact-forms",
		`{"fullName":"Zeynep","email":"z@x.com","subject":"hi","message":"hello"}`, nil)
	doJSON(t, fx.handler.CreateAdoption, http.MethodPost, "/v1/adoption-forms", adoptionBody, nil)

	// Approving the contact form never touches pets.
	rec := doJSON(t, fx.handler.UpdateStatus, http.MethodPut,
		"/v1/admin/forms/1/status", `{"status":"approved"}`, map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, fx.pets.calls)
	assert.Empty(t, fx.events)

	// Approving the adoption form does.
	rec = doJSON(t, fx.handler.UpdateStatus, http.MethodPut,
		"/v1/admin/forms/2/status", `{"status":"approved"}`, map[string]string{"id": "2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, fx.pets.flags[7])
	assert.Len(t, fx.events, 1)
}

func TestDeleteApprovedAdoptionFreesPet(t *testing.T) {
	fx := newFormFixture(7)
	doJSON(t, fx.handler.CreateAdoption, http.MethodPost, "/v1/adoption-forms", adoptionBody, nil)
	doJSON(t, fx.handler.UpdateAdoptionStatus, http.MethodPut,
		"/v1/adoption-forms/1/status", `{"status":"approved"}`, map[string]string{"id": "1"})
	require.True(t, fx.pets.flags[7])

	rec := doJSON(t, fx.handler.Delete, http.MethodDelete,
		"/v1/adoption-forms/1", "", map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, fx.pets.flags[7])
	assert.Empty(t, fx.forms.forms)
}

func TestRepeatedApprovalIsIdempotent(t *testing.T) {
	fx := newFormFixture(7)
	doJSON(t, fx.handler.CreateAdoption, http.MethodPost, "/v1/adoption-forms", adoptionBody, nil)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, fx.handler.UpdateAdoptionStatus, http.MethodPut,
			"/v1/adoption-forms/1/status", `{"status":"approved"}`, map[string]string{"id": "1"})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.True(t, fx.pets.flags[7])
	assert.Equal(t, model.FormStatusApproved, fx.forms.forms[1].Status)
}

func TestMissingPetDoesNotBlockTransition(t *testing.T) {
	fx := newFormFixture() // pet 7 does not exist
	doJSON(t, fx.handler.CreateAdoption, http.MethodPost, "/v1/adoption-forms", adoptionBody, nil)

	rec := doJSON(t, fx.handler.UpdateAdoptionStatus, http.MethodPut,
		"/v1/adoption-forms/1/status", `{"status":"approved"}`, map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code, "dangling pet reference must not fail the form transition")
	assert.Equal(t, model.FormStatusApproved, fx.forms.forms[1].Status)
}

func TestUpdateStatusUnknownFormIs404(t *testing.T) {
	fx := newFormFixture(7)
	for _, id := range []string{"99", "not-a-number"} {
		rec := doJSON(t, fx.handler.UpdateAdoptionStatus, http.MethodPut,
			"/v1/adoption-forms/"+id+"/status", `{"status":"approved"}`, map[string]string{"id": id})
		assert.Equal(t, http.StatusNotFound, rec.Code, "id=%s", id)
	}
}
