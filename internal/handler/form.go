package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sokakpati/shelter-api/internal/model"
	"github.com/sokakpati/shelter-api/internal/queue"
	"github.com/sokakpati/shelter-api/internal/reconcile"
	"github.com/sokakpati/shelter-api/internal/repository"
)

// FormStore is the slice of the form repository this handler needs,
// abstracted so the status-transition flow can be tested against fakes.
type FormStore interface {
	Create(ctx context.Context, f *model.Form) error
	GetByID(ctx context.Context, id uint64) (*model.Form, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
	ListAdoption(ctx context.Context) ([]*repository.FormWithPet, error)
	List(ctx context.Context, kind, status string) ([]*repository.FormWithPet, error)
}

// FormHandler covers public submission intake and the staff-side lifecycle
// of all three form kinds. Adoption transitions run the reconciler after
// the form's own status is persisted and then publish a broker event;
// publishing is best effort and never fails the request.
type FormHandler struct {
	Forms      FormStore
	Reconciler *reconcile.Reconciler
	Publish    func(ctx context.Context, ev queue.AdoptionDecidedEvent) error // may be nil
}

func NewFormHandler(forms FormStore, rec *reconcile.Reconciler,
	publish func(ctx context.Context, ev queue.AdoptionDecidedEvent) error) *FormHandler {
	if forms == nil || rec == nil {
		panic("nil dependency passed to NewFormHandler")
	}
	return &FormHandler{Forms: forms, Reconciler: rec, Publish: publish}
}

// ----- intake DTOs, one shape per kind -----

// adoptionFormReq is the application a visitor files for a specific pet.
// The pet id is required here but not checked against the catalog: staff
// review is the validation point.
type adoptionFormReq struct {
	FullName         string `json:"fullName" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required"`
	Address          string `json:"address" validate:"required"`
	HasExperience    *bool  `json:"hasExperience" validate:"required"`
	LivingConditions string `json:"livingConditions" validate:"required"`
	AdditionalNotes  string `json:"additionalNotes"`
	PetID            uint64 `json:"petId" validate:"required"`
}

type volunteerFormReq struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Availability string `json:"availability"`
	Experience   string `json:"experience"`
	Motivation   string `json:"motivation" validate:"required"`
}

type contactFormReq struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

type statusReq struct {
	Status string `json:"status"`
}

// CreateAdoption stores a new adoption application in the pending state.
func (h *FormHandler) CreateAdoption(c echo.Context) error {
	var req adoptionFormReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode payload failed"})
	}
	petID := req.PetID
	return h.create(c, &model.Form{Kind: model.FormKindAdoption, Payload: payload, PetID: &petID})
}

// CreateVolunteer stores a new volunteer application in the pending state.
func (h *FormHandler) CreateVolunteer(c echo.Context) error {
	var req volunteerFormReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode payload failed"})
	}
	return h.create(c, &model.Form{Kind: model.FormKindVolunteer, Payload: payload})
}

// CreateContact stores a new contact message in the pending state.
func (h *FormHandler) CreateContact(c echo.Context) error {
	var req contactFormReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode payload failed"})
	}
	return h.create(c, &model.Form{Kind: model.FormKindContact, Payload: payload})
}

func (h *FormHandler) create(c echo.Context, f *model.Form) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Forms.Create(ctx, f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create form failed"})
	}
	return c.JSON(http.StatusCreated, f)
}

// ListAdoption returns all adoption forms for the dashboard, newest first,
// joined with the referenced pet's name and type.
func (h *FormHandler) ListAdoption(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	forms, err := h.Forms.ListAdoption(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, forms)
}

// List returns forms of any kind for the dashboard, optionally filtered by
// ?kind= and ?status=.
func (h *FormHandler) List(c echo.Context) error {
	kind := c.QueryParam("kind")
	status := c.QueryParam("status")
	if status != "" && !model.ValidFormStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status value"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	forms, err := h.Forms.List(ctx, kind, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, forms)
}

// UpdateAdoptionStatus transitions an adoption form. The endpoint refuses
// forms of other kinds with 404 so the adoption route cannot be used to
// flip volunteer or contact submissions.
func (h *FormHandler) UpdateAdoptionStatus(c echo.Context) error {
	return h.updateStatus(c, true)
}

// UpdateStatus transitions a form of any kind; the reconciler only acts
// when the form turns out to be an adoption form.
func (h *FormHandler) UpdateStatus(c echo.Context) error {
	return h.updateStatus(c, false)
}

func (h *FormHandler) updateStatus(c echo.Context, adoptionOnly bool) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "form not found"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || !model.ValidFormStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status value"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Forms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "form not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if adoptionOnly && f.Kind != model.FormKindAdoption {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "form not found"})
	}

	oldStatus := f.Status
	if err := h.Forms.UpdateStatus(ctx, id, req.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	f.Status = req.Status

	// The form's own transition is already persisted; from here on nothing
	// may fail the request except a hard store error on the pet write.
	if err := h.Reconciler.ApplyTransition(ctx, f, oldStatus, req.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update pet failed"})
	}
	h.publishDecision(ctx, f, oldStatus)

	return c.JSON(http.StatusOK, f)
}

// Delete removes a form. Deleting an approved adoption form frees the
// referenced pet first.
func (h *FormHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "form not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Forms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "form not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.Reconciler.ApplyDeletion(ctx, f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update pet failed"})
	}
	if err := h.Forms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFormNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "form not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete form failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "form deleted"})
}

func (h *FormHandler) publishDecision(ctx context.Context, f *model.Form, oldStatus string) {
	if h.Publish == nil || f.Kind != model.FormKindAdoption || f.PetID == nil {
		return
	}
	// Broker failures are logged by the publisher; the decision stands.
	_ = h.Publish(ctx, queue.AdoptionDecidedEvent{
		FormID:    f.ID,
		PetID:     *f.PetID,
		OldStatus: oldStatus,
		NewStatus: f.Status,
		DecidedAt: time.Now().UTC().Format(time.RFC3339),
	})
}
