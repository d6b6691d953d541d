package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sokakpati/shelter-api/internal/model"
	"github.com/sokakpati/shelter-api/internal/repository"
)

// approvedDonationsLimit caps the public supporters list at the newest ten
// entries.
const approvedDonationsLimit = 10

// DonationHandler covers public donation intake and staff moderation.
// Donations are records of intent only; no payment flows through here.
type DonationHandler struct {
	Donations *repository.DonationRepo
}

func NewDonationHandler(d *repository.DonationRepo) *DonationHandler {
	if d == nil {
		panic("nil repository passed to NewDonationHandler")
	}
	return &DonationHandler{Donations: d}
}

type donationReq struct {
	FullName    string  `json:"fullName" validate:"required"`
	Phone       string  `json:"phone" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Message     string  `json:"message"`
	IsAnonymous bool    `json:"isAnonymous"`
}

// Create stores a self-reported donation in the pending state.
func (h *DonationHandler) Create(c echo.Context) error {
	var req donationReq
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d := model.Donation{
		FullName:    req.FullName,
		Phone:       req.Phone,
		Amount:      strconv.FormatFloat(req.Amount, 'f', 2, 64),
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
	}
	if err := h.Donations.Create(ctx, &d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create donation failed"})
	}
	return c.JSON(http.StatusCreated, d)
}

// ListApproved returns the ten most recent approved donations for the
// public supporters list.
func (h *DonationHandler) ListApproved(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	donations, err := h.Donations.ListApproved(ctx, approvedDonationsLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, donations)
}

// ListAll returns every donation for the dashboard, newest first.
func (h *DonationHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	donations, err := h.Donations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, donations)
}

// UpdateStatus approves or rejects a donation. Donation statuses affect
// nothing else: there is no reconciliation across entities here.
func (h *DonationHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || !model.ValidDonationStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status value"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	d, err := h.Donations.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrDonationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	return c.JSON(http.StatusOK, d)
}

// Delete removes a donation record.
func (h *DonationHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Donations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDonationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "donation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete donation failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "donation deleted"})
}
