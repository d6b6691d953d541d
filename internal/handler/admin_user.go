package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sokakpati/shelter-api/internal/config"
	"github.com/sokakpati/shelter-api/internal/model"
	"github.com/sokakpati/shelter-api/internal/repository"
)

// AdminStore is the slice of the admin repository this handler needs. It is
// an interface so the last-admin guard can be exercised in tests without a
// database.
type AdminStore interface {
	List(ctx context.Context) ([]model.Admin, error)
	Update(ctx context.Context, id uint64, username, email, password string, cost int) (model.Admin, error)
	Delete(ctx context.Context, id uint64) error
}

// AdminUserHandler manages the staff account collection from the dashboard.
type AdminUserHandler struct {
	Cfg    config.Config
	Admins AdminStore
}

func NewAdminUserHandler(cfg config.Config, admins AdminStore) *AdminUserHandler {
	return &AdminUserHandler{Cfg: cfg, Admins: admins}
}

type adminUpdateReq struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"` // empty keeps the current one
}

// List returns all admin accounts without password hashes.
func (h *AdminUserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	admins, err := h.Admins.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, admins)
}

// Update changes username/email and, when a password is supplied, rehashes
// it.
func (h *AdminUserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
	}
	var req adminUpdateReq
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Admins.Update(ctx, id, req.Username, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAdminNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, a)
}

// Delete removes an admin account. Deleting the final remaining account is
// refused outright so the back office can never lock itself out.
func (h *AdminUserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Admins.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrLastAdmin):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete the last admin account"})
		case errors.Is(err, repository.ErrAdminNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "admin not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "admin deleted"})
}
