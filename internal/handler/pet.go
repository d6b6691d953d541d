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

// PetHandler serves the pet catalog: public listings of available animals
// and the staff-only management operations.
type PetHandler struct {
	Pets *repository.PetRepo
}

func NewPetHandler(pets *repository.PetRepo) *PetHandler {
	if pets == nil {
		panic("nil repository passed to NewPetHandler")
	}
	return &PetHandler{Pets: pets}
}

// petReq mirrors the staff form for creating or editing a pet. Every field
// is required by the original catalog schema.
type petReq struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Age         string `json:"age" validate:"required"`
	Gender      string `json:"gender" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"required,url"`
	Health      string `json:"health" validate:"required"`
	Character   string `json:"character" validate:"required"`
}

func (r petReq) toModel() model.Pet {
	return model.Pet{
		Name:        r.Name,
		Type:        r.Type,
		Age:         r.Age,
		Gender:      r.Gender,
		Description: r.Description,
		Image:       r.Image,
		Health:      r.Health,
		Character:   r.Character,
	}
}

// ListAvailable returns pets that have not been adopted. This is the public
// catalog the adoption page renders.
func (h *PetHandler) ListAvailable(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pets, err := h.Pets.ListAvailable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, pets)
}

// Get returns a single pet by id. A malformed id is indistinguishable from
// an unknown one: both answer 404.
func (h *PetHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, p)
}

// ListAll returns every pet including adopted ones, for the dashboard.
func (h *PetHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pets, err := h.Pets.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, pets)
}

// Create registers a new pet in the catalog.
func (h *PetHandler) Create(c echo.Context) error {
	var req petReq
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := req.toModel()
	if err := h.Pets.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create pet failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// Update replaces the editable fields of a pet. The adoption flag cannot be
// set here; it only moves through form transitions.
func (h *PetHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
	}
	var req petReq
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := req.toModel()
	p.ID = id
	if err := h.Pets.Update(ctx, &p); err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update pet failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Delete removes a pet from the catalog. Forms referencing it stay behind
// with a dangling reference the reconciler tolerates.
func (h *PetHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Pets.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pet not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete pet failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "pet deleted"})
}
