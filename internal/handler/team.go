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

// TeamHandler manages the descriptive team member entries shown on the
// public "our team" page.
type TeamHandler struct {
	Team *repository.TeamRepo
}

func NewTeamHandler(team *repository.TeamRepo) *TeamHandler {
	if team == nil {
		panic("nil repository passed to NewTeamHandler")
	}
	return &TeamHandler{Team: team}
}

type teamMemberReq struct {
	Name         string `json:"name" validate:"required"`
	Role         string `json:"role" validate:"required"`
	Image        string `json:"image" validate:"omitempty,url"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"order"`
}

// List returns all team members in display order.
func (h *TeamHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	members, err := h.Team.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, members)
}

// Create adds a team member.
func (h *TeamHandler) Create(c echo.Context) error {
	var req teamMemberReq
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := model.TeamMember{
		Name:         req.Name,
		Role:         req.Role,
		Image:        req.Image,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.Team.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create team member failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

// Update replaces a team member's fields.
func (h *TeamHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "team member not found"})
	}
	var req teamMemberReq
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m := model.TeamMember{
		ID:           id,
		Name:         req.Name,
		Role:         req.Role,
		Image:        req.Image,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.Team.Update(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrTeamMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "team member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update team member failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// Delete removes a team member.
func (h *TeamHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "team member not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Team.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTeamMemberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "team member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete team member failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "team member deleted"})
}
