package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/model"
)

type unitReq struct {
	Name       string `json:"name"`
	Bedrooms   uint8  `json:"bedrooms"`
	Bathrooms  uint8  `json:"bathrooms"`
	AreaSqft   uint32 `json:"areaSqft"`
	PriceCents uint64 `json:"priceCents"`
}

// CreateUnit handles POST /v1/projects/:id/units.
func (h *CatalogHandler) CreateUnit(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body unitReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		return catalogError(c, err, "project not found")
	}
	unit := model.UnitVariant{
		ProjectID:  projectID,
		Name:       name,
		Bedrooms:   body.Bedrooms,
		Bathrooms:  body.Bathrooms,
		AreaSqft:   body.AreaSqft,
		PriceCents: body.PriceCents,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.Units.Create(ctx, &unit); err != nil {
		return catalogError(c, err, "project not found")
	}
	return c.JSON(http.StatusCreated, unit)
}

// ListUnits handles GET /v1/projects/:id/units.
func (h *CatalogHandler) ListUnits(c echo.Context) error {
	projectID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		return catalogError(c, err, "project not found")
	}
	items, err := h.Units.ListByProject(ctx, projectID)
	if err != nil {
		return catalogError(c, err, "project not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetUnit handles GET /v1/units/:id.
func (h *CatalogHandler) GetUnit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	unit, err := h.Units.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "unit not found")
	}
	return c.JSON(http.StatusOK, unit)
}

// UpdateUnit handles PUT /v1/units/:id.  Zero-valued numeric fields keep
// their current values; only explicit updates change them.
func (h *CatalogHandler) UpdateUnit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body unitReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	unit, err := h.Units.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "unit not found")
	}
	if name := strings.TrimSpace(body.Name); name != "" {
		unit.Name = name
	}
	if body.Bedrooms > 0 {
		unit.Bedrooms = body.Bedrooms
	}
	if body.Bathrooms > 0 {
		unit.Bathrooms = body.Bathrooms
	}
	if body.AreaSqft > 0 {
		unit.AreaSqft = body.AreaSqft
	}
	if body.PriceCents > 0 {
		unit.PriceCents = body.PriceCents
	}
	if err := h.Units.Update(ctx, unit); err != nil {
		return catalogError(c, err, "unit not found")
	}
	return c.JSON(http.StatusOK, unit)
}

// DeleteUnit handles DELETE /v1/units/:id.
func (h *CatalogHandler) DeleteUnit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Units.Delete(ctx, id); err != nil {
		return catalogError(c, err, "unit not found")
	}
	return c.NoContent(http.StatusNoContent)
}
