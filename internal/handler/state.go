package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// CreateState handles POST /v1/countries/:id/states.  The parent country
// must exist.
func (h *CatalogHandler) CreateState(c echo.Context) error {
	countryID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Countries.GetByID(ctx, countryID); err != nil {
		return catalogError(c, err, "country not found")
	}
	state := model.State{CountryID: countryID, Name: name, CreatedAt: time.Now().UTC()}
	if err := h.States.Create(ctx, &state); err != nil {
		return catalogError(c, err, "country not found")
	}
	return c.JSON(http.StatusCreated, state)
}

// ListStates handles GET /v1/countries/:id/states.
func (h *CatalogHandler) ListStates(c echo.Context) error {
	countryID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Countries.GetByID(ctx, countryID); err != nil {
		return catalogError(c, err, "country not found")
	}
	items, err := h.States.ListByCountry(ctx, countryID)
	if err != nil {
		return catalogError(c, err, "country not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetState handles GET /v1/states/:id.
func (h *CatalogHandler) GetState(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	state, err := h.States.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "state not found")
	}
	return c.JSON(http.StatusOK, state)
}

// UpdateState handles PUT /v1/states/:id.
func (h *CatalogHandler) UpdateState(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.States.UpdateName(ctx, id, name); err != nil {
		return catalogError(c, err, "state not found")
	}
	state, err := h.States.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "state not found")
	}
	return c.JSON(http.StatusOK, state)
}

// DeleteState handles DELETE /v1/states/:id.
func (h *CatalogHandler) DeleteState(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.States.Delete(ctx, id); err != nil {
		return catalogError(c, err, "state not found")
	}
	return c.NoContent(http.StatusNoContent)
}
