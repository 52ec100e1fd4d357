package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// CreateCity handles POST /v1/states/:id/cities.
func (h *CatalogHandler) CreateCity(c echo.Context) error {
	stateID, err := pathID(c)
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

	if _, err := h.States.GetByID(ctx, stateID); err != nil {
		return catalogError(c, err, "state not found")
	}
	city := model.City{StateID: stateID, Name: name, CreatedAt: time.Now().UTC()}
	if err := h.Cities.Create(ctx, &city); err != nil {
		return catalogError(c, err, "state not found")
	}
	return c.JSON(http.StatusCreated, city)
}

// ListCities handles GET /v1/states/:id/cities.
func (h *CatalogHandler) ListCities(c echo.Context) error {
	stateID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.States.GetByID(ctx, stateID); err != nil {
		return catalogError(c, err, "state not found")
	}
	items, err := h.Cities.ListByState(ctx, stateID)
	if err != nil {
		return catalogError(c, err, "state not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetCity handles GET /v1/cities/:id.
func (h *CatalogHandler) GetCity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	city, err := h.Cities.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "city not found")
	}
	return c.JSON(http.StatusOK, city)
}

// UpdateCity handles PUT /v1/cities/:id.
func (h *CatalogHandler) UpdateCity(c echo.Context) error {
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

	if err := h.Cities.UpdateName(ctx, id, name); err != nil {
		return catalogError(c, err, "city not found")
	}
	city, err := h.Cities.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "city not found")
	}
	return c.JSON(http.StatusOK, city)
}

// DeleteCity handles DELETE /v1/cities/:id.
func (h *CatalogHandler) DeleteCity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Cities.Delete(ctx, id); err != nil {
		return catalogError(c, err, "city not found")
	}
	return c.NoContent(http.StatusNoContent)
}
