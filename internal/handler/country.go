package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/model"
)

// CreateCountry handles POST /v1/countries.
func (h *CatalogHandler) CreateCountry(c echo.Context) error {
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

	country := model.Country{Name: name, CreatedAt: time.Now().UTC()}
	if err := h.Countries.Create(ctx, &country); err != nil {
		return catalogError(c, err, "country not found")
	}
	return c.JSON(http.StatusCreated, country)
}

// ListCountries handles GET /v1/countries.
func (h *CatalogHandler) ListCountries(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Countries.List(ctx)
	if err != nil {
		return catalogError(c, err, "country not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetCountry handles GET /v1/countries/:id.
func (h *CatalogHandler) GetCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	country, err := h.Countries.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "country not found")
	}
	return c.JSON(http.StatusOK, country)
}

// UpdateCountry handles PUT /v1/countries/:id.
func (h *CatalogHandler) UpdateCountry(c echo.Context) error {
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

	if err := h.Countries.UpdateName(ctx, id, name); err != nil {
		return catalogError(c, err, "country not found")
	}
	country, err := h.Countries.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "country not found")
	}
	return c.JSON(http.StatusOK, country)
}

// DeleteCountry handles DELETE /v1/countries/:id.  Countries with states
// cannot be deleted.
func (h *CatalogHandler) DeleteCountry(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Countries.Delete(ctx, id); err != nil {
		return catalogError(c, err, "country not found")
	}
	return c.NoContent(http.StatusNoContent)
}
