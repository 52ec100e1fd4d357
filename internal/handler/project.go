package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/model"
)

type projectReq struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// CreateProject handles POST /v1/cities/:id/projects.
func (h *CatalogHandler) CreateProject(c echo.Context) error {
	cityID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body projectReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(body.Name)
	address := strings.TrimSpace(body.Address)
	if name == "" || address == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and address are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Cities.GetByID(ctx, cityID); err != nil {
		return catalogError(c, err, "city not found")
	}
	project := model.Project{
		CityID:      cityID,
		Name:        name,
		Address:     address,
		Description: strings.TrimSpace(body.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Projects.Create(ctx, &project); err != nil {
		return catalogError(c, err, "city not found")
	}
	return c.JSON(http.StatusCreated, project)
}

// ListProjects handles GET /v1/cities/:id/projects.
func (h *CatalogHandler) ListProjects(c echo.Context) error {
	cityID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Cities.GetByID(ctx, cityID); err != nil {
		return catalogError(c, err, "city not found")
	}
	items, err := h.Projects.ListByCity(ctx, cityID)
	if err != nil {
		return catalogError(c, err, "city not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetProject handles GET /v1/projects/:id.
func (h *CatalogHandler) GetProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	project, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "project not found")
	}
	return c.JSON(http.StatusOK, project)
}

// UpdateProject handles PUT /v1/projects/:id.  Absent fields keep their
// current values.
func (h *CatalogHandler) UpdateProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body projectReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	project, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "project not found")
	}
	if name := strings.TrimSpace(body.Name); name != "" {
		project.Name = name
	}
	if address := strings.TrimSpace(body.Address); address != "" {
		project.Address = address
	}
	if desc := strings.TrimSpace(body.Description); desc != "" {
		project.Description = desc
	}
	if err := h.Projects.Update(ctx, project); err != nil {
		return catalogError(c, err, "project not found")
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /v1/projects/:id.
func (h *CatalogHandler) DeleteProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Projects.Delete(ctx, id); err != nil {
		return catalogError(c, err, "project not found")
	}
	return c.NoContent(http.StatusNoContent)
}
