package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/model"
	"github.com/estatedesk/estate-catalog/internal/queue"
)

// CreateClient handles POST /v1/clients.
func (h *CatalogHandler) CreateClient(c echo.Context) error {
	var body struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fullName := strings.TrimSpace(body.FullName)
	if fullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "fullName is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	client := model.Client{
		FullName:  fullName,
		Email:     strings.ToLower(strings.TrimSpace(body.Email)),
		Phone:     strings.TrimSpace(body.Phone),
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Clients.Create(ctx, &client); err != nil {
		return catalogError(c, err, "client not found")
	}
	return c.JSON(http.StatusCreated, client)
}

// ListClients handles GET /v1/clients.
func (h *CatalogHandler) ListClients(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Clients.List(ctx)
	if err != nil {
		return catalogError(c, err, "client not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetClient handles GET /v1/clients/:id.
func (h *CatalogHandler) GetClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	client, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		return catalogError(c, err, "client not found")
	}
	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /v1/clients/:id.
func (h *CatalogHandler) DeleteClient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Clients.Delete(ctx, id); err != nil {
		return catalogError(c, err, "client not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// RecordUnitView handles POST /v1/units/:id/views.  The view row is the
// source of truth; the queue event is best-effort analytics and a publish
// failure never fails the request.
func (h *CatalogHandler) RecordUnitView(c echo.Context) error {
	unitID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		ClientID uint64 `json:"clientId"`
	}
	if err := c.Bind(&body); err != nil || body.ClientID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "clientId is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	unit, err := h.Units.GetByID(ctx, unitID)
	if err != nil {
		return catalogError(c, err, "unit not found")
	}
	client, err := h.Clients.GetByID(ctx, body.ClientID)
	if err != nil {
		return catalogError(c, err, "client not found")
	}

	view := model.ClientView{
		ClientID:      client.ID,
		UnitVariantID: unit.ID,
		ViewedAt:      time.Now().UTC(),
	}
	if err := h.Clients.RecordView(ctx, &view); err != nil {
		return catalogError(c, err, "client not found")
	}

	if h.Views != nil {
		ev := queue.UnitViewedEvent{
			ViewID:        view.ID,
			ClientID:      client.ID,
			ClientName:    client.FullName,
			UnitVariantID: unit.ID,
			UnitName:      unit.Name,
			ProjectID:     unit.ProjectID,
			ViewedAt:      view.ViewedAt.Format(time.RFC3339),
		}
		if err := h.Views.PublishUnitViewed(ctx, ev); err != nil {
			c.Logger().Warnf("view event publish failed: %v", err)
		}
	}
	return c.JSON(http.StatusCreated, view)
}

// ListClientViews handles GET /v1/clients/:id/views.
func (h *CatalogHandler) ListClientViews(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Clients.GetByID(ctx, id); err != nil {
		return catalogError(c, err, "client not found")
	}
	items, err := h.Clients.ListViews(ctx, id)
	if err != nil {
		return catalogError(c, err, "client not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
