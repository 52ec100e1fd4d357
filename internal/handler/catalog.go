package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/queue"
	"github.com/estatedesk/estate-catalog/internal/repository"
)

// ViewPublisher mirrors recorded client views onto the analytics queue.
// Publish failures are logged by the caller and never fail the request.
type ViewPublisher interface {
	PublishUnitViewed(ctx context.Context, ev queue.UnitViewedEvent) error
}

// CatalogHandler bundles the repositories behind the catalog routes.  The
// auth gate has already run by the time any of these handlers execute, so
// they only deal with existence checks and persistence.
type CatalogHandler struct {
	Countries *repository.CountryRepo
	States    *repository.StateRepo
	Cities    *repository.CityRepo
	Projects  *repository.ProjectRepo
	Units     *repository.UnitRepo
	Clients   *repository.ClientRepo
	Views     ViewPublisher
}

func NewCatalogHandler(
	countries *repository.CountryRepo,
	states *repository.StateRepo,
	cities *repository.CityRepo,
	projects *repository.ProjectRepo,
	units *repository.UnitRepo,
	clients *repository.ClientRepo,
	views ViewPublisher,
) *CatalogHandler {
	return &CatalogHandler{
		Countries: countries,
		States:    states,
		Cities:    cities,
		Projects:  projects,
		Units:     units,
		Clients:   clients,
		Views:     views,
	}
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// catalogError maps store errors for the catalog routes.
func catalogError(c echo.Context, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFoundMsg})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "name already exists"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "dependent records exist"})
	}
	return storeError(c, err)
}
