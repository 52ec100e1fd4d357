// Package router wires handlers and middleware onto the Echo instance.
// Unprotected paths are exactly the health check and the register, login
// and refresh-token endpoints; everything else sits behind the auth gate.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/handler"
	"github.com/estatedesk/estate-catalog/internal/middleware"
	"github.com/estatedesk/estate-catalog/internal/model"
)

// RegisterHealth exposes the liveness endpoint.  It is registered before
// anything else so the service stays probeable even when role bootstrap or
// broker connections are failing.
func RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session-lifecycle endpoints.  The open group
// (register/login/refresh) carries the rate limiter; profile and logout
// require a valid access token via the gate.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, gate, limiter echo.MiddlewareFunc) {
	open := e.Group("/v1/auth")
	if limiter != nil {
		open.Use(limiter)
	}
	open.POST("/register", a.Register)
	open.POST("/login", a.Login)
	open.POST("/refresh-token", a.Refresh)

	prot := e.Group("/v1/auth", gate)
	prot.GET("/profile", a.Profile)
	prot.PUT("/profile", a.UpdateProfile)
	prot.POST("/logout", a.Logout)
}

// RegisterCatalog registers the catalog hierarchy behind the gate.  Reads
// are open to any authenticated role and pass through the response cache;
// mutations require the administrator or field-agent role.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, gate, cache echo.MiddlewareFunc) {
	v1 := e.Group("/v1", gate)
	mutate := middleware.RequireRole(model.RoleAdmin, model.RoleAgent)

	read := func(path string, fn echo.HandlerFunc) {
		if cache != nil {
			v1.GET(path, fn, cache)
		} else {
			v1.GET(path, fn)
		}
	}

	// countries
	v1.POST("/countries", h.CreateCountry, mutate)
	read("/countries", h.ListCountries)
	read("/countries/:id", h.GetCountry)
	v1.PUT("/countries/:id", h.UpdateCountry, mutate)
	v1.DELETE("/countries/:id", h.DeleteCountry, mutate)

	// states
	v1.POST("/countries/:id/states", h.CreateState, mutate)
	read("/countries/:id/states", h.ListStates)
	read("/states/:id", h.GetState)
	v1.PUT("/states/:id", h.UpdateState, mutate)
	v1.DELETE("/states/:id", h.DeleteState, mutate)

	// cities
	v1.POST("/states/:id/cities", h.CreateCity, mutate)
	read("/states/:id/cities", h.ListCities)
	read("/cities/:id", h.GetCity)
	v1.PUT("/cities/:id", h.UpdateCity, mutate)
	v1.DELETE("/cities/:id", h.DeleteCity, mutate)

	// projects
	v1.POST("/cities/:id/projects", h.CreateProject, mutate)
	read("/cities/:id/projects", h.ListProjects)
	read("/projects/:id", h.GetProject)
	v1.PUT("/projects/:id", h.UpdateProject, mutate)
	v1.DELETE("/projects/:id", h.DeleteProject, mutate)

	// unit variants
	v1.POST("/projects/:id/units", h.CreateUnit, mutate)
	read("/projects/:id/units", h.ListUnits)
	read("/units/:id", h.GetUnit)
	v1.PUT("/units/:id", h.UpdateUnit, mutate)
	v1.DELETE("/units/:id", h.DeleteUnit, mutate)

	// clients and view tracking
	v1.POST("/clients", h.CreateClient, mutate)
	read("/clients", h.ListClients)
	read("/clients/:id", h.GetClient)
	v1.DELETE("/clients/:id", h.DeleteClient, mutate)
	v1.POST("/units/:id/views", h.RecordUnitView, mutate)
	read("/clients/:id/views", h.ListClientViews)
}
