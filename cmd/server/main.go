package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/estatedesk/estate-catalog/internal/auth"
	"github.com/estatedesk/estate-catalog/internal/config"
	"github.com/estatedesk/estate-catalog/internal/database"
	"github.com/estatedesk/estate-catalog/internal/handler"
	"github.com/estatedesk/estate-catalog/internal/middleware"
	"github.com/estatedesk/estate-catalog/internal/model"
	"github.com/estatedesk/estate-catalog/internal/queue"
	"github.com/estatedesk/estate-catalog/internal/repository"
	"github.com/estatedesk/estate-catalog/internal/router"
	"github.com/estatedesk/estate-catalog/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	countries := repository.NewCountryRepo(db)
	states := repository.NewStateRepo(db)
	cities := repository.NewCityRepo(db)
	projects := repository.NewProjectRepo(db)
	units := repository.NewUnitRepo(db)
	clients := repository.NewClientRepo(db)

	// Bootstrap the fixed role set.  On failure the server still starts so
	// health checks pass; registration reports a configuration error until
	// the roles exist.
	bootCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := roles.EnsureRoles(bootCtx, model.RoleUser, model.RoleAdmin, model.RoleAgent); err != nil {
		log.Printf("role bootstrap failed: %v; registration will be unavailable", err)
	}
	cancel()

	tokens := auth.NewManager(cfg.JWTSecret,
		time.Duration(cfg.AccessTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTTLDays)*24*time.Hour)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response caching disabled")
	}
	gate := middleware.Authenticate(tokens, cfg.IsProd())
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	authHandler := handler.NewAuthHandler(cfg, users, roles, tokens)
	catalogHandler := handler.NewCatalogHandler(countries, states, cities, projects, units, clients, service.NewPublisher())

	go func() {
		if err := queue.StartViewConsumer(); err != nil {
			log.Printf("view consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterHealth(e)
	router.RegisterAuth(e, authHandler, gate, limiter)
	router.RegisterCatalog(e, catalogHandler, gate, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
