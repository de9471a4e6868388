package main

import (
	"context"
	"log"
	"net/http"

	_ "userhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"userhub/internal/auth"
	"userhub/internal/cache"
	"userhub/internal/config"
	"userhub/internal/db"
	"userhub/internal/handler"
	"userhub/internal/model"
	"userhub/internal/repository"
	"userhub/internal/router"
	"userhub/internal/service"
)

// @title User Account API
// @version 1.0
// @description User registration, authentication and profile management with a JWT session cookie.
// @host localhost:8080
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unavailable, profile cache degraded: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	tokenService := auth.NewTokenService(cfg.JWTSecret)

	identityService := service.NewIdentityService(userRepo)
	profileService := service.NewProfileService(userRepo, cacheClient)

	authHandler := handler.NewAuthHandler(identityService, tokenService, cfg.Production())
	userHandler := handler.NewUserHandler(profileService)

	router.Register(e, cfg, authHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
