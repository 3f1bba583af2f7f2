package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"callpulse/config"
	"callpulse/internal/controller"
	"callpulse/internal/db"
	repo "callpulse/internal/repository/mongo"
	"callpulse/internal/service/analytics"
	"callpulse/internal/usecase"

	"github.com/gin-gonic/gin"
)

func main() {
	appCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load error: %v", err)
	}

	mongoDB, err := db.Connect(appCtx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Mongo connect error: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoDB.Close(ctx); err != nil {
			log.Printf("Mongo disconnect error: %v", err)
		}
	}()

	analyticsService := analytics.NewAnalyticsService(repo.NewAnalyticsRepository(mongoDB))

	u, err := usecase.NewCallDashboard(cfg, analyticsService)
	if err != nil {
		log.Fatalf("Usecase init error: %v", err)
	}

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		if err := mongoDB.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "db": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	controller.RegisterRoutes(router, u, analyticsService)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("ListenAndServe error: %v", err)
			rootCancel()
		}
	}()

	<-appCtx.Done()
	log.Println("shutdown: start")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	} else {
		log.Println("shutdown: done")
	}
}
