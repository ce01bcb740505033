package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipebox-svc/src/clients"
	"recipebox-svc/src/internal/config"
	"recipebox-svc/src/internal/dependency"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger()

type Server struct {
	cfg *config.Configuration
}

func New(cfg *config.Configuration) *Server {
	return &Server{cfg: cfg}
}

// Start connects the backing services, reconciles the admin identity and
// serves HTTP until interrupted. A missing MongoDB is fatal; Redis and
// RabbitMQ are optional and degrade to cache-less and audit-less operation.
func (s *Server) Start() error {
	cfg := s.cfg

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	mongodb, err := clients.NewMongoDB(&cfg.Database)
	if err != nil {
		// An application with no working store is not useful.
		log.WithError(err).Fatal("MongoDB is unreachable, shutting down")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongodb.Close(ctx)
	}()

	redisClient, err := clients.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.WithError(err).Warn("Redis is unreachable, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	rabbitMQ, err := clients.NewRabbitMQ(&cfg.Queue)
	if err != nil {
		log.WithError(err).Warn("RabbitMQ is unreachable, continuing without activity publishing")
		rabbitMQ = nil
	} else {
		defer rabbitMQ.Close()
		if err := rabbitMQ.SetupExchange(); err != nil {
			log.WithError(err).Warn("Failed to declare RabbitMQ exchange")
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())

	deps := dependency.NewDependencyManager(router, mongodb, redisClient, rabbitMQ, cfg)

	bootstrapCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.Timeout)*time.Second)
	if err := deps.Reconciler.Reconcile(bootstrapCtx); err != nil {
		log.WithError(err).Error("Admin bootstrap reconciliation failed")
	}
	cancel()

	SetupRoutes(deps)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server listening on port %s", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Infof("Received signal %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
		return err
	}

	log.Info("Server stopped")
	return nil
}
