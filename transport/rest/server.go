package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger, port string, useCase GameUseCase) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      NewRouter(logger, useCase),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// NewRouter - builds the gin engine with every REST route.
func NewRouter(logger *slog.Logger, useCase GameUseCase) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery(), tracing(), requestLogger(logger))

	handlers := NewHandlers(logger, useCase)

	router.GET("/ping", NewPingHandler().PingHandler)

	api := router.Group("/api")
	api.POST("/engine/move", handlers.SelectMove)
	api.POST("/games", handlers.CreateGame)
	api.GET("/games/:id", handlers.GetGame)
	api.DELETE("/games/:id", handlers.DeleteGame)
	api.POST("/games/:id/turn", handlers.MakeTurn)
	api.POST("/games/:id/restart", handlers.Restart)
	api.GET("/games/:id/scores", handlers.GetScores)
	api.GET("/history", handlers.History)

	return router
}

// Start - serves until ctx is cancelled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		that.logger.Info("Starting HTTP server", "addr", that.srv.Addr)
		if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := that.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	that.logger.Info("HTTP server stopped")

	return nil
}
