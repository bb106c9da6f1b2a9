// Package server assembles the echo instance that serves the habit collection.
package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ytakahashi/habit-tracker/internal/handlers"
	"github.com/ytakahashi/habit-tracker/internal/services"
)

// CollectionPath is where the habit collection is mounted.
const CollectionPath = "/tasks"

type Options struct {
	AllowOrigins []string

	// Categories is enforced on create and update when EnforceCategories is set.
	Categories        []string
	EnforceCategories bool
}

// New returns an echo instance with middleware and routes registered.
func New(store services.HabitStore, logger *zap.Logger, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowOrigins,
	}))

	var handlerOpts []handlers.Option
	if opts.EnforceCategories {
		handlerOpts = append(handlerOpts, handlers.WithCategoryEnforcement(opts.Categories))
	}
	tasks := handlers.NewTaskHandler(store, logger, handlerOpts...)
	tasks.Register(e.Group(CollectionPath))

	e.GET("/health", handlers.Health)

	return e
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
