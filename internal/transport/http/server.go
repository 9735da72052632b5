// Package http provides the HTTP server for the lookup API.
package http

import (
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/imcoder44/FootprintX/internal/config"
	"github.com/imcoder44/FootprintX/internal/metric"
	"github.com/imcoder44/FootprintX/internal/service"
	v1 "github.com/imcoder44/FootprintX/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server.
func NewServer(cfg *config.Config, gateway *service.Gateway, metrics *metric.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	var submit []echo.MiddlewareFunc
	if cfg.AuthEnabled() {
		submit = append(submit, basicAuth(cfg.AuthUsername, cfg.AuthPassword))
	}

	v1.NewHandler(gateway, metrics).RegisterRoutes(e, submit...)

	return e
}

func basicAuth(username, password string) echo.MiddlewareFunc {
	return middleware.BasicAuth(func(u, p string, c echo.Context) (bool, error) {
		userOK := subtle.ConstantTimeCompare([]byte(u), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1
		return userOK && passOK, nil
	})
}

func logLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
