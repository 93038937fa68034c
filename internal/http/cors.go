package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware returns nil unless CORS is enabled with at least one valid
// origin. Only the methods of the secret API are allowed and credentials are never
// shared: possession of a reference is the whole authorization model.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := parseOrigins(allowOrigins)
	if len(origins) == 0 {
		logger.Warn("cors enabled without origins, skipping")
		return nil
	}

	config := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	// cors.New panics on an invalid config.
	if err := config.Validate(); err != nil {
		logger.Warn("invalid cors origins, skipping", slog.Any("error", err))
		return nil
	}

	logger.Info("cors enabled", slog.Any("origins", origins))
	return cors.New(config)
}

func parseOrigins(allowOrigins string) []string {
	var origins []string
	for origin := range strings.SplitSeq(allowOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
