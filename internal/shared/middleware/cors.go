package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pizzaria-erp/go-api-server/internal/config"
)

// CORS configures cross-origin access for the back-office frontend. The
// Authorization header is always allowed and X-Request-ID always exposed.
func CORS(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	corsConfig.AddAllowHeaders(AuthorizationHeader, RequestIDHeader)

	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
		// credentials cannot be combined with a wildcard origin
		corsConfig.AllowCredentials = false
	}

	return cors.New(corsConfig)
}
