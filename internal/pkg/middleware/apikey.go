package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adiprasetyo/txcore/internal/pkg/config"
	"github.com/adiprasetyo/txcore/internal/utils"
)

const (
	// APIKeyHeader carries the service-to-service credential
	APIKeyHeader = "X-API-Key"
)

// ServiceAPIKeys maps caller service names to their API keys
var ServiceAPIKeys = map[string]string{
	"orchestrator": config.GetEnv("ORCHESTRATOR_API_KEY", ""),
	"ops-console":  config.GetEnv("OPS_CONSOLE_API_KEY", ""),
}

// ValidateAPIKey validates the API key for service-to-service communication
func ValidateAPIKey(allowedServices ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "API key is required")
			}

			validKey := false
			for _, service := range allowedServices {
				expected := ServiceAPIKeys[service]
				if expected != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1 {
					validKey = true
					break
				}
			}

			if !validKey {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
			}

			return next(c)
		}
	}
}
