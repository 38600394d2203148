package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/adiprasetyo/txcore/internal/pkg/logger"
	"github.com/adiprasetyo/txcore/internal/utils"
)

// PanicRecovery recovers from handler panics, logs the stack and returns a
// 500 instead of tearing down the connection.
func PanicRecovery(l *logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					l.Error("Panic recovered in HTTP handler",
						logger.Any("panic", r),
						logger.String("path", c.Request().URL.Path),
						logger.String("method", c.Request().Method),
						logger.String("stack", string(debug.Stack())))

					err = utils.ErrorResponseHandler(c, http.StatusInternalServerError,
						fmt.Sprintf("internal server error: %v", r))
				}
			}()
			return next(c)
		}
	}
}
