package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	BuildTime   string    `json:"build_time"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// DependencyCheck probes one external dependency
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// DependencyStatus is the probe result for one dependency
type DependencyStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewPingHandler creates a handler for the ping endpoint
func NewPingHandler(serviceName string) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	buildInfo := BuildInfo{
		Version:     "development",
		GitCommit:   "unknown",
		BuildTime:   "unknown",
		GoVersion:   runtime.Version(),
		ServiceName: serviceName,
	}
	if version := os.Getenv("VERSION"); version != "" {
		buildInfo.Version = version
	}
	if gitCommit := os.Getenv("GIT_COMMIT"); gitCommit != "" {
		buildInfo.GitCommit = gitCommit
	}
	if buildTime := os.Getenv("BUILD_TIME"); buildTime != "" {
		buildInfo.BuildTime = buildTime
	}

	return func(c echo.Context) error {
		buildInfo.Hostname = hostname
		buildInfo.ServerTime = time.Now()

		return c.JSON(http.StatusOK, buildInfo)
	}
}

// NewReadinessHandler probes every registered dependency and reports 503
// when any of them fails.
func NewReadinessHandler(checks ...DependencyCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		healthy := true
		statuses := make([]DependencyStatus, 0, len(checks))
		for _, check := range checks {
			status := DependencyStatus{Name: check.Name, Status: "ok"}
			if err := check.Check(ctx); err != nil {
				status.Status = "unavailable"
				status.Error = err.Error()
				healthy = false
			}
			statuses = append(statuses, status)
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, map[string]interface{}{
			"healthy":      healthy,
			"dependencies": statuses,
		})
	}
}

// RegisterHealthEndpoints registers the health check endpoints
func RegisterHealthEndpoints(e *echo.Echo, serviceName string, checks ...DependencyCheck) {
	e.GET("/ping", NewPingHandler(serviceName))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/ready", NewReadinessHandler(checks...))
}
