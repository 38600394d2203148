package newrelic

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/adiprasetyo/txcore/internal/pkg/logger"
	"github.com/adiprasetyo/txcore/internal/pkg/models"
)

// InitNewRelic initializes the New Relic application based on configuration.
// Returns nil when New Relic is disabled; callers must tolerate a nil app.
func InitNewRelic(configs *models.Config) *newrelic.Application {
	if !configs.NewRelic.Enabled || configs.NewRelic.LicenseKey == "" {
		logger.Info("New Relic is disabled or license key not provided")
		return nil
	}

	logger.Info("Initializing New Relic",
		logger.String("app_name", configs.NewRelic.AppName),
		logger.Bool("logs_enabled", configs.NewRelic.LogsEnabled))

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(configs.NewRelic.AppName),
		newrelic.ConfigLicense(configs.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(configs.NewRelic.ForwardLogs),
		newrelic.ConfigAppLogDecoratingEnabled(true),
	)
	if err != nil {
		logger.Warn("Failed to initialize New Relic, continuing without it",
			logger.Err(err))
		return nil
	}

	return nrApp
}
