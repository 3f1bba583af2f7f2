package usecase

import (
	"fmt"
	"time"

	"callpulse/config"
	"callpulse/internal/infrastructure/http"
	"callpulse/internal/interfaces"
	"callpulse/internal/service/analytics"
	"callpulse/internal/service/callsapi"
	"callpulse/internal/service/metrics"
)

type callDashboard struct {
	metrics          metrics.Service
	analyticsService analytics.AnalyticsService
	cfg              *config.Config
	loc              *time.Location
}

// NewCallDashboard creates a new usecase instance with dependency injection
func NewCallDashboard(cfg *config.Config, analyticsService analytics.AnalyticsService) (interfaces.Usecase, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid reference timezone %q: %w", cfg.Timezone, err)
	}

	httpClient := http.NewHTTPClient()
	callsClient := callsapi.NewClient(httpClient, cfg)
	metricsService := metrics.NewService(callsClient, cfg)

	return &callDashboard{
		metrics:          metricsService,
		analyticsService: analyticsService,
		cfg:              cfg,
		loc:              loc,
	}, nil
}
