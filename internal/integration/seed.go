package integration

import (
	"time"

	"github.com/rcliao/agent-console/internal/model"
)

func ptr[T any](v T) *T { return &v }

// Seed returns the built-in connectors used when nothing has been persisted.
func Seed(now time.Time) model.IntegrationState {
	now = now.UTC()
	return model.IntegrationState{
		Integrations: []model.Integration{
			{
				ID:          "1",
				Name:        "External API Gateway",
				Type:        model.IntegrationAPI,
				Status:      model.IntegrationActive,
				Description: "Primary API integration for external services",
				Endpoint:    "https://api.example.com/v1",
				LastSync:    ptr(now),
				Config: &model.IntegrationConfig{
					MaxRetries: ptr(3),
					Timeout:    ptr(5000),
					RateLimit:  ptr(100),
					Authentication: &model.Authentication{
						Type:        model.AuthAPIKey,
						Credentials: map[string]string{"headerName": "X-API-Key"},
					},
				},
				Metrics: &model.IntegrationMetrics{
					Uptime:      99.9,
					Latency:     150,
					Requests:    15000,
					Errors:      ptr[int64](23),
					SuccessRate: ptr(99.85),
				},
				Permissions: []string{"read", "write"},
				Tags:        []string{"external", "api", "gateway"},
			},
			{
				ID:          "2",
				Name:        "Cloud Storage Service",
				Type:        model.IntegrationCloud,
				Status:      model.IntegrationActive,
				Description: "Distributed storage system for application data",
				Endpoint:    "s3://my-bucket",
				LastSync:    ptr(now),
				Config: &model.IntegrationConfig{
					MaxRetries:     ptr(5),
					Timeout:        ptr(10000),
					Authentication: &model.Authentication{Type: model.AuthOAuth2},
				},
				Metrics: &model.IntegrationMetrics{
					Uptime:      99.99,
					Latency:     200,
					Requests:    8500,
					Errors:      ptr[int64](12),
					SuccessRate: ptr(99.86),
				},
				Permissions: []string{"read", "write", "delete"},
				Tags:        []string{"storage", "cloud", "data"},
			},
			{
				ID:          "3",
				Name:        "Analytics Database",
				Type:        model.IntegrationDatabase,
				Status:      model.IntegrationActive,
				Description: "Time-series database for analytics data",
				Endpoint:    "postgresql://analytics.example.com:5432",
				LastSync:    ptr(now),
				Config: &model.IntegrationConfig{
					MaxRetries:     ptr(3),
					Timeout:        ptr(3000),
					Authentication: &model.Authentication{Type: model.AuthBasic},
				},
				Metrics: &model.IntegrationMetrics{
					Uptime:      99.95,
					Latency:     50,
					Requests:    25000,
					Errors:      ptr[int64](15),
					SuccessRate: ptr(99.94),
				},
				Permissions: []string{"read", "write"},
				Tags:        []string{"database", "analytics", "timeseries"},
			},
		},
	}
}
