package integration

import (
	"math"

	"github.com/rcliao/agent-console/internal/model"
)

// Health summarizes connector status across the store.
type Health struct {
	Total         int                             `json:"total"`
	ByStatus      map[model.IntegrationStatus]int `json:"by_status"`
	MeanUptime    float64                         `json:"mean_uptime"`
	MeanLatencyMS float64                         `json:"mean_latency_ms"`
	TotalRequests int64                           `json:"total_requests"`
	TotalErrors   int64                           `json:"total_errors"`
}

// ComputeHealth aggregates metrics. Means cover only connectors that report
// metrics.
func ComputeHealth(state model.IntegrationState) *Health {
	h := &Health{
		Total:    len(state.Integrations),
		ByStatus: map[model.IntegrationStatus]int{},
	}

	var uptime, latency float64
	reporting := 0
	for _, i := range state.Integrations {
		h.ByStatus[i.Status]++
		if i.Metrics == nil {
			continue
		}
		reporting++
		uptime += i.Metrics.Uptime
		latency += i.Metrics.Latency
		h.TotalRequests += i.Metrics.Requests
		if i.Metrics.Errors != nil {
			h.TotalErrors += *i.Metrics.Errors
		}
	}
	if reporting > 0 {
		h.MeanUptime = math.Round(uptime/float64(reporting)*100) / 100
		h.MeanLatencyMS = math.Round(latency/float64(reporting)*100) / 100
	}
	return h
}
