package model

import (
	"fmt"
	"time"
)

// IntegrationType is the kind of external system.
type IntegrationType string

const (
	IntegrationAPI      IntegrationType = "api"
	IntegrationDatabase IntegrationType = "database"
	IntegrationService  IntegrationType = "service"
	IntegrationCloud    IntegrationType = "cloud"
)

// IntegrationStatus is the health of a connector.
type IntegrationStatus string

const (
	IntegrationActive   IntegrationStatus = "active"
	IntegrationInactive IntegrationStatus = "inactive"
	IntegrationError    IntegrationStatus = "error"
)

// ValidIntegrationStatuses are the allowed integration statuses.
var ValidIntegrationStatuses = map[IntegrationStatus]bool{
	IntegrationActive:   true,
	IntegrationInactive: true,
	IntegrationError:    true,
}

// AuthType selects how a connector authenticates.
type AuthType string

const (
	AuthAPIKey AuthType = "apiKey"
	AuthOAuth2 AuthType = "oauth2"
	AuthBasic  AuthType = "basic"
)

// Authentication holds connector credentials.
type Authentication struct {
	Type        AuthType          `json:"type"`
	Credentials map[string]string `json:"credentials,omitempty"`
}

// IntegrationConfig holds connector tuning. Timeout is in milliseconds.
type IntegrationConfig struct {
	MaxRetries     *int            `json:"maxRetries,omitempty"`
	Timeout        *int            `json:"timeout,omitempty"`
	RateLimit      *int            `json:"rateLimit,omitempty"`
	Authentication *Authentication `json:"authentication,omitempty"`
}

// IntegrationMetrics is the last observed connector health.
type IntegrationMetrics struct {
	Uptime      float64  `json:"uptime"`
	Latency     float64  `json:"latency"`
	Requests    int64    `json:"requests"`
	Errors      *int64   `json:"errors,omitempty"`
	SuccessRate *float64 `json:"successRate,omitempty"`
}

// Integration is a configured external system connector.
type Integration struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Type        IntegrationType     `json:"type"`
	Status      IntegrationStatus   `json:"status"`
	Description string              `json:"description"`
	Endpoint    string              `json:"endpoint,omitempty"`
	LastSync    *time.Time          `json:"lastSync,omitempty"`
	Config      *IntegrationConfig  `json:"config,omitempty"`
	Metrics     *IntegrationMetrics `json:"metrics,omitempty"`
	Permissions []string            `json:"permissions,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
}

// IntegrationPatch is a partial integration.
type IntegrationPatch struct {
	ID          string              `json:"id"`
	Name        *string             `json:"name,omitempty"`
	Type        *IntegrationType    `json:"type,omitempty"`
	Status      *IntegrationStatus  `json:"status,omitempty"`
	Description *string             `json:"description,omitempty"`
	Endpoint    *string             `json:"endpoint,omitempty"`
	LastSync    *time.Time          `json:"lastSync,omitempty"`
	Config      *IntegrationConfig  `json:"config,omitempty"`
	Metrics     *IntegrationMetrics `json:"metrics,omitempty"`
	Permissions *[]string           `json:"permissions,omitempty"`
	Tags        *[]string           `json:"tags,omitempty"`
}

// Apply shallow-merges the patch into i and returns the result.
func (p IntegrationPatch) Apply(i Integration) Integration {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Endpoint != nil {
		i.Endpoint = *p.Endpoint
	}
	if p.LastSync != nil {
		i.LastSync = p.LastSync
	}
	if p.Config != nil {
		i.Config = p.Config
	}
	if p.Metrics != nil {
		i.Metrics = p.Metrics
	}
	if p.Permissions != nil {
		i.Permissions = *p.Permissions
	}
	if p.Tags != nil {
		i.Tags = *p.Tags
	}
	return i
}

// IntegrationState is the full integration store snapshot.
type IntegrationState struct {
	Integrations []Integration `json:"integrations"`
}

// Normalized replaces a nil collection with an empty one.
func (s IntegrationState) Normalized() IntegrationState {
	if s.Integrations == nil {
		s.Integrations = []Integration{}
	}
	return s
}

// IntegrationFields are the top-level keys of a serialized IntegrationState.
var IntegrationFields = []string{"integrations"}

// Validate checks that every integration has an id and a known status.
func (s IntegrationState) Validate() error {
	for _, i := range s.Integrations {
		if i.ID == "" {
			return fmt.Errorf("integration id is required")
		}
		if !ValidIntegrationStatuses[i.Status] {
			return fmt.Errorf("integration %s: invalid status %q", i.ID, i.Status)
		}
	}
	return nil
}
