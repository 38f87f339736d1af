package usecase

import (
	"context"
	"errors"

	"soundsphere/internal/ports"
)

// ErrServiceUnavailable is returned when the service is unhealthy and no
// fallback provider is enabled.
var ErrServiceUnavailable = errors.New("analysis service is unavailable")

// ProviderSelector picks the analysis strategy for one upload: the service
// when it is healthy, otherwise the fallback provider if one is enabled.
type ProviderSelector struct {
	service  ports.AnalysisService
	fallback ports.ResultProvider
}

// NewProviderSelector returns a selector. A nil fallback disables fallback.
func NewProviderSelector(service ports.AnalysisService, fallback ports.ResultProvider) *ProviderSelector {
	return &ProviderSelector{service: service, fallback: fallback}
}

// Select runs the health check and returns the provider to use.
func (s *ProviderSelector) Select(ctx context.Context) (ports.ResultProvider, error) {
	if s.service != nil && s.service.CheckHealth(ctx) {
		return s.service, nil
	}
	if s.fallback != nil {
		return s.fallback, nil
	}
	return nil, ErrServiceUnavailable
}
