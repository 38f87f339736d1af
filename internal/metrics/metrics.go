package metrics

import (
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Path is where the asset server exposes the registry.
const Path = "/metrics"

// Outcome labels for analysis requests.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport_error"
	OutcomeService   = "service_error"
	OutcomeFallback  = "fallback"
	OutcomeDiscarded = "discarded"
)

// Collectors groups the viewer's metrics on a private registry so that
// several instances can coexist in tests.
type Collectors struct {
	Registry *prometheus.Registry

	AnalysisRequests *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	ServiceHealthy   prometheus.Gauge
	ViewModeToggles  *prometheus.CounterVec
}

func New() *Collectors {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collectors{
		Registry: reg,
		AnalysisRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soundsphere_analysis_requests_total",
				Help: "Analysis requests by outcome",
			},
			[]string{"outcome"},
		),
		AnalysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "soundsphere_analysis_duration_seconds",
				Help:    "Duration of analysis service calls in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		ServiceHealthy: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "soundsphere_service_healthy",
				Help: "1 when the last health check succeeded, 0 otherwise",
			},
		),
		ViewModeToggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soundsphere_view_mode_toggles_total",
				Help: "View mode transitions by target mode",
			},
			[]string{"mode"},
		),
	}
}

// ObserveHealth records the result of a health check.
func (c *Collectors) ObserveHealth(healthy bool) {
	if c == nil {
		return
	}
	if healthy {
		c.ServiceHealthy.Set(1)
		return
	}
	c.ServiceHealthy.Set(0)
}

// CountAnalysis increments the request counter for outcome.
func (c *Collectors) CountAnalysis(outcome string) {
	if c == nil {
		return
	}
	c.AnalysisRequests.WithLabelValues(outcome).Inc()
}

// ObserveDuration records an analysis call duration in seconds.
func (c *Collectors) ObserveDuration(seconds float64) {
	if c == nil {
		return
	}
	c.AnalysisDuration.Observe(seconds)
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}

// WriteText gathers the registry and writes it in the text exposition format.
func (c *Collectors) WriteText(w io.Writer) error {
	families, err := c.Registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// CountToggle increments the toggle counter for the mode entered.
func (c *Collectors) CountToggle(mode string) {
	if c == nil {
		return
	}
	c.ViewModeToggles.WithLabelValues(mode).Inc()
}
