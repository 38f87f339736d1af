// Package static provides canned analysis results used when the analysis
// service is unavailable.
package static

import (
	"context"
	"math/rand/v2"
	"time"

	"soundsphere/internal/domain"
)

// Scenario is one canned result without a filename.
type Scenario struct {
	Direction      domain.SphericalDirection
	Classification []domain.ClassificationEntry
	Transcript     string
}

// Scenarios returns the built-in canned results.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Direction: domain.SphericalDirection{Azimuth: 269.65, Elevation: 4.18},
			Classification: []domain.ClassificationEntry{
				{Label: "Chicken, rooster", Score: 0.691},
				{Label: "Fowl", Score: 0.145},
				{Label: "Cluck", Score: 0.111},
			},
		},
		{
			Direction: domain.SphericalDirection{Azimuth: 45.2, Elevation: -12.5},
			Classification: []domain.ClassificationEntry{
				{Label: "Dog", Score: 0.823},
				{Label: "Animal", Score: 0.156},
				{Label: "Bark", Score: 0.124},
			},
		},
		{
			Direction: domain.SphericalDirection{Azimuth: 180, Elevation: 30},
			Classification: []domain.ClassificationEntry{
				{Label: "Speech", Score: 0.892},
				{Label: "Male speech", Score: 0.234},
				{Label: "Conversation", Score: 0.187},
			},
			Transcript: "Hello, this is a test speech transcription to demonstrate how the UI handles longer text content.",
		},
		{
			Direction: domain.SphericalDirection{Azimuth: 90, Elevation: -45},
			Classification: []domain.ClassificationEntry{
				{Label: "Car", Score: 0.756},
				{Label: "Vehicle", Score: 0.198},
				{Label: "Motor", Score: 0.134},
			},
		},
	}
}

// Config controls the static provider.
type Config struct {
	// Delay simulates service latency. Zero returns immediately.
	Delay time.Duration
	// Pick chooses a scenario index in [0, n). Defaults to a uniform random pick.
	Pick func(n int) int
}

// Provider implements ports.ResultProvider with canned results.
type Provider struct {
	cfg       Config
	scenarios []Scenario
}

func NewProvider(cfg Config) *Provider {
	if cfg.Pick == nil {
		cfg.Pick = rand.IntN
	}
	return &Provider{cfg: cfg, scenarios: Scenarios()}
}

func (p *Provider) Source() domain.ResultSource {
	return domain.ResultSourceFallback
}

// Analyze ignores data and returns one canned scenario labelled with filename.
func (p *Provider) Analyze(ctx context.Context, _ []byte, filename string) (domain.AnalysisResult, error) {
	if p.cfg.Delay > 0 {
		timer := time.NewTimer(p.cfg.Delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return domain.AnalysisResult{}, ctx.Err()
		}
	}

	index := p.cfg.Pick(len(p.scenarios))
	if index < 0 || index >= len(p.scenarios) {
		index = 0
	}
	s := p.scenarios[index]

	entries := make([]domain.ClassificationEntry, len(s.Classification))
	copy(entries, s.Classification)

	result := domain.AnalysisResult{
		Direction:      s.Direction,
		Classification: entries,
		Filename:       filename,
		Source:         domain.ResultSourceFallback,
	}
	if s.Transcript != "" {
		transcript := s.Transcript
		result.Transcript = &transcript
	}
	return result, nil
}
