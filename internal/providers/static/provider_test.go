package static

import (
	"context"
	"errors"
	"testing"
	"time"

	"soundsphere/internal/domain"
)

func fixed(i int) func(int) int {
	return func(int) int { return i }
}

func TestProviderReturnsPickedScenario(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{Pick: fixed(1)})
	result, err := p.Analyze(context.Background(), nil, "bark.wav")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if result.Filename != "bark.wav" {
		t.Fatalf("unexpected filename: %q", result.Filename)
	}
	if result.Direction.Azimuth != 45.2 || result.Direction.Elevation != -12.5 {
		t.Fatalf("unexpected direction: %+v", result.Direction)
	}
	if result.Primary().Label != "Dog" {
		t.Fatalf("unexpected primary label: %+v", result.Primary())
	}
	if result.Transcript != nil {
		t.Fatalf("expected no transcript")
	}
	if result.Source != domain.ResultSourceFallback || p.Source() != domain.ResultSourceFallback {
		t.Fatalf("expected fallback source")
	}
}

func TestProviderSpeechScenarioHasTranscript(t *testing.T) {
	t.Parallel()

	result, err := NewProvider(Config{Pick: fixed(2)}).Analyze(context.Background(), nil, "talk.wav")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !result.HasTranscript() {
		t.Fatalf("expected transcript on speech scenario")
	}
}

func TestProviderOutOfRangePickFallsBackToFirst(t *testing.T) {
	t.Parallel()

	result, err := NewProvider(Config{Pick: fixed(99)}).Analyze(context.Background(), nil, "x.wav")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if result.Primary().Label != "Chicken, rooster" {
		t.Fatalf("unexpected primary label: %+v", result.Primary())
	}
}

func TestProviderResultsDoNotShareClassification(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{Pick: fixed(0)})
	first, _ := p.Analyze(context.Background(), nil, "a.wav")
	first.Classification[0].Label = "mutated"

	second, _ := p.Analyze(context.Background(), nil, "b.wav")
	if second.Classification[0].Label != "Chicken, rooster" {
		t.Fatalf("scenario table was mutated through a result")
	}
}

func TestProviderDelayHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider(Config{Delay: time.Hour}).Analyze(ctx, nil, "x.wav")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDefaultPickStaysInRange(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{})
	for i := 0; i < 50; i++ {
		result, err := p.Analyze(context.Background(), nil, "x.wav")
		if err != nil {
			t.Fatalf("analyze failed: %v", err)
		}
		if len(result.Classification) != 3 {
			t.Fatalf("unexpected classification: %+v", result.Classification)
		}
	}
}
