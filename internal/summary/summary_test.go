package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundsphere/internal/domain"
	"soundsphere/internal/icons"
)

func speechResult() domain.AnalysisResult {
	transcript := "hello there"
	warning := "mono input"
	return domain.AnalysisResult{
		Direction: domain.SphericalDirection{Azimuth: 269.66, Elevation: -4.18},
		Classification: []domain.ClassificationEntry{
			{Label: "Speech", Score: 0.892},
			{Label: "Dog", Score: 0.234},
			{Label: "Car", Score: 0.1},
			{Label: "Rain", Score: 0.05},
		},
		Transcript: &transcript,
		Warning:    &warning,
		Filename:   "talk.wav",
		Source:     domain.ResultSourceService,
	}
}

func TestBuildFormatsTopThree(t *testing.T) {
	s := Build(speechResult(), icons.NewTable(), domain.ViewModeOrbit)

	require.Len(t, s.Rows, TopN)
	assert.Equal(t, Row{Rank: 1, Icon: "🗣️", Name: "Speech", Label: "Speech", Score: 0.892, Percent: "89.2%"}, s.Rows[0])
	assert.Equal(t, "23.4%", s.Rows[1].Percent)
	assert.Equal(t, "Car", s.Rows[2].Name)

	assert.Equal(t, "talk.wav", s.Filename)
	assert.Equal(t, "269.7°", s.Azimuth)
	assert.Equal(t, "-4.2°", s.Elevation)
	assert.Equal(t, "Azimuth: 269.7° | Elevation: -4.2°", s.Location)
	assert.True(t, s.HasTranscript)
	assert.Equal(t, "hello there", s.Transcript)
	assert.Equal(t, "mono input", s.Warning)
	assert.Equal(t, "service", s.Source)
	assert.Equal(t, orbitHelp, s.Help)
}

func TestBuildWithoutIconsOrExtras(t *testing.T) {
	result := domain.AnalysisResult{
		Classification: []domain.ClassificationEntry{{Label: "Dog", Score: 1}},
	}
	s := Build(result, nil, domain.ViewModeImmersive)

	require.Len(t, s.Rows, 1)
	assert.Equal(t, "🔊", s.Rows[0].Icon)
	assert.Equal(t, "100.0%", s.Rows[0].Percent)
	assert.False(t, s.HasTranscript)
	assert.Empty(t, s.Warning)
	assert.Equal(t, immersiveHelp, s.Help)
	assert.Equal(t, "0.0°", s.Azimuth)
}

func TestBuildEmptyClassification(t *testing.T) {
	s := Build(domain.AnalysisResult{}, icons.NewTable(), domain.ViewModeOrbit)
	assert.Empty(t, s.Rows)
}

func TestPanelFor(t *testing.T) {
	result := speechResult()

	loading := PanelFor(domain.Status{State: domain.SessionStateLoading, Loading: true}, nil, nil)
	assert.Equal(t, "Processing Audio", loading.Heading)
	assert.Nil(t, loading.Summary)

	empty := PanelFor(domain.Status{State: domain.SessionStateIdle}, nil, nil)
	assert.Equal(t, "No Audio Uploaded", empty.Heading)

	failed := PanelFor(domain.Status{State: domain.SessionStateError, Message: "analysis service returned status 500"}, nil, nil)
	assert.Equal(t, "Analysis Failed", failed.Heading)
	assert.Equal(t, "analysis service returned status 500", failed.Body)

	ready := PanelFor(domain.Status{State: domain.SessionStateReady, HasData: true, ViewMode: domain.ViewModeImmersive}, &result, icons.NewTable())
	require.NotNil(t, ready.Summary)
	assert.Equal(t, "Analysis Results", ready.Heading)
	assert.Equal(t, immersiveHelp, ready.Summary.Help)
}
