// Package summary builds the results panel shown next to the scene.
package summary

import (
	"fmt"

	"soundsphere/internal/domain"
	"soundsphere/internal/ports"
)

// TopN is the number of classification rows shown.
const TopN = 3

const (
	orbitHelp     = "💡 Use mouse to rotate the 3D view. Scroll to zoom in/out."
	immersiveHelp = "💡 Drag to look around. You are standing at the listening point."
)

// Row is one ranked classification line.
type Row struct {
	Rank    int     `json:"rank"`
	Icon    string  `json:"icon"`
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Score   float64 `json:"score"`
	Percent string  `json:"percent"`
}

// Summary is the rendered view of one AnalysisResult.
type Summary struct {
	Filename      string `json:"filename"`
	Rows          []Row  `json:"rows"`
	Azimuth       string `json:"azimuth"`
	Elevation     string `json:"elevation"`
	Location      string `json:"location"`
	Transcript    string `json:"transcript,omitempty"`
	HasTranscript bool   `json:"hasTranscript"`
	Warning       string `json:"warning,omitempty"`
	Source        string `json:"source"`
	Help          string `json:"help"`
}

// Panel is what the results panel shows for the current status.
type Panel struct {
	Heading string   `json:"heading"`
	Body    string   `json:"body,omitempty"`
	Summary *Summary `json:"summary,omitempty"`
}

// Build formats result for display. icons may be nil.
func Build(result domain.AnalysisResult, icons ports.IconLookup, mode domain.ViewMode) Summary {
	top := result.Top(TopN)
	rows := make([]Row, len(top))
	for i, entry := range top {
		glyph, name := "🔊", "Sound"
		if icons != nil {
			glyph, name = icons.Lookup(entry.Label)
		}
		rows[i] = Row{
			Rank:    i + 1,
			Icon:    glyph,
			Name:    name,
			Label:   entry.Label,
			Score:   entry.Score,
			Percent: Percent(entry.Score),
		}
	}

	s := Summary{
		Filename:  result.Filename,
		Rows:      rows,
		Azimuth:   Degrees(result.Direction.Azimuth),
		Elevation: Degrees(result.Direction.Elevation),
		Location: fmt.Sprintf("Azimuth: %s | Elevation: %s",
			Degrees(result.Direction.Azimuth), Degrees(result.Direction.Elevation)),
		Source: string(result.Source),
		Help:   Help(mode),
	}
	if result.HasTranscript() {
		s.Transcript = *result.Transcript
		s.HasTranscript = true
	}
	if result.Warning != nil {
		s.Warning = *result.Warning
	}
	return s
}

// PanelFor picks the loading, empty or result panel.
func PanelFor(status domain.Status, result *domain.AnalysisResult, icons ports.IconLookup) Panel {
	switch {
	case status.Loading:
		return Panel{Heading: "Processing Audio", Body: "Analyzing sound patterns and spatial information..."}
	case result == nil && status.State == domain.SessionStateError:
		return Panel{Heading: "Analysis Failed", Body: status.Message}
	case result == nil:
		return Panel{Heading: "No Audio Uploaded", Body: "Upload an audio file to see analysis results"}
	}
	s := Build(*result, icons, status.ViewMode)
	return Panel{Heading: "Analysis Results", Summary: &s}
}

func Percent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

func Degrees(angle float64) string {
	return fmt.Sprintf("%.1f°", angle)
}

// Help returns the interaction hint for mode.
func Help(mode domain.ViewMode) string {
	if mode == domain.ViewModeImmersive {
		return immersiveHelp
	}
	return orbitHelp
}
