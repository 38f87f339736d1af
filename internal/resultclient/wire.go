package resultclient

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"soundsphere/internal/domain"
)

const responseSchema = `{
  "type": "object",
  "required": ["azimuth", "elevation", "classification"],
  "properties": {
    "azimuth": {"type": "number"},
    "elevation": {"type": "number"},
    "delay_samples": {"type": "number"},
    "delay_seconds": {"type": "number"},
    "classification": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["label", "score"],
        "properties": {
          "label": {"type": "string", "minLength": 1},
          "score": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "transcription": {"type": ["string", "null"]},
    "warning": {"type": "string"}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(responseSchema)

// WireEntry is one classification entry as sent by the service.
type WireEntry struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// WireResponse is the /analyze-audio response body.
type WireResponse struct {
	Azimuth        float64     `json:"azimuth"`
	Elevation      float64     `json:"elevation"`
	DelaySamples   float64     `json:"delay_samples"`
	DelaySeconds   float64     `json:"delay_seconds"`
	Classification []WireEntry `json:"classification"`
	Transcription  *string     `json:"transcription"`
	Warning        *string     `json:"warning,omitempty"`
}

// DecodeResponse validates body against the response schema before decoding it.
func DecodeResponse(body []byte) (WireResponse, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return WireResponse{}, err
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return WireResponse{}, errors.New(strings.Join(msgs, "; "))
	}

	var out WireResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return WireResponse{}, err
	}
	return out, nil
}

// MapResponse converts a decoded response into the internal result. Entry
// order is preserved.
func MapResponse(wire WireResponse, filename string) domain.AnalysisResult {
	entries := make([]domain.ClassificationEntry, len(wire.Classification))
	for i, e := range wire.Classification {
		entries[i] = domain.ClassificationEntry{Label: e.Label, Score: e.Score}
	}

	return domain.AnalysisResult{
		Direction: domain.SphericalDirection{
			Azimuth:   wire.Azimuth,
			Elevation: wire.Elevation,
		},
		Classification: entries,
		Transcript:     copyString(wire.Transcription),
		Filename:       filename,
		Warning:        copyString(wire.Warning),
		Source:         domain.ResultSourceService,
		DelaySamples:   wire.DelaySamples,
		DelaySeconds:   wire.DelaySeconds,
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
