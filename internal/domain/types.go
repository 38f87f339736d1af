package domain

import "strings"

// ViewMode selects the camera vantage point of the sphere viewer.
type ViewMode string

const (
	ViewModeOrbit     ViewMode = "orbit"
	ViewModeImmersive ViewMode = "immersive"
)

// Other returns the mode a toggle transitions to.
func (m ViewMode) Other() ViewMode {
	if m == ViewModeImmersive {
		return ViewModeOrbit
	}
	return ViewModeImmersive
}

// SessionState models the upload/analysis lifecycle of the viewer.
type SessionState string

const (
	SessionStateIdle    SessionState = "idle"
	SessionStateLoading SessionState = "loading"
	SessionStateReady   SessionState = "ready"
	SessionStateError   SessionState = "error"
)

// SessionStateReason provides a structured reason for state transitions.
type SessionStateReason string

const (
	SessionReasonAwaitingUpload   SessionStateReason = "awaiting_upload"
	SessionReasonAnalyzing        SessionStateReason = "analyzing"
	SessionReasonResultReady      SessionStateReason = "result_ready"
	SessionReasonFallbackResult   SessionStateReason = "fallback_result"
	SessionReasonAnalysisFailed   SessionStateReason = "analysis_failed"
	SessionReasonServiceUnhealthy SessionStateReason = "service_unhealthy"
	SessionReasonReset            SessionStateReason = "reset"
)

// ErrorCode identifies errors surfaced to the UI.
type ErrorCode string

const (
	ErrorCodeStartup     ErrorCode = "startup"
	ErrorCodeUpload      ErrorCode = "upload"
	ErrorCodeTransport   ErrorCode = "transport"
	ErrorCodeService     ErrorCode = "service"
	ErrorCodeUnavailable ErrorCode = "unavailable"
)

// ResultSource records who produced an AnalysisResult.
type ResultSource string

const (
	ResultSourceService  ResultSource = "service"
	ResultSourceFallback ResultSource = "fallback"
)

// SphericalDirection is a bearing in degrees. Azimuth is read modulo 360 and
// elevation is not range checked.
type SphericalDirection struct {
	Azimuth   float64 `json:"azimuth"`
	Elevation float64 `json:"elevation"`
}

// ClassificationEntry is one ranked label produced by the analysis service.
type ClassificationEntry struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalysisResult is the mapped outcome of one analysis call. It is built once
// and never mutated afterwards.
type AnalysisResult struct {
	Direction      SphericalDirection    `json:"direction"`
	Classification []ClassificationEntry `json:"classification"`
	Transcript     *string               `json:"transcript"`
	Filename       string                `json:"filename"`
	Warning        *string               `json:"warning,omitempty"`
	Source         ResultSource          `json:"source"`

	// Carried through from the service response, not consumed.
	DelaySamples float64 `json:"delaySamples"`
	DelaySeconds float64 `json:"delaySeconds"`
}

// Top returns a copy of at most n leading classification entries in service order.
func (r AnalysisResult) Top(n int) []ClassificationEntry {
	if n <= 0 || len(r.Classification) == 0 {
		return nil
	}
	if n > len(r.Classification) {
		n = len(r.Classification)
	}
	out := make([]ClassificationEntry, n)
	copy(out, r.Classification[:n])
	return out
}

// Primary returns the top-ranked entry, or "Unknown" with score 0 when the
// service returned no labels.
func (r AnalysisResult) Primary() ClassificationEntry {
	if len(r.Classification) == 0 || strings.TrimSpace(r.Classification[0].Label) == "" {
		return ClassificationEntry{Label: "Unknown", Score: 0}
	}
	return r.Classification[0]
}

// HasTranscript reports whether a non-empty transcript is attached.
func (r AnalysisResult) HasTranscript() bool {
	return r.Transcript != nil && strings.TrimSpace(*r.Transcript) != ""
}

// Status summarizes the current runtime status.
type Status struct {
	State    SessionState `json:"state"`
	Loading  bool         `json:"loading"`
	HasData  bool         `json:"hasData"`
	ViewMode ViewMode     `json:"viewMode"`
	Message  string       `json:"message,omitempty"`
}

// Accepted upload media types.
var acceptedMediaTypes = map[string]struct{}{
	"audio/wav":  {},
	"audio/mp3":  {},
	"audio/mpeg": {},
}

// AcceptedMediaType reports whether an upload with the given MIME type may be analyzed.
func AcceptedMediaType(mediaType string) bool {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	_, ok := acceptedMediaTypes[mediaType]
	return ok
}
