package ports

import (
	"context"

	"soundsphere/internal/domain"
)

// ResultProvider produces an AnalysisResult for one uploaded file.
type ResultProvider interface {
	Analyze(ctx context.Context, data []byte, filename string) (domain.AnalysisResult, error)
	Source() domain.ResultSource
}

// HealthChecker reports whether the analysis service is reachable.
type HealthChecker interface {
	CheckHealth(ctx context.Context) bool
}

// AnalysisService is the remote analysis backend.
type AnalysisService interface {
	ResultProvider
	HealthChecker
}

// ViewModeState is the read side of the view-mode state machine.
type ViewModeState interface {
	Mode() domain.ViewMode
}

// ViewModeResetter returns the view-mode state machine to its initial state.
type ViewModeResetter interface {
	Reset()
}

// RigRebuilder tears down the current camera rig and constructs a new one for mode.
type RigRebuilder interface {
	RebuildRig(mode domain.ViewMode)
}

// IconLookup resolves a classification label to a display icon and name.
type IconLookup interface {
	Lookup(label string) (icon string, name string)
}

// EventSink emits backend state/events to the UI.
type EventSink interface {
	SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason)
	ResultReady(result domain.AnalysisResult)
	AdvisoryWarning(message string)
	SessionError(code domain.ErrorCode, detail string)
}
