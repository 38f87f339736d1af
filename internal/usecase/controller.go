package usecase

import (
	"context"
	"errors"
	"sync"

	"soundsphere/internal/domain"
	"soundsphere/internal/logger"
	"soundsphere/internal/metrics"
	"soundsphere/internal/ports"
)

var (
	ErrAnalysisInProgress = errors.New("an analysis is already in progress")
	ErrNoResult           = errors.New("no analysis result available")
	// ErrResultDiscarded is returned when a reset happened while the request
	// was in flight. The late result is not stored.
	ErrResultDiscarded = errors.New("analysis result discarded after reset")
)

const fallbackNotice = "Analysis service is unavailable. Showing a sample result."

// ViewMode is the part of the view-mode state machine the session controller drives.
type ViewMode interface {
	ports.ViewModeState
	ports.ViewModeResetter
}

// SessionController owns the upload lifecycle: the current result, the
// loading state and the generation counter that guards against late responses.
type SessionController struct {
	selector *ProviderSelector
	viewMode ViewMode
	events   ports.EventSink
	log      logger.Logger
	metrics  *metrics.Collectors

	mu         sync.Mutex
	state      domain.SessionState
	message    string
	result     *domain.AnalysisResult
	generation uint64
}

func NewSessionController(
	selector *ProviderSelector,
	viewMode ViewMode,
	events ports.EventSink,
	log logger.Logger,
	m *metrics.Collectors,
) *SessionController {
	if events == nil {
		events = nopSink{}
	}
	return &SessionController{
		selector: selector,
		viewMode: viewMode,
		events:   events,
		log:      logger.OrNop(log),
		metrics:  m,
		state:    domain.SessionStateIdle,
	}
}

// Analyze clears any previous result, resets the view mode and runs one
// analysis. Only one analysis may be pending at a time.
func (c *SessionController) Analyze(ctx context.Context, data []byte, filename string) (domain.AnalysisResult, error) {
	c.mu.Lock()
	if c.state == domain.SessionStateLoading {
		c.mu.Unlock()
		return domain.AnalysisResult{}, ErrAnalysisInProgress
	}
	c.generation++
	generation := c.generation
	c.result = nil
	c.state = domain.SessionStateLoading
	c.message = ""
	c.mu.Unlock()

	c.viewMode.Reset()
	c.events.SessionStateChanged(domain.SessionStateLoading, domain.SessionReasonAnalyzing)

	log := c.log.WithFields(map[string]interface{}{"filename": filename, "generation": generation})

	provider, err := c.selector.Select(ctx)
	if err != nil {
		log.Warn("no analysis provider available", map[string]interface{}{"error": err.Error()})
		c.fail(generation, domain.ErrorCodeUnavailable, domain.SessionReasonServiceUnhealthy, err)
		return domain.AnalysisResult{}, err
	}

	result, err := provider.Analyze(ctx, data, filename)
	if err != nil {
		if !c.fail(generation, errorCode(err), domain.SessionReasonAnalysisFailed, err) {
			c.metrics.CountAnalysis(metrics.OutcomeDiscarded)
			log.Info("discarding failed analysis after reset", nil)
			return domain.AnalysisResult{}, ErrResultDiscarded
		}
		return domain.AnalysisResult{}, err
	}

	reason := domain.SessionReasonResultReady
	if provider.Source() == domain.ResultSourceFallback {
		reason = domain.SessionReasonFallbackResult
	}

	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		c.metrics.CountAnalysis(metrics.OutcomeDiscarded)
		log.Info("discarding late analysis result after reset", nil)
		return domain.AnalysisResult{}, ErrResultDiscarded
	}
	stored := result
	c.result = &stored
	c.state = domain.SessionStateReady
	c.mu.Unlock()

	if reason == domain.SessionReasonFallbackResult {
		c.metrics.CountAnalysis(metrics.OutcomeFallback)
		c.events.AdvisoryWarning(fallbackNotice)
	}
	c.events.ResultReady(result)
	if result.Warning != nil && *result.Warning != "" {
		c.events.AdvisoryWarning(*result.Warning)
	}
	c.events.SessionStateChanged(domain.SessionStateReady, reason)

	log.Info("analysis result stored", map[string]interface{}{
		"source": string(result.Source),
		"label":  result.Primary().Label,
	})
	return result, nil
}

// Reset discards the current result and any pending request's outcome and
// returns the view mode to orbit.
func (c *SessionController) Reset() {
	c.mu.Lock()
	c.generation++
	c.result = nil
	c.state = domain.SessionStateIdle
	c.message = ""
	c.mu.Unlock()

	c.viewMode.Reset()
	c.events.SessionStateChanged(domain.SessionStateIdle, domain.SessionReasonReset)
}

// Result returns a snapshot of the current result.
func (c *SessionController) Result() (domain.AnalysisResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return domain.AnalysisResult{}, ErrNoResult
	}
	return *c.result, nil
}

// Status returns the current backend status.
func (c *SessionController) Status() domain.Status {
	c.mu.Lock()
	status := domain.Status{
		State:   c.state,
		Loading: c.state == domain.SessionStateLoading,
		HasData: c.result != nil,
		Message: c.message,
	}
	c.mu.Unlock()

	status.ViewMode = c.viewMode.Mode()
	return status
}

// fail records an error for generation. It reports false when the generation
// is stale, in which case nothing is recorded or emitted.
func (c *SessionController) fail(generation uint64, code domain.ErrorCode, reason domain.SessionStateReason, err error) bool {
	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		return false
	}
	c.state = domain.SessionStateError
	c.message = err.Error()
	c.mu.Unlock()

	c.events.SessionError(code, err.Error())
	c.events.SessionStateChanged(domain.SessionStateError, reason)
	return true
}

func errorCode(err error) domain.ErrorCode {
	var coded interface{ Code() domain.ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrorCodeTransport
	}
	return domain.ErrorCodeService
}

type nopSink struct{}

func (nopSink) SessionStateChanged(domain.SessionState, domain.SessionStateReason) {}
func (nopSink) ResultReady(domain.AnalysisResult)                                  {}
func (nopSink) AdvisoryWarning(string)                                             {}
func (nopSink) SessionError(domain.ErrorCode, string)                              {}
