package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"soundsphere/internal/bootstrap"
	"soundsphere/internal/domain"
	"soundsphere/internal/metrics"
	"soundsphere/internal/scene"
	"soundsphere/internal/summary"
	"soundsphere/internal/usecase"
)

const (
	eventSession = "soundsphere:session"
	eventScene   = "soundsphere:scene"
	eventResult  = "soundsphere:result"
	eventWarning = "soundsphere:warning"
	eventError   = "soundsphere:error"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported audio type, expected WAV or MP3")
	ErrEmptyUpload          = errors.New("uploaded file is empty")
)

// App is the Wails application root.
type App struct {
	ctx context.Context

	metrics  *metrics.Collectors
	services *bootstrap.Services
	bootErr  error
}

func NewApp() *App {
	return &App{metrics: metrics.New()}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(a, a.metrics)
	if err != nil {
		a.bootErr = err
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.services = &services
	a.SessionStateChanged(domain.SessionStateIdle, domain.SessionReasonAwaitingUpload)
	a.emitScene()
}

func (a *App) shutdown(_ context.Context) {
	if a.services != nil {
		a.services.Logger.Info("shutting down", nil)
	}
}

// AnalyzeAudio runs one upload through the analysis pipeline.
func (a *App) AnalyzeAudio(data []byte, filename string, mediaType string) (domain.AnalysisResult, error) {
	if err := a.requireReady(); err != nil {
		return domain.AnalysisResult{}, err
	}
	if !domain.AcceptedMediaType(mediaType) {
		err := fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mediaType)
		a.SessionError(domain.ErrorCodeUpload, err.Error())
		return domain.AnalysisResult{}, err
	}
	if len(data) == 0 {
		a.SessionError(domain.ErrorCodeUpload, ErrEmptyUpload.Error())
		return domain.AnalysisResult{}, ErrEmptyUpload
	}

	result, err := a.services.Session.Analyze(a.context(), data, filename)
	a.emitScene()
	if errors.Is(err, usecase.ErrResultDiscarded) {
		return domain.AnalysisResult{}, nil
	}
	return result, err
}

// Reset discards the current result and returns to orbit view.
func (a *App) Reset() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.services.Session.Reset()
	a.emitScene()
	return nil
}

// ToggleViewMode switches between orbit and immersive view.
func (a *App) ToggleViewMode() (domain.ViewMode, error) {
	if err := a.requireReady(); err != nil {
		return "", err
	}
	mode := a.services.ViewMode.Toggle()
	a.emitScene()
	return mode, nil
}

// Frame is called once per rendered frame. It applies a queued view-mode
// toggle and returns the marker pose, or nil when there is no marker.
func (a *App) Frame(elapsed float64) *scene.MarkerPose {
	if a.services == nil {
		return nil
	}
	before := a.services.ViewMode.Transitions()
	a.services.ViewMode.Tick()
	if a.services.ViewMode.Transitions() != before {
		a.emitScene()
	}

	result, err := a.services.Session.Result()
	if err != nil {
		return nil
	}
	pose, ok := scene.Frame(a.services.ViewMode.Mode(), &result, elapsed)
	if !ok {
		return nil
	}
	return &pose
}

// GetScene returns the scene graph for the current mode and result.
func (a *App) GetScene() (scene.Scene, error) {
	if err := a.requireReady(); err != nil {
		return scene.Scene{}, err
	}
	return a.currentScene(), nil
}

// GetSummary returns the results panel content.
func (a *App) GetSummary() summary.Panel {
	status := a.GetStatus()
	if a.services == nil {
		return summary.PanelFor(status, nil, nil)
	}
	result, err := a.services.Session.Result()
	if err != nil {
		return summary.PanelFor(status, nil, a.services.Icons)
	}
	return summary.PanelFor(status, &result, a.services.Icons)
}

// GetStatus returns the current session status.
func (a *App) GetStatus() domain.Status {
	if a.services == nil {
		if a.bootErr != nil {
			return domain.Status{State: domain.SessionStateError, ViewMode: domain.ViewModeOrbit, Message: a.bootErr.Error()}
		}
		return domain.Status{State: domain.SessionStateIdle, ViewMode: domain.ViewModeOrbit}
	}
	return a.services.Session.Status()
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}
	if a.services == nil {
		return map[string]string{}
	}

	cfg := a.services.Config
	return map[string]string{
		"serviceUrl":       cfg.Service.BaseURL,
		"requestTimeoutMs": strconv.FormatInt(cfg.Service.RequestTimeout.Milliseconds(), 10),
		"fallbackEnabled":  strconv.FormatBool(cfg.Fallback.Enabled),
		"iconRulesFile":    cfg.Icons.RulesPath,
		"logLevel":         cfg.Log.Level,
	}
}

// GetMetrics returns the current metrics in the Prometheus text format.
func (a *App) GetMetrics() (string, error) {
	if a.metrics == nil {
		return "", fmt.Errorf("metrics are not initialized")
	}
	var b strings.Builder
	if err := a.metrics.WriteText(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// metricsHandler serves the registry at metrics.Path for requests the
// embedded assets do not answer.
func (a *App) metricsHandler() http.Handler {
	mux := http.NewServeMux()
	if a.metrics != nil {
		mux.Handle(metrics.Path, a.metrics.Handler())
	}
	return mux
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.services == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

func (a *App) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

func (a *App) currentScene() scene.Scene {
	var result *domain.AnalysisResult
	if r, err := a.services.Session.Result(); err == nil {
		result = &r
	}
	return a.services.Composer.Compose(a.services.ViewMode.Mode(), result)
}

func (a *App) emitScene() {
	if a.ctx == nil || a.services == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventScene, a.currentScene())
}

// SessionStateChanged emits session lifecycle updates to the frontend.
func (a *App) SessionStateChanged(state domain.SessionState, reason domain.SessionStateReason) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventSession, map[string]string{
		"state":   string(state),
		"reason":  string(reason),
		"message": sessionReasonMessage(reason),
	})
}

// ResultReady emits a completed result and its summary.
func (a *App) ResultReady(result domain.AnalysisResult) {
	if a.ctx == nil || a.services == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventResult, map[string]interface{}{
		"result":  result,
		"summary": summary.Build(result, a.services.Icons, a.services.ViewMode.Mode()),
	})
	a.emitScene()
}

// AdvisoryWarning emits a non-blocking caveat about the current result.
func (a *App) AdvisoryWarning(message string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventWarning, map[string]string{"message": message})
}

// SessionError emits backend errors to the UI.
func (a *App) SessionError(code domain.ErrorCode, detail string) {
	if a.ctx == nil {
		return
	}
	runtime.EventsEmit(a.ctx, eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func sessionReasonMessage(reason domain.SessionStateReason) string {
	switch reason {
	case domain.SessionReasonAwaitingUpload:
		return "Upload an audio file to begin"
	case domain.SessionReasonAnalyzing:
		return "Analyzing audio..."
	case domain.SessionReasonResultReady:
		return "Analysis complete"
	case domain.SessionReasonFallbackResult:
		return "Showing a sample result (analysis service unavailable)"
	case domain.SessionReasonAnalysisFailed:
		return "Analysis failed"
	case domain.SessionReasonServiceUnhealthy:
		return "Analysis service unavailable"
	case domain.SessionReasonReset:
		return "Ready for a new upload"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeUpload:
		return "Upload rejected"
	case domain.ErrorCodeTransport:
		return "Could not reach the analysis service"
	case domain.ErrorCodeService:
		return "Analysis service error"
	case domain.ErrorCodeUnavailable:
		return "Analysis service unavailable"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}
