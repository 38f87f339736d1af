// Package resultclient talks to the external sound analysis service.
package resultclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"soundsphere/internal/domain"
	"soundsphere/internal/logger"
	"soundsphere/internal/metrics"
)

const (
	healthPath  = "/health"
	analyzePath = "/analyze-audio"
	uploadField = "audio_file"

	maxResponseBytes = 4 << 20
)

// Config controls the analysis service client.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	HealthTimeout  time.Duration
}

// Client implements ports.AnalysisService over HTTP. It never retries and
// never invents results.
type Client struct {
	cfg     Config
	http    *http.Client
	log     logger.Logger
	metrics *metrics.Collectors
}

func NewClient(cfg Config, log logger.Logger, m *metrics.Collectors) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "http://localhost:8000"
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = 3 * time.Second
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		log:     logger.OrNop(log).WithFields(map[string]interface{}{"service": cfg.BaseURL}),
		metrics: m,
	}
}

// Source implements ports.ResultProvider.
func (c *Client) Source() domain.ResultSource {
	return domain.ResultSourceService
}

// CheckHealth reports whether GET /health answers 200. Any failure is false.
func (c *Client) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.HealthTimeout)
	defer cancel()

	healthy := c.checkHealth(ctx)
	c.metrics.ObserveHealth(healthy)
	return healthy
}

func (c *Client) checkHealth(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+healthPath, nil)
	if err != nil {
		c.log.Warn("health request could not be built", map[string]interface{}{"error": err.Error()})
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("health check failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("health check unhealthy", map[string]interface{}{"status": resp.StatusCode})
		return false
	}
	return true
}

// Analyze uploads data as multipart field audio_file and maps the response.
// Failures are returned as *AnalysisError.
func (c *Client) Analyze(ctx context.Context, data []byte, filename string) (domain.AnalysisResult, error) {
	started := time.Now()
	result, err := c.analyze(ctx, data, filename)
	c.metrics.ObserveDuration(time.Since(started).Seconds())

	if err != nil {
		outcome := metrics.OutcomeService
		if ae, ok := err.(*AnalysisError); ok && ae.Kind == KindTransport {
			outcome = metrics.OutcomeTransport
		}
		c.metrics.CountAnalysis(outcome)
		c.log.Warn("analysis failed", map[string]interface{}{
			"filename": filename,
			"error":    err.Error(),
		})
		return domain.AnalysisResult{}, err
	}

	c.metrics.CountAnalysis(metrics.OutcomeSuccess)
	c.log.Info("analysis completed", map[string]interface{}{
		"filename":  filename,
		"azimuth":   result.Direction.Azimuth,
		"elevation": result.Direction.Elevation,
		"labels":    len(result.Classification),
	})
	return result, nil
}

func (c *Client) analyze(ctx context.Context, data []byte, filename string) (domain.AnalysisResult, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	fw, err := w.CreateFormFile(uploadField, name)
	if err != nil {
		return domain.AnalysisResult{}, transportError(err)
	}
	if _, err := fw.Write(data); err != nil {
		return domain.AnalysisResult{}, transportError(err)
	}
	if err := w.Close(); err != nil {
		return domain.AnalysisResult{}, transportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+analyzePath, &b)
	if err != nil {
		return domain.AnalysisResult{}, transportError(err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.AnalysisResult{}, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.AnalysisResult{}, transportError(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.AnalysisResult{}, statusError(resp.StatusCode, errorDetail(body))
	}

	wire, err := DecodeResponse(body)
	if err != nil {
		return domain.AnalysisResult{}, schemaError(resp.StatusCode, err)
	}
	return MapResponse(wire, filename), nil
}

// errorDetail extracts the "detail" message error responses carry, if any.
func errorDetail(body []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if s, ok := payload.Detail.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
