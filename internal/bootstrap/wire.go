package bootstrap

import (
	"fmt"

	"soundsphere/internal/config"
	"soundsphere/internal/icons"
	"soundsphere/internal/logger"
	"soundsphere/internal/metrics"
	"soundsphere/internal/ports"
	"soundsphere/internal/providers/static"
	"soundsphere/internal/resultclient"
	"soundsphere/internal/scene"
	"soundsphere/internal/usecase"
	"soundsphere/internal/viewmode"
)

// Services is the assembled runtime graph.
type Services struct {
	Session  *usecase.SessionController
	ViewMode *viewmode.Controller
	Composer *scene.Composer
	Icons    *icons.Table
	Metrics  *metrics.Collectors
	Logger   logger.Logger
	Config   config.Config
}

// Build wires all backend dependencies for the current runtime. m may be nil,
// in which case a fresh registry is created.
func Build(eventSink ports.EventSink, m *metrics.Collectors) (Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return Services{}, err
	}
	return BuildWithConfig(cfg, eventSink, m)
}

// BuildWithConfig wires the runtime graph from an already loaded config.
func BuildWithConfig(cfg config.Config, eventSink ports.EventSink, m *metrics.Collectors) (Services, error) {
	log, err := logger.NewStructured(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return Services{}, fmt.Errorf("failed to build logger: %w", err)
	}

	table, err := icons.LoadTable(cfg.Icons.RulesPath)
	if err != nil {
		return Services{}, err
	}

	if m == nil {
		m = metrics.New()
	}
	composer := scene.NewComposer(table, log)
	view := viewmode.NewController(composer, log, m)

	client := resultclient.NewClient(resultclient.Config{
		BaseURL:        cfg.Service.BaseURL,
		RequestTimeout: cfg.Service.RequestTimeout,
		HealthTimeout:  cfg.Service.HealthTimeout,
	}, log, m)

	var selector *usecase.ProviderSelector
	if cfg.Fallback.Enabled {
		selector = usecase.NewProviderSelector(client, static.NewProvider(static.Config{}))
	} else {
		selector = usecase.NewProviderSelector(client, nil)
	}

	session := usecase.NewSessionController(selector, view, eventSink, log, m)

	log.Info("backend ready", map[string]interface{}{
		"service":  cfg.Service.BaseURL,
		"fallback": cfg.Fallback.Enabled,
	})

	return Services{
		Session:  session,
		ViewMode: view,
		Composer: composer,
		Icons:    table,
		Metrics:  m,
		Logger:   log,
		Config:   cfg,
	}, nil
}
