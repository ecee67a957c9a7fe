package app

import (
	"context"
	"fmt"

	"github.com/doeshing/hackassist/internal/application/doctor"
	"github.com/doeshing/hackassist/internal/application/session"
	"github.com/doeshing/hackassist/internal/domain"
	"github.com/doeshing/hackassist/internal/infrastructure/ai"
	"github.com/doeshing/hackassist/internal/infrastructure/config"
	contextcollector "github.com/doeshing/hackassist/internal/infrastructure/context"
	"github.com/doeshing/hackassist/internal/infrastructure/executor"
	"github.com/doeshing/hackassist/internal/pkg/logger"
	"github.com/doeshing/hackassist/internal/ports"
)

// Options are the command-line overrides applied on top of the config file.
type Options struct {
	ConfigPath   string
	ModelID      string
	HistoryLimit int
	Verbose      bool
}

// Terminal groups the interactive adapters supplied by the CLI layer.
type Terminal struct {
	Input     ports.LineReader
	Confirmer ports.Confirmer
	Presenter ports.Presenter
}

// ProviderFactory builds the AI client for a resolved configuration.
type ProviderFactory interface {
	NewProvider(ctx context.Context, cfg domain.Config) (ports.Provider, error)
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Options       Options
	ConfigLoader  *config.FileLoader
	Collector     ports.EnvironmentCollector
	Providers     ProviderFactory
	Logger        *logger.Zap
	DoctorService *doctor.Service
}

// BuildContainer constructs the dependency graph. Nothing is loaded or
// contacted until a session or diagnostic run asks for it.
func BuildContainer(opts Options) *Container {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	collector := contextcollector.NewHostCollector()

	return &Container{
		Options:       opts,
		ConfigLoader:  cfgLoader,
		Collector:     collector,
		Providers:     ai.NewFactory(),
		Logger:        logger.New(opts.Verbose),
		DoctorService: doctor.NewService(cfgLoader, collector),
	}
}

// LoadConfig reads the config file and applies command-line overrides.
func (c *Container) LoadConfig(ctx context.Context) (domain.Config, error) {
	cfg, err := c.ConfigLoader.Load(ctx)
	if err != nil {
		return domain.Config{}, fmt.Errorf("load config: %w", err)
	}
	return applyOverrides(cfg, c.Options), nil
}

// NewSessionLoop prepares a session ready to run. The AI credential is
// resolved first so a missing key fails before anything is shown.
func (c *Container) NewSessionLoop(ctx context.Context, term Terminal) (*session.Loop, error) {
	cfg, err := c.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := c.Providers.NewProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	env, err := c.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect context: %w", err)
	}

	sess := domain.NewSession(env)
	return &session.Loop{
		Session:   sess,
		Tracker:   session.NewTracker(sess, cfg.GetHistoryLimit(), cfg.GetMaxOutputChars()),
		Provider:  provider,
		Extractor: ai.Extractor{},
		Executor:  executor.NewLocalExecutor(cfg.Execution.Shell, env.WorkingDir),
		Confirmer: term.Confirmer,
		Input:     term.Input,
		Presenter: term.Presenter,
		Logger:    c.Logger.With(map[string]interface{}{"session_id": sess.ID}),
	}, nil
}

func applyOverrides(cfg domain.Config, opts Options) domain.Config {
	if opts.ModelID != "" {
		cfg.Model.ModelID = opts.ModelID
	}
	if opts.HistoryLimit > 0 {
		cfg.Session.HistoryLimit = opts.HistoryLimit
	}
	return cfg
}
