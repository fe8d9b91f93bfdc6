package cli

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sardesh/srebuddy/internal/config"
	"github.com/sardesh/srebuddy/internal/corpus"
	"github.com/sardesh/srebuddy/internal/docs"
	"github.com/sardesh/srebuddy/internal/logging"
	"github.com/sardesh/srebuddy/internal/pipeline"
	"github.com/sardesh/srebuddy/internal/plan"
	"github.com/sardesh/srebuddy/internal/report"
)

const logFileName = "srebuddy.log"

// RuntimeOptions selects how configuration and logging are set up.
type RuntimeOptions struct {
	ConfigPath string
	Verbose    bool
	// LogToFile sends logs to a file even when the config names none. The
	// interactive interface needs this so log lines do not corrupt the
	// screen.
	LogToFile bool
}

// Runtime is the loaded configuration and logger for one invocation.
type Runtime struct {
	Config *config.Config
	Logger *zap.Logger
}

// LoadRuntime loads layered configuration and builds the logger.
func LoadRuntime(opts RuntimeOptions) (*Runtime, error) {
	cfg, err := config.NewLoader(nil).Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logFile := cfg.ResolvePath(cfg.Logging.File)
	if logFile == "" && opts.LogToFile {
		if !IsInitialized(cfg.Root) {
			return &Runtime{Config: cfg, Logger: zap.NewNop()}, nil
		}
		logFile = filepath.Join(cfg.Root, config.ProjectDir, logFileName)
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		File:    logFile,
		Verbose: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Loaded configuration",
		zap.String("root", cfg.Root),
		zap.Strings("corpus", cfg.Corpus.Paths))

	return &Runtime{Config: cfg, Logger: logger}, nil
}

// Close flushes buffered log entries.
func (rt *Runtime) Close() {
	_ = rt.Logger.Sync()
}

// CorpusSource returns the corpus source from configuration. Non-empty
// patterns replace the configured paths.
func (rt *Runtime) CorpusSource(patterns []string) *corpus.Source {
	if len(patterns) == 0 {
		patterns = rt.Config.Corpus.Paths
	}
	return corpus.NewSource(rt.Config.Root, patterns, rt.Config.Corpus.DisableEmbedded, rt.Logger.Named("corpus"))
}

// Engine returns a pipeline reading templates from source.
func (rt *Runtime) Engine(source *corpus.Source) *pipeline.Engine {
	d := rt.Config.Docs
	fetcher := docs.NewFetcher(d.Timeout, d.UserAgent, d.MaxBytes)
	collector := docs.NewCollector(fetcher, d.Concurrency, rt.Logger.Named("docs"))

	return pipeline.New(source,
		pipeline.WithDocs(collector),
		pipeline.WithLogger(rt.Logger.Named("pipeline")))
}

// PlanStore returns the store for saved plans.
func (rt *Runtime) PlanStore() *plan.Store {
	return plan.NewStore(filepath.Join(rt.Config.Root, config.ProjectDir, "plans"))
}

// Renderer returns the Markdown renderer from configuration.
func (rt *Runtime) Renderer() (*report.Renderer, error) {
	return report.NewRenderer(rt.Config.Output.Style, rt.Config.Output.Width)
}
