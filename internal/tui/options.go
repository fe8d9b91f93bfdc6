package tui

import (
	"go.uber.org/zap"

	"github.com/sardesh/srebuddy/internal/corpus"
	"github.com/sardesh/srebuddy/internal/pipeline"
	"github.com/sardesh/srebuddy/internal/report"
)

// Options configures TUI startup behavior.
type Options struct {
	Engine *pipeline.Engine
	// Source is watched for changes when set.
	Source   *corpus.Source
	Renderer *report.Renderer
	Logger   *zap.Logger
	// Command preselects the template command.
	Command string
}
