// Package pipeline runs a request through classification, planning and
// prompt composition.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sardesh/srebuddy/internal/corpus"
	"github.com/sardesh/srebuddy/internal/docs"
	"github.com/sardesh/srebuddy/internal/plan"
	"github.com/sardesh/srebuddy/internal/prompt"
	"github.com/sardesh/srebuddy/internal/task"
	"github.com/sardesh/srebuddy/internal/template"
)

// CorpusLoader supplies the corpus text. It is read again for every prompt.
type CorpusLoader interface {
	Load() corpus.Corpus
}

// DocsCollector gathers reference documentation.
type DocsCollector interface {
	Collect(ctx context.Context, req docs.Request) ([]*docs.Document, error)
}

// Request is one unit of work.
type Request struct {
	Input string
	// Command selects the template family. Empty derives it from the
	// classified task type.
	Command string
	Docs    docs.Request
	// External is additional reference text supplied directly by the caller.
	// It is placed before any collected documents.
	External string
}

// Result is everything produced for a request.
type Result struct {
	RequestID  string
	Descriptor task.Descriptor
	Plan       *plan.ImplementationPlan
	Command    string
	// Template is the matched template, or nil when a fallback was used.
	Template *template.Template
	Score    template.Score
	Source   prompt.Source
	Prompt   string
	// CorpusFiles lists where the corpus was read from.
	CorpusFiles []string
	// Docs are the documents embedded into the prompt.
	Docs []*docs.Document
}

// Engine runs requests. It holds no per-request state and is safe for
// concurrent use when its collaborators are.
type Engine struct {
	corpus CorpusLoader
	docs   DocsCollector
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDocs sets the documentation collector.
func WithDocs(c DocsCollector) Option {
	return func(e *Engine) { e.docs = c }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine reading templates from loader.
func New(loader CorpusLoader, opts ...Option) *Engine {
	e := &Engine{
		corpus: loader,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify parses input into a descriptor.
func (e *Engine) Classify(input string) task.Descriptor {
	return task.Parse(input)
}

// Plan classifies input and synthesizes its implementation plan.
func (e *Engine) Plan(input string) (task.Descriptor, *plan.ImplementationPlan) {
	d := task.Parse(input)
	return d, plan.Generate(d)
}

// Templates parses the current corpus.
func (e *Engine) Templates() ([]template.Template, corpus.Corpus) {
	c := e.corpus.Load()
	return template.Parse(c.Text), c
}

// Run classifies the request, builds its plan, gathers documentation and
// composes the prompt. Only documentation errors are returned; prompt
// composition itself cannot fail.
func (e *Engine) Run(ctx context.Context, req Request) (*Result, error) {
	requestID := uuid.NewString()
	logger := e.logger.With(zap.String("request_id", requestID))

	d := task.Parse(req.Input)
	logger.Debug("Classified request",
		zap.String("type", string(d.Type)),
		zap.String("target", d.Target),
		zap.String("environment", string(d.Environment)),
		zap.String("urgency", string(d.Urgency)),
		zap.Int("parameters", d.Parameters.Len()))

	command := strings.ToLower(strings.TrimSpace(req.Command))
	if command == "" {
		command = prompt.CommandFor(d.Type)
	}

	result := &Result{
		RequestID:  requestID,
		Descriptor: d,
		Plan:       plan.Generate(d),
		Command:    command,
	}

	external := strings.TrimSpace(req.External)
	if !req.Docs.Empty() {
		if e.docs == nil {
			return nil, fmt.Errorf("documentation requested but no collector is configured")
		}
		collected, err := e.docs.Collect(ctx, req.Docs)
		if err != nil {
			return nil, fmt.Errorf("failed to collect documentation: %w", err)
		}
		result.Docs = collected
		if combined := docs.Combine(collected); combined != "" {
			if external != "" {
				external += "\n\n"
			}
			external += combined
		}
	}

	e.compose(logger, result, external)
	return result, nil
}

// compose fills the prompt fields of result. Any panic while loading the
// corpus, matching or composing degrades to the generic prompt.
func (e *Engine) compose(logger *zap.Logger, result *Result, external string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Prompt composition failed, using generic prompt", zap.Any("panic", r))
			result.Template = nil
			result.Score = template.Score{}
			result.Source = prompt.SourceGeneric
			result.Prompt = prompt.Generic(result.Command, result.Descriptor, external)
		}
	}()

	c := e.corpus.Load()
	result.CorpusFiles = c.Files
	templates := template.Parse(c.Text)
	if len(templates) == 0 {
		logger.Warn("Corpus contains no templates", zap.Strings("files", c.Files))
	}

	tpl, score := template.NewMatcher(logger).Select(templates, result.Descriptor, result.Command)
	result.Template = tpl
	result.Score = score

	body, source := prompt.Body(tpl, result.Command, result.Descriptor)
	result.Source = source
	result.Prompt = prompt.Compose(tpl, result.Command, result.Descriptor, external)

	logger.Debug("Composed prompt",
		zap.String("command", result.Command),
		zap.String("source", string(source)),
		zap.Float64("score", score.Total),
		zap.Int("body_length", len(body)),
		zap.Int("length", len(result.Prompt)))
}
