package engine

import (
	"context"
	"log"
	"strings"

	"github.com/tatianab/pokemon-agent/internal/models"
	"github.com/tatianab/pokemon-agent/internal/parser"
)

// Generator produces text from a prompt and an optional PNG image.
type Generator interface {
	Generate(ctx context.Context, prompt string, image []byte) (string, error)
}

// LLM is a model-backed engine. The model's answer must follow the
// REASONING/ACTION grammar of package parser; anything else falls back.
type LLM struct {
	gen      Generator
	fallback *Fallback
	vision   bool
	logger   *log.Logger
}

// Option configures an LLM engine.
type Option func(*LLM)

// WithVision asks the model to describe the current frame before deciding.
func WithVision() Option {
	return func(e *LLM) { e.vision = true }
}

// WithLogger sets the logger used for recoverable model failures.
func WithLogger(l *log.Logger) Option {
	return func(e *LLM) { e.logger = l }
}

// NewLLM returns an engine that asks gen for decisions and uses fallback when
// it cannot.
func NewLLM(gen Generator, fallback *Fallback, opts ...Option) *LLM {
	e := &LLM{gen: gen, fallback: fallback, logger: log.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *LLM) Decide(ctx context.Context, req Request) models.Decision {
	var screen string
	if e.vision && len(req.Frame) > 0 {
		desc, err := e.describe(ctx, req)
		if err != nil {
			e.logger.Printf("warning: describe screen: %v", err)
		} else {
			screen = desc
		}
	}

	tmpl := decidePlayerTmpl
	if req.Role == models.RolePokemon {
		tmpl = decideBattleTmpl
	}
	prompt, err := render(tmpl, newPromptData(req, screen))
	if err != nil {
		e.logger.Printf("warning: %v", err)
		return e.fallback.Explore(req.History)
	}

	text, err := e.gen.Generate(ctx, prompt, nil)
	if err != nil {
		e.logger.Printf("warning: model call failed: %v", err)
		return e.fallback.Explore(req.History)
	}

	res, err := parser.Parse(text)
	if err != nil {
		e.logger.Printf("warning: unusable model response: %v", err)
		return e.fallback.Explore(req.History)
	}
	return models.Decision{Action: res.Action, Commentary: res.Reasoning}
}

func (e *LLM) describe(ctx context.Context, req Request) (string, error) {
	prompt, err := render(describeScreenTmpl, newPromptData(req, ""))
	if err != nil {
		return "", err
	}
	desc, err := e.gen.Generate(ctx, prompt, req.Frame)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(desc), nil
}
