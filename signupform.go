// Package signupform renders and validates a declarative registration form.
// The root package re-exports the most common entry points; the building
// blocks live under pkg/.
package signupform

import (
	"context"

	"github.com/goliatone/go-signupform/pkg/form"
	"github.com/goliatone/go-signupform/pkg/formdef"
	"github.com/goliatone/go-signupform/pkg/orchestrator"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/validation"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface touched validation errors.
type RenderOptions = render.RenderOptions

// Definition is the declarative form description loaded from YAML or JSON.
type Definition = formdef.Definition

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the embedded registration form using the named
// renderer. An empty name selects the vanilla HTML renderer.
func GenerateHTML(ctx context.Context, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Renderer: rendererName,
	})
}

// GenerateHTMLFromDefinition renders def instead of the embedded
// registration form.
func GenerateHTMLFromDefinition(ctx context.Context, def Definition, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Definition: &def,
		Renderer:   rendererName,
	})
}

// NewDraft builds the model for the embedded registration form and returns
// an empty draft checked by the default rule engine.
func NewDraft(ctx context.Context, options ...orchestrator.Option) (*form.Form, error) {
	gen := orchestrator.New(options...)
	model, err := gen.Model(ctx, orchestrator.Request{})
	if err != nil {
		return nil, err
	}
	engine, err := validation.New()
	if err != nil {
		return nil, err
	}
	return form.New(model, engine), nil
}
