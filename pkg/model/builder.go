package model

import (
	"github.com/goliatone/go-signupform/internal/model"
	"github.com/goliatone/go-signupform/pkg/formdef"
)

// Builder converts form definitions into form models.
type Builder interface {
	Build(def formdef.Definition) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler  func(string) string
	endpoint string
	method   string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithDefaultEndpoint sets the action used when a definition omits one.
func WithDefaultEndpoint(endpoint string) BuilderOption {
	return func(opts *builderOptions) {
		opts.endpoint = endpoint
	}
}

// WithDefaultMethod sets the method used when a definition omits one.
func WithDefaultMethod(method string) BuilderOption {
	return func(opts *builderOptions) {
		opts.method = method
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	return model.New(model.Options{
		Labeler:         cfg.labeler,
		DefaultEndpoint: cfg.endpoint,
		DefaultMethod:   cfg.method,
	})
}

// DefaultLabeler exposes the builder's label heuristic.
func DefaultLabeler(name string) string {
	return model.DefaultLabeler(name)
}
