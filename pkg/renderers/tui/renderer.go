package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-signupform/pkg/form"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/validation"
)

const submitPrompt = "Submit?"

var plainText = bluemonday.StrictPolicy()

// Renderer implements render.Renderer for terminal sessions. Each field is
// prompted in order and re-prompted with its rule message until it passes.
// The collected snapshot is serialized, shown to the user and returned.
type Renderer struct {
	driver        PromptDriver
	checker       form.Checker
	notifier      render.Notifier
	outputFormat  OutputFormat
	confirmSubmit bool
	theme         Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat:  OutputFormatJSON,
		confirmSubmit: true,
		theme:         Theme{ErrorPrefix: "✗ "},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	if r.checker == nil {
		engine, err := validation.New()
		if err != nil {
			return nil, fmt.Errorf("tui: configure validation: %w", err)
		}
		r.checker = engine
	}

	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field and returns the serialized submission.
// opts.Values pre-fill prompt defaults.
func (r *Renderer) Render(ctx context.Context, fm model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	working := fm.Clone()
	render.LocalizeFormModel(&working, opts)

	draft := form.New(working, r.checker)
	if title := strings.TrimSpace(working.Title); title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+title); err != nil {
			return nil, err
		}
	}

	for _, field := range working.Fields {
		if err := r.promptField(ctx, draft, field, opts.Values[field.Name]); err != nil {
			return nil, err
		}
	}

	if !draft.CanSubmit() {
		return nil, form.ErrInvalid
	}
	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: submitLabel(working), Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	snapshot, err := draft.Submit()
	if err != nil {
		return nil, err
	}
	out, err := r.serialize(snapshot)
	if err != nil {
		return nil, err
	}

	if err := r.surface(ctx, working, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Renderer) promptField(ctx context.Context, draft *form.Form, field model.Field, prefill any) error {
	current := draft.Value(field.Name)
	if prefill != nil {
		current = fmt.Sprint(prefill)
	}

	for {
		response, err := r.ask(ctx, field, current)
		if err != nil {
			return err
		}
		if err := draft.Set(field.Name, response); err != nil {
			return err
		}

		failure := draft.Error(field.Name)
		if failure == nil {
			return nil
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+failure.Message); err != nil {
			return err
		}
		if field.Format != "password" {
			current = response
		}
	}
}

func (r *Renderer) ask(ctx context.Context, field model.Field, current string) (string, error) {
	label := displayLabel(field)
	help := displayHelp(field)

	if len(field.Enum) > 0 {
		options := stringifyEnum(field.Enum)
		if len(options) == 0 {
			return "", ErrNoOptions
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: slices.Index(options, current),
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			return "", nil
		}
		return options[idx], nil
	}

	cfg := InputConfig{Message: label, Default: current, Help: help}
	if field.Format == "password" || field.UIHints["widget"] == "password" {
		cfg.Default = ""
		return r.driver.Password(ctx, cfg)
	}
	return r.driver.Input(ctx, cfg)
}

func (r *Renderer) surface(ctx context.Context, fm model.FormModel, payload []byte) error {
	if r.notifier != nil {
		return r.notifier.Notify(ctx, resultTitle(fm), string(payload))
	}
	return r.driver.Info(ctx, r.theme.InfoPrefix+string(payload))
}

func (r *Renderer) serialize(snapshot form.Snapshot) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(snapshot.FormURLEncoded()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(snapshot)), nil
	default:
		return snapshot.JSON()
	}
}

func displayLabel(field model.Field) string {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		label = field.Name
	}
	if field.Required {
		label += " *"
	}
	return label
}

func displayHelp(field model.Field) string {
	if help := strings.TrimSpace(stripTags(field.UIHints["helpText"])); help != "" {
		return help
	}
	if desc := strings.TrimSpace(field.Description); desc != "" {
		return desc
	}
	return strings.TrimSpace(field.Placeholder)
}

func submitLabel(fm model.FormModel) string {
	if label := strings.TrimSpace(fm.UIHints["submitLabel"]); label != "" {
		return label + "?"
	}
	return submitPrompt
}

func resultTitle(fm model.FormModel) string {
	if title := strings.TrimSpace(fm.UIHints["resultTitle"]); title != "" {
		return title
	}
	return "Form submitted"
}

func stripTags(value string) string {
	if value == "" {
		return ""
	}
	return html.UnescapeString(plainText.Sanitize(value))
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, fmt.Sprint(value))
	}
	return out
}

func prettyPrint(snapshot form.Snapshot) string {
	var b strings.Builder
	for _, name := range snapshot.Fields() {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(snapshot.Value(name))
		b.WriteString("\n")
	}
	return b.String()
}
