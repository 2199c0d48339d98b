package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-signupform/pkg/formdef"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla"
	"github.com/goliatone/go-signupform/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithDefinition replaces the embedded registration definition used when a
// request carries none.
func WithDefinition(def formdef.Definition) Option {
	return func(o *Orchestrator) {
		o.definition = &def
	}
}

// WithSchemaTransformer registers a Transformer that can mutate form models
// after building but before decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that should run against the generated
// form model before rendering.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithWidgetRegistry replaces the widget registry applied as the first
// decorator.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.widgets = registry
		}
	}
}

// Orchestrator coordinates the pipeline from form definition to rendered
// output. It applies sensible defaults (embedded registration definition,
// vanilla renderer) while remaining open to dependency injection.
type Orchestrator struct {
	builder         model.Builder
	registry        *render.Registry
	defaultRenderer string
	definition      *formdef.Definition
	transformer     Transformer
	widgets         *widgets.Registry
	decorators      []model.Decorator
	initialiseErr   error
	defaultsApplied bool

	themeSelector  theme.ThemeSelector
	themeName      string
	themeVariant   string
	themeFallbacks map[string]string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Definition overrides the configured definition.
	Definition *formdef.Definition

	// DefinitionFS and DefinitionPath load a definition from a filesystem
	// when Definition is nil.
	DefinitionFS   fs.FS
	DefinitionPath string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant override the configured theme defaults.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request data: values, touched errors,
	// canSubmit, hidden fields. Theme is filled in when a selector is set and
	// the caller left it nil.
	RenderOptions render.RenderOptions
}

// Generate builds the form model and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Model(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts, err := o.RenderOptions(req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Model resolves the definition, builds the form model and applies the
// transformer and decorators.
func (o *Orchestrator) Model(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.ready(); err != nil {
		return model.FormModel{}, err
	}

	def, err := o.resolveDefinition(req)
	if err != nil {
		return model.FormModel{}, err
	}

	form, err := o.builder.Build(def)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}

	if err := o.applyTransformer(ctx, &form); err != nil {
		return model.FormModel{}, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

// RenderOptions returns req.RenderOptions with the theme configuration
// resolved.
func (o *Orchestrator) RenderOptions(req Request) (render.RenderOptions, error) {
	opts := req.RenderOptions
	if opts.Theme != nil {
		return opts, nil
	}
	cfg, err := o.ThemeConfig(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return render.RenderOptions{}, err
	}
	opts.Theme = cfg
	return opts, nil
}

// Renderer returns the named renderer or the default one.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

// Registry exposes the renderer registry so callers can add renderers after
// construction.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) ready() error {
	if err := o.initialiseErr; err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDefinition(req Request) (formdef.Definition, error) {
	switch {
	case req.Definition != nil:
		return *req.Definition, nil
	case req.DefinitionFS != nil || strings.TrimSpace(req.DefinitionPath) != "":
		fsys := req.DefinitionFS
		if fsys == nil {
			def, err := formdef.LoadFile(req.DefinitionPath)
			if err != nil {
				return formdef.Definition{}, fmt.Errorf("orchestrator: load definition: %w", err)
			}
			return def, nil
		}
		def, err := formdef.LoadFS(fsys, req.DefinitionPath)
		if err != nil {
			return formdef.Definition{}, fmt.Errorf("orchestrator: load definition: %w", err)
		}
		return def, nil
	case o.definition != nil:
		return *o.definition, nil
	}

	def, err := formdef.Default()
	if err != nil {
		return formdef.Definition{}, fmt.Errorf("orchestrator: load embedded definition: %w", err)
	}
	return def, nil
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	if form == nil {
		return nil
	}
	decorators := append([]model.Decorator{o.widgets}, o.decorators...)
	if err := model.Apply(form, decorators...); err != nil {
		return fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil || form == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.widgets == nil {
		o.widgets = widgets.NewRegistry()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithWidgetRegistry(o.widgets))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
