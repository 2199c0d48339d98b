package vanilla

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	gotemplatepkg "github.com/goliatone/go-template"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	rendertemplate "github.com/goliatone/go-signupform/pkg/render/template"
	gotemplate "github.com/goliatone/go-signupform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-signupform/pkg/widgets"
)

const (
	formTemplate    = "templates/form.tmpl"
	fieldTemplate   = "templates/field.tmpl"
	actionsTemplate = "templates/actions.tmpl"
	resultTemplate  = "templates/result.tmpl"
	pageTemplate    = "templates/page.tmpl"

	defaultSubmitLabel = "Submit"
	defaultResultTitle = "Form submitted"
)

var errNilTemplates = errors.New("vanilla renderer: template renderer is nil")

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	widgets          *widgets.Registry
	sanitizer        *bluemonday.Policy
	inlineStyles     bool
	stylesheetURL    string
	runtimeURL       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithWidgetRegistry replaces the registry used to pick a component for
// fields that carry no widget hint.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithSanitizer sets the policy applied to help text HTML.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// WithInlineStyles toggles the embedded default stylesheet.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// WithStylesheetURL links an external stylesheet instead of inlining the
// default one.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		cfg.stylesheetURL = strings.TrimSpace(url)
	}
}

// WithRuntimeScriptURL loads the live validation runtime from url instead of
// inlining it.
func WithRuntimeScriptURL(url string) Option {
	return func(cfg *config) {
		cfg.runtimeURL = strings.TrimSpace(url)
	}
}

// HelpTextPolicy is the default sanitizer for help text: inline emphasis and
// code only.
func HelpTextPolicy() *bluemonday.Policy {
	return bluemonday.NewPolicy().AllowElements("strong", "em", "b", "i", "code", "br")
}

// Renderer produces server-side HTML for a form draft. The submit button is
// only emitted when RenderOptions.CanSubmit is true.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	components   *components.Registry
	widgets      *widgets.Registry
	sanitizer    *bluemonday.Policy
	inlineStyles bool
	stylesheet   string
	runtimeURL   string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		inlineStyles: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}
	if cfg.sanitizer == nil {
		cfg.sanitizer = HelpTextPolicy()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		opts := []gotemplate.Option{
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".tmpl"),
		}
		if cfg.templateFS != nil {
			// Caller templates shadow the bundled ones name by name.
			opts = append(opts, gotemplate.WithGoTemplateOptions(gotemplatepkg.WithFS(cfg.templateFS)))
		}
		engine, err := gotemplate.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		components:   cfg.components,
		widgets:      cfg.widgets,
		sanitizer:    cfg.sanitizer,
		inlineStyles: cfg.inlineStyles,
		stylesheet:   cfg.stylesheetURL,
		runtimeURL:   cfg.runtimeURL,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the form fragment: header, fields with their inline errors,
// hidden inputs and the actions container.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errNilTemplates
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	working := form.Clone()
	render.LocalizeFormModel(&working, opts)
	if err := r.widgets.Decorate(&working); err != nil {
		return nil, fmt.Errorf("vanilla renderer: resolve widgets: %w", err)
	}

	mapped := render.MapErrorPayload(working, opts.Errors)
	opts.Errors = mapped.Fields
	formErrors := render.MergeFormErrors(opts.FormErrors, mapped.Form...)

	partials := themePartials(opts.Theme)
	fields := make([]string, 0, len(working.Fields))
	used := make([]string, 0, len(working.Fields))
	for _, field := range working.Fields {
		markup, component, err := r.renderField(field, opts, partials)
		if err != nil {
			return nil, err
		}
		fields = append(fields, markup)
		used = append(used, component)
	}

	method, override := htmlMethod(firstNonEmpty(opts.Method, working.Method))
	hidden := opts.HiddenFields
	if override != "" {
		hidden = render.MergeHiddenFields(hidden, render.Hidden("_method", override))
	}

	stylesheets, scripts := r.components.Assets(used)
	inlineStyles := ""
	if href := firstNonEmpty(themeAsset(opts.Theme, StylesheetAssetKey), r.stylesheet); href != "" {
		stylesheets = append([]string{href}, stylesheets...)
	} else if r.inlineStyles {
		inlineStyles = defaultStylesheet()
	}

	inlineRuntime := ""
	if opts.ValidateURL != "" && r.runtimeURL == "" {
		inlineRuntime = defaultRuntimeScript()
	}

	actions, err := r.templates.RenderTemplate(actionsTemplate, r.basePayload(working, opts))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render actions: %w", err)
	}

	payload := r.basePayload(working, opts)
	payload["actions_html"] = actions
	payload["action"] = firstNonEmpty(opts.Action, working.Endpoint)
	payload["method"] = method
	payload["fields"] = fields
	payload["hidden_fields"] = render.SortedHiddenFields(hidden)
	payload["form_errors"] = formErrors
	payload["validate_url"] = opts.ValidateURL
	payload["locale"] = opts.Locale
	payload["theme"] = themeData(opts.Theme)
	payload["stylesheets"] = stylesheets
	payload["scripts"] = scripts
	payload["inline_styles"] = inlineStyles
	payload["runtime_url"] = runtimeURLFor(opts.ValidateURL, r.runtimeURL)
	payload["inline_runtime"] = inlineRuntime

	out, err := r.templates.RenderTemplate(formTemplate, payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(out), nil
}

// RenderActions renders only the actions container. The live validation
// runtime swaps it in after every edit so the submit button appears and
// disappears with form validity.
func (r *Renderer) RenderActions(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errNilTemplates
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	working := form.Clone()
	render.LocalizeFormModel(&working, opts)

	out, err := r.templates.RenderTemplate(actionsTemplate, r.basePayload(working, opts))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render actions: %w", err)
	}
	return []byte(out), nil
}

// RenderResult shows the serialized submission and raises it in a browser
// alert.
func (r *Renderer) RenderResult(ctx context.Context, form model.FormModel, serialized string, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errNilTemplates
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	working := form.Clone()
	render.LocalizeFormModel(&working, opts)

	encoded, err := json.Marshal(serialized)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: encode result: %w", err)
	}

	payload := r.basePayload(working, opts)
	payload["title"] = firstNonEmpty(working.UIHints["resultTitle"], defaultResultTitle)
	payload["payload"] = serialized
	payload["payload_js"] = string(encoded)

	out, err := r.templates.RenderTemplate(resultTemplate, payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render result: %w", err)
	}
	return []byte(out), nil
}

// Page wraps a rendered fragment in a complete HTML document.
func (r *Renderer) Page(title, locale string, body []byte) ([]byte, error) {
	if r.templates == nil {
		return nil, errNilTemplates
	}
	out, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"title": title,
		"lang":  firstNonEmpty(locale, "en"),
		"body":  string(body),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) basePayload(form model.FormModel, opts render.RenderOptions) map[string]any {
	return map[string]any{
		"form":         form,
		"classes":      chromeClasses(),
		"can_submit":   opts.CanSubmit,
		"submit_label": firstNonEmpty(form.UIHints["submitLabel"], defaultSubmitLabel),
	}
}

func runtimeURLFor(validateURL, runtimeURL string) string {
	if validateURL == "" {
		return ""
	}
	return runtimeURL
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
