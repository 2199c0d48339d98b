package orchestrator

import (
	"context"
	"errors"
	"testing"

	theme "github.com/goliatone/go-theme"

	pkgmodel "github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla/components"
)

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
	}

	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: manifest,
	}

	selector := &stubThemeSelector{selection: selection}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	_, err := orch.Generate(context.Background(), Request{
		Renderer:     renderer.Name(),
		ThemeName:    "custom-theme",
		ThemeVariant: "custom-variant",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "custom-theme" || selector.calls[0].variant != "custom-variant" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != selection.Theme || cfg.Variant != selection.Variant {
		t.Fatalf("theme mismatch: got %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.AssetURL == nil {
		t.Fatalf("expected AssetURL resolver present")
	}
	if got := cfg.Partials[components.PartialInput]; got != defaultThemeFallbacks()[components.PartialInput] {
		t.Fatalf("partials not merged with fallbacks: got %s", got)
	}
	if cfg.Tokens["brand"] != manifest.Tokens["brand"] {
		t.Fatalf("tokens not propagated")
	}
	if cfg.CSSVars["--brand"] != manifest.Tokens["brand"] {
		t.Fatalf("css vars not derived from tokens")
	}
}

func TestOrchestrator_ManifestSelectorMergesVariant(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			components.PartialInput: "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"vanilla.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					components.PartialCheckbox: "themes/acme/dark/checkbox.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vanilla.runtime": "runtime.dark.js",
					},
				},
			},
		},
	}

	selector, err := NewManifestSelector(manifest)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
		WithTheme("acme", "dark"),
	)

	if _, err := orch.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Partials[components.PartialInput] != "themes/acme/input.tmpl" {
		t.Fatalf("expected base template override, got %s", cfg.Partials[components.PartialInput])
	}
	if cfg.Partials[components.PartialCheckbox] != "themes/acme/dark/checkbox.tmpl" {
		t.Fatalf("expected variant template override, got %s", cfg.Partials[components.PartialCheckbox])
	}
	if cfg.Partials[components.PartialSelect] != defaultThemeFallbacks()[components.PartialSelect] {
		t.Fatalf("fallback partial not applied for select")
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("variant tokens not merged: %v %v", cfg.Tokens, cfg.CSSVars)
	}
	if got := cfg.AssetURL("vanilla.runtime"); got != "/assets/themes/acme/runtime.dark.js" {
		t.Fatalf("unexpected runtime asset url: %s", got)
	}
	if got := cfg.AssetURL("vanilla.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %s", got)
	}
}

func TestManifestSelector(t *testing.T) {
	selector, err := NewManifestSelector(DefaultManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	selection, err := selector.Select("", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "signupform" || selection.Variant != "dark" {
		t.Fatalf("unexpected selection %+v", selection)
	}

	selection, err = selector.Select("signupform", "sepia")
	if err != nil {
		t.Fatalf("select unknown variant: %v", err)
	}
	if selection.Variant != "" {
		t.Fatalf("unknown variant should fall back to base, got %q", selection.Variant)
	}

	if _, err := selector.Select("nope", ""); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if err := selector.Register(&theme.Manifest{}); err == nil {
		t.Fatal("expected error for unnamed manifest")
	}
}

func TestOrchestrator_ExplicitThemeWins(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "ignored"}}
	orch := New(WithThemeSelector(selector))

	explicit := &theme.RendererConfig{Theme: "explicit"}
	opts, err := orch.RenderOptions(Request{RenderOptions: render.RenderOptions{Theme: explicit}})
	if err != nil {
		t.Fatalf("render options: %v", err)
	}
	if opts.Theme != explicit || len(selector.calls) != 0 {
		t.Fatalf("explicit theme should bypass the selector")
	}
}

func TestOrchestrator_ThemeSelectorError(t *testing.T) {
	orch := New(WithThemeSelector(&stubThemeSelector{err: errors.New("no themes")}))
	if _, err := orch.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected selector error")
	}
}

type captureRenderer struct {
	options render.RenderOptions
}

func (r *captureRenderer) Name() string {
	return "capture"
}

func (r *captureRenderer) ContentType() string {
	return "text/plain"
}

func (r *captureRenderer) Render(_ context.Context, form pkgmodel.FormModel, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	return []byte(form.ID), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
