package orchestrator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-signupform/pkg/renderers/vanilla/components"
)

// ErrThemeNotFound is returned by ManifestSelector for unknown theme names.
var ErrThemeNotFound = errors.New("orchestrator: theme not found")

// WithThemeSelector resolves theme and variant names into renderer
// configuration before every render.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithTheme sets the theme and variant used when a request names none.
func WithTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeName = strings.TrimSpace(name)
		o.themeVariant = strings.TrimSpace(variant)
	}
}

// WithThemeFallbacks overrides the partials used when a theme does not
// provide its own template for a component.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = copyStrings(fallbacks)
	}
}

// ThemeConfig resolves the renderer configuration for name and variant,
// falling back to the configured defaults. It returns nil when no selector is
// configured.
func (o *Orchestrator) ThemeConfig(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	if strings.TrimSpace(name) == "" {
		name = o.themeName
	}
	if strings.TrimSpace(variant) == "" {
		variant = o.themeVariant
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}

	fallbacks := o.themeFallbacks
	if fallbacks == nil {
		fallbacks = defaultThemeFallbacks()
	}
	return rendererConfig(selection, fallbacks), nil
}

func defaultThemeFallbacks() map[string]string {
	return components.DefaultPartials()
}

// rendererConfig flattens a selection: fallbacks, then manifest templates,
// then variant templates. Variant tokens override manifest tokens and every
// token is exposed as a --<name> CSS variable.
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	partials := copyStrings(fallbacks)
	if partials == nil {
		partials = make(map[string]string)
	}
	tokens := make(map[string]string)
	files := make(map[string]string)
	prefix := ""

	if manifest := selection.Manifest; manifest != nil {
		mergeStrings(partials, manifest.Templates)
		mergeStrings(tokens, manifest.Tokens)
		mergeStrings(files, manifest.Assets.Files)
		prefix = manifest.Assets.Prefix

		if variant, ok := manifest.Variants[selection.Variant]; ok {
			mergeStrings(partials, variant.Templates)
			mergeStrings(tokens, variant.Tokens)
			mergeStrings(files, variant.Assets.Files)
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}

// ManifestSelector is an in-memory theme.ThemeSelector over registered
// manifests.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests and uses the first one as the
// default theme.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		if err := s.Register(manifest); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register adds or replaces a manifest.
func (s *ManifestSelector) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return errors.New("orchestrator: theme manifest requires a name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.defaultTheme == "" {
		s.defaultTheme = manifest.Name
	}
	s.manifests[manifest.Name] = manifest
	return nil
}

// SetDefault changes the theme and variant used for empty names.
func (s *ManifestSelector) SetDefault(name, variant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultTheme = strings.TrimSpace(name)
	s.defaultVariant = strings.TrimSpace(variant)
}

// Names lists registered theme names.
func (s *ManifestSelector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector. Unknown variants fall back to the
// base manifest.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(name) == "" {
		name = s.defaultTheme
	}
	if strings.TrimSpace(variant) == "" {
		variant = s.defaultVariant
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if _, ok := manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// DefaultManifest is the built-in theme. Its tokens map onto the CSS
// variables of the embedded vanilla stylesheet.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "signupform",
		Version: "1.0.0",
		Tokens: map[string]string{
			"signupform-accent": "#2563eb",
			"signupform-error":  "#b91c1c",
			"signupform-border": "#d1d5db",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"signupform-accent": "#60a5fa",
					"signupform-error":  "#f87171",
					"signupform-border": "#4b5563",
				},
			},
		},
	}
}

func copyStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStrings(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}
