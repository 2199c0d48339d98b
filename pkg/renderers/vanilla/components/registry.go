package components

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-signupform/pkg/model"
	rendertemplate "github.com/goliatone/go-signupform/pkg/render/template"
)

// Renderer writes the control markup for field into buf. The vanilla
// renderer wraps it with the label, help text and error slot.
type Renderer func(buf *bytes.Buffer, field model.Field, data ComponentData) error

// ComponentData is what a component renderer gets besides the field.
type ComponentData struct {
	Template      rendertemplate.TemplateRenderer
	Control       Control
	ThemePartials map[string]string
	Config        map[string]any
}

// Control is the request-scoped state of one field control.
type Control struct {
	Value       string   `json:"value"`
	InputType   string   `json:"input_type"`
	Invalid     bool     `json:"invalid"`
	DescribedBy string   `json:"described_by"`
	Attrs       []Attr   `json:"attrs,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// Attr is an extra attribute on the control; boolean attributes have no Value.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Script is a script tag a component needs once per page. Src wins over
// Inline when both are set.
type Script struct {
	Src    string
	Type   string
	Inline string
	Async  bool
	Defer  bool
	Module bool
}

func (s Script) key() string {
	if s.Src != "" {
		return "src:" + s.Src
	}
	return "inline:" + s.Inline
}

// Descriptor is a registered component and its page assets.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
	Scripts     []Script
}

func (d Descriptor) clone() Descriptor {
	d.Stylesheets = slices.Clone(d.Stylesheets)
	d.Scripts = slices.Clone(d.Scripts)
	return d
}

// Registry maps case-insensitive component names to descriptors.
// Registering an existing name replaces it.
type Registry struct {
	mu    sync.RWMutex
	items map[string]Descriptor
}

func New() *Registry {
	return &Registry{items: make(map[string]Descriptor)}
}

func (r *Registry) Register(name string, d Descriptor) error {
	key := canonical(name)
	if key == "" {
		return errors.New("components: name is required")
	}
	if d.Renderer == nil {
		return fmt.Errorf("components: %q has no renderer", key)
	}
	d.Name = key

	r.mu.Lock()
	r.items[key] = d.clone()
	r.mu.Unlock()
	return nil
}

func (r *Registry) MustRegister(name string, d Descriptor) {
	if err := r.Register(name, d); err != nil {
		panic(err)
	}
}

// Descriptor returns a copy, so callers may modify the result freely.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	d, ok := r.items[canonical(name)]
	r.mu.RUnlock()
	if !ok {
		return Descriptor{}, false
	}
	return d.clone(), true
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.items))
}

// Assets collects the stylesheets and scripts of the named components in
// first-seen order without duplicates. Unknown names are skipped.
func (r *Registry) Assets(names []string) ([]string, []Script) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var styles []string
	var scripts []Script
	seen := make(map[string]bool)
	for _, name := range names {
		d, ok := r.items[canonical(name)]
		if !ok {
			continue
		}
		for _, href := range d.Stylesheets {
			if href != "" && !seen["css:"+href] {
				seen["css:"+href] = true
				styles = append(styles, href)
			}
		}
		for _, s := range d.Scripts {
			if k := s.key(); !seen[k] {
				seen[k] = true
				scripts = append(scripts, s)
			}
		}
	}
	return styles, scripts
}

func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
