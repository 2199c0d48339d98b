package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-signupform/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput    = "input"
	WidgetSelect   = "select"
	WidgetPassword = "password"
	WidgetEmail    = "email"
	WidgetNumber   = "number"
	WidgetCheckbox = "checkbox"
)

const (
	widgetHint    = "widget"
	inputTypeHint = "inputType"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. Fields
// no matcher claims resolve to WidgetInput.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. The
// latest registration wins between equal names and priorities.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit `widget` hint is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) string {
	if explicit := strings.TrimSpace(field.UIHints[widgetHint]); explicit != "" {
		return explicit
	}
	if r == nil {
		return WidgetInput
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order > rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return WidgetInput
}

// Decorate implements model.Decorator. Every field receives a `widget` hint
// and, for plain inputs, the HTML `inputType` hint. Existing hints are kept.
func (r *Registry) Decorate(form *model.FormModel) error {
	if form == nil {
		return nil
	}
	fields := make([]model.Field, len(form.Fields))
	for idx, field := range form.Fields {
		fields[idx] = r.decorateField(field)
	}
	form.Fields = fields
	return nil
}

func (r *Registry) decorateField(field model.Field) model.Field {
	widget := r.Resolve(field)
	hints := make(map[string]string, len(field.UIHints)+2)
	for key, value := range field.UIHints {
		hints[key] = value
	}
	if hints[widgetHint] == "" {
		hints[widgetHint] = widget
	}
	if hints[inputTypeHint] == "" {
		if inputType := InputType(widget); inputType != "" {
			hints[inputTypeHint] = inputType
		}
	}
	field.UIHints = hints
	return field
}

// InputType maps a widget onto the HTML input type it renders, or "" for
// widgets that are not <input> elements.
func InputType(widget string) string {
	switch widget {
	case WidgetPassword:
		return "password"
	case WidgetEmail:
		return "email"
	case WidgetNumber:
		return "number"
	case WidgetCheckbox:
		return "checkbox"
	case WidgetInput:
		return "text"
	default:
		return ""
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetSelect, 90, func(field model.Field) bool {
		return len(field.Enum) > 0
	})

	r.Register(WidgetCheckbox, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetPassword, 70, func(field model.Field) bool {
		return strings.EqualFold(strings.TrimSpace(field.Format), "password")
	})

	r.Register(WidgetEmail, 60, func(field model.Field) bool {
		return strings.EqualFold(strings.TrimSpace(field.Format), "email")
	})

	r.Register(WidgetNumber, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeInteger || field.Type == model.FieldTypeNumber
	})
}
