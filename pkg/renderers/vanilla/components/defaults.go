package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
)

const templatePrefix = "templates/components/"

// Theme partial keys that can replace the built-in component templates.
const (
	PartialInput    = "forms.input"
	PartialSelect   = "forms.select"
	PartialCheckbox = "forms.checkbox"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components used by the vanilla renderer.
func NewDefaultRegistry() *Registry {
	registry := New()

	input := templateComponentRenderer(PartialInput, templatePrefix+"input.tmpl")
	registry.MustRegister(NameInput, Descriptor{Renderer: input})
	registry.MustRegister(NameEmail, Descriptor{Renderer: input})
	registry.MustRegister(NameNumber, Descriptor{Renderer: input})
	registry.MustRegister(NamePassword, Descriptor{Renderer: input})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer(PartialSelect, templatePrefix+"select.tmpl"),
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer(PartialCheckbox, templatePrefix+"checkbox.tmpl"),
	})

	return registry
}

// DefaultPartials maps theme partial keys to the built-in templates. Themes
// override individual entries; the rest fall back to these.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialInput:    templatePrefix + "input.tmpl",
		PartialSelect:   templatePrefix + "select.tmpl",
		PartialCheckbox: templatePrefix + "checkbox.tmpl",
	}
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
			resolved = candidate
		}

		payload := map[string]any{
			"field":   field,
			"control": data.Control,
			"config":  data.Config,
		}
		rendered, err := data.Template.RenderTemplate(resolved, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
