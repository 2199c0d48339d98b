package vanilla

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	gotemplate "github.com/goliatone/go-signupform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-signupform/pkg/widgets"
)

func (r *Renderer) renderField(field model.Field, opts render.RenderOptions, partials map[string]string) (string, string, error) {
	component := strings.TrimSpace(field.UIHints["widget"])
	descriptor, ok := r.components.Descriptor(component)
	if !ok {
		component = components.NameInput
		descriptor, ok = r.components.Descriptor(component)
		if !ok {
			return "", "", fmt.Errorf("vanilla renderer: no component for field %q", field.Name)
		}
	}

	message := firstMessage(opts.Errors[field.Name])
	help := strings.TrimSpace(field.UIHints["helpText"])
	if help == "" {
		help = strings.TrimSpace(field.Description)
	}
	helpHTML := ""
	if help != "" {
		helpHTML = r.sanitizer.Sanitize(help)
	}

	control := buildControl(field, component, stringValue(opts.Values[field.Name]), message != "", helpHTML != "")

	var buf bytes.Buffer
	err := descriptor.Renderer(&buf, field, components.ComponentData{
		Template:      r.templates,
		Control:       control,
		ThemePartials: partials,
	})
	if err != nil {
		return "", "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
	}

	out, err := r.templates.RenderTemplate(fieldTemplate, map[string]any{
		"field":        field,
		"control_html": buf.String(),
		"input_id":     gotemplate.InputID(field.Name),
		"error_id":     gotemplate.ErrorID(field.Name),
		"help_id":      helpID(field.Name),
		"help_html":    helpHTML,
		"error":        message,
		"classes":      chromeClasses(),
	})
	if err != nil {
		return "", "", fmt.Errorf("vanilla renderer: render field %q: %w", field.Name, err)
	}
	return out, component, nil
}

func buildControl(field model.Field, component, value string, invalid, hasHelp bool) components.Control {
	control := components.Control{
		Value:     value,
		InputType: strings.TrimSpace(field.UIHints["inputType"]),
		Invalid:   invalid,
	}
	if control.InputType == "" {
		control.InputType = widgets.InputType(component)
	}

	// Passwords are never echoed back into markup.
	if component == components.NamePassword {
		control.Value = ""
	}

	describedBy := []string{gotemplate.ErrorID(field.Name)}
	if hasHelp {
		describedBy = append(describedBy, helpID(field.Name))
	}
	control.DescribedBy = strings.Join(describedBy, " ")

	if field.Required {
		control.Attrs = append(control.Attrs, components.Attr{Name: "aria-required", Value: "true"})
	}
	if autocomplete := autocompleteFor(field, component); autocomplete != "" {
		control.Attrs = append(control.Attrs, components.Attr{Name: "autocomplete", Value: autocomplete})
	}
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMinLength:
			control.Attrs = appendAttr(control.Attrs, "minlength", rule.Params["value"])
		case model.ValidationRuleMaxLength:
			control.Attrs = appendAttr(control.Attrs, "maxlength", rule.Params["value"])
		case model.ValidationRuleMin:
			control.Attrs = appendAttr(control.Attrs, "min", rule.Params["value"])
		case model.ValidationRuleMax:
			control.Attrs = appendAttr(control.Attrs, "max", rule.Params["value"])
		case model.ValidationRuleRange:
			control.Attrs = appendAttr(control.Attrs, "min", rule.Params["min"])
			control.Attrs = appendAttr(control.Attrs, "max", rule.Params["max"])
		}
	}

	for _, option := range field.Enum {
		optionValue := stringValue(option)
		control.Options = append(control.Options, components.Option{
			Value:    optionValue,
			Label:    optionLabel(optionValue),
			Selected: optionValue == value,
		})
	}
	return control
}

func appendAttr(attrs []components.Attr, name, value string) []components.Attr {
	if strings.TrimSpace(value) == "" {
		return attrs
	}
	return append(attrs, components.Attr{Name: name, Value: value})
}

func autocompleteFor(field model.Field, component string) string {
	if hint := strings.TrimSpace(field.UIHints["autocomplete"]); hint != "" {
		return hint
	}
	switch component {
	case components.NamePassword:
		return "new-password"
	case components.NameEmail:
		return "email"
	}
	if field.Name == "username" {
		return "username"
	}
	return ""
}
