package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-signupform/pkg/formdef"
)

const (
	helpTextHint    = "helpText"
	requiredKeyHint = "messageKey"
)

// Builder converts form definitions into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.DefaultEndpoint != "" {
		opts.DefaultEndpoint = options.DefaultEndpoint
	}
	if options.DefaultMethod != "" {
		opts.DefaultMethod = options.DefaultMethod
	}
	return &Builder{opts: opts}
}

// Build transforms a definition into a FormModel. Field order is preserved and
// every field's rules are emitted with the required check first so evaluators
// can stop at the first failure.
func (b *Builder) Build(def formdef.Definition) (FormModel, error) {
	if err := validateDefinition(def); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		ID:          strings.TrimSpace(def.ID),
		Endpoint:    strings.TrimSpace(def.Endpoint),
		Method:      strings.ToUpper(strings.TrimSpace(def.Method)),
		Title:       def.Title,
		Description: def.Description,
		Metadata:    cloneStrings(def.Metadata),
		UIHints:     cloneStrings(def.UIHints),
	}
	if form.Endpoint == "" {
		form.Endpoint = b.opts.DefaultEndpoint
	}
	if form.Method == "" {
		form.Method = b.opts.DefaultMethod
	}
	if def.Source != "" {
		form.Metadata = ensureStrings(form.Metadata)
		form.Metadata["source"] = def.Source
	}

	form.Fields = make([]Field, 0, len(def.Fields))
	for _, fieldDef := range def.Fields {
		field, err := b.buildField(fieldDef)
		if err != nil {
			return FormModel{}, fmt.Errorf("model builder: field %q: %w", fieldDef.Name, err)
		}
		form.Fields = append(form.Fields, field)
	}

	return form, nil
}

func (b *Builder) buildField(def formdef.FieldDefinition) (Field, error) {
	name := strings.TrimSpace(def.Name)
	field := Field{
		Name:        name,
		Type:        fieldType(def.Type),
		Format:      strings.TrimSpace(def.Format),
		Required:    strings.TrimSpace(def.Required) != "",
		Label:       strings.TrimSpace(def.Label),
		Placeholder: def.Placeholder,
		Description: def.Description,
		Default:     def.Default,
		Enum:        append([]any(nil), def.Enum...),
		Metadata:    cloneStrings(def.Metadata),
		UIHints:     cloneStrings(def.UIHints),
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(name)
	}
	if field.Default == nil && len(field.Enum) > 0 {
		field.Default = field.Enum[0]
	}
	if help := strings.TrimSpace(def.HelpText); help != "" {
		field.UIHints = ensureStrings(field.UIHints)
		field.UIHints[helpTextHint] = help
	}

	if field.Required {
		rule := ValidationRule{
			Kind:    ValidationRuleRequired,
			Message: strings.TrimSpace(def.Required),
		}
		if key := strings.TrimSpace(def.RequiredKey); key != "" {
			rule.Params = map[string]string{requiredKeyHint: key}
		}
		field.Validations = append(field.Validations, rule)
	}

	for _, ruleDef := range def.Rules {
		rule, err := buildRule(ruleDef)
		if err != nil {
			return Field{}, err
		}
		field.Validations = append(field.Validations, rule)
	}

	return field, nil
}

func buildRule(def formdef.RuleDefinition) (ValidationRule, error) {
	rule := ValidationRule{
		Kind:    def.Kind,
		Params:  map[string]string{},
		Message: strings.TrimSpace(def.Message),
	}

	switch def.Kind {
	case formdef.RuleMinLength, formdef.RuleMaxLength, formdef.RuleMin, formdef.RuleMax:
		value, err := def.IntValue()
		if err != nil {
			return ValidationRule{}, fmt.Errorf("rule %s: %w", def.Kind, err)
		}
		rule.Params["value"] = strconv.Itoa(value)
	case formdef.RuleRange:
		if def.Min != nil {
			rule.Params["min"] = strconv.Itoa(*def.Min)
		}
		if def.Max != nil {
			rule.Params["max"] = strconv.Itoa(*def.Max)
		}
	case formdef.RulePattern:
		if name := strings.TrimSpace(def.Name); name != "" {
			rule.Params["name"] = name
		}
		if expr := strings.TrimSpace(def.Pattern); expr != "" {
			rule.Params["pattern"] = expr
		}
	default:
		return ValidationRule{}, fmt.Errorf("unsupported rule kind %q", def.Kind)
	}

	if rule.Message == "" {
		rule.Message = defaultMessage(rule)
	}
	if key := strings.TrimSpace(def.MessageKey); key != "" {
		rule.Params[requiredKeyHint] = key
	}
	if len(rule.Params) == 0 {
		rule.Params = nil
	}
	return rule, nil
}

func defaultMessage(rule ValidationRule) string {
	switch rule.Kind {
	case ValidationRuleMinLength:
		return "Min length is " + rule.Params["value"]
	case ValidationRuleMaxLength:
		return "Max length is " + rule.Params["value"]
	case ValidationRuleMin:
		return "Must be at least " + rule.Params["value"]
	case ValidationRuleMax:
		return "Must be at most " + rule.Params["value"]
	case ValidationRuleRange:
		minVal, maxVal := rule.Params["min"], rule.Params["max"]
		switch {
		case minVal != "" && maxVal != "":
			return "Must be between " + minVal + " and " + maxVal
		case minVal != "":
			return "Must be at least " + minVal
		default:
			return "Must be at most " + maxVal
		}
	default:
		return "Invalid format"
	}
}

func fieldType(raw string) FieldType {
	switch strings.TrimSpace(raw) {
	case formdef.TypeInteger:
		return FieldTypeInteger
	case formdef.TypeNumber:
		return FieldTypeNumber
	case formdef.TypeBoolean:
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

func cloneStrings(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func ensureStrings(in map[string]string) map[string]string {
	if in != nil {
		return in
	}
	return make(map[string]string)
}
