package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleRange     = "range"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single validation constraint applied to a field.
// Rules are evaluated in slice order and the first failing rule supplies the
// message. Length and bound thresholds live in Params["value"]; range rules
// use Params["min"] and Params["max"]; pattern rules reference a registered
// pattern through Params["name"] or carry an expression in Params["pattern"].
// Params["messageKey"] lets renderers localise Message.
type ValidationRule struct {
	Kind    string            `json:"kind"`
	Params  map[string]string `json:"params,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Field models an individual input inside a form. Struct fields are
// annotated so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// Field returns the field with the supplied name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in render order.
func (f FormModel) FieldNames() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Clone returns a deep copy so decorators and localisation can mutate the
// result without mutating the receiver.
func (f FormModel) Clone() FormModel {
	clone := f
	clone.Metadata = cloneStrings(f.Metadata)
	clone.UIHints = cloneStrings(f.UIHints)
	if f.Fields == nil {
		return clone
	}
	clone.Fields = make([]Field, len(f.Fields))
	for idx, field := range f.Fields {
		field.Metadata = cloneStrings(field.Metadata)
		field.UIHints = cloneStrings(field.UIHints)
		if field.Enum != nil {
			field.Enum = append([]any(nil), field.Enum...)
		}
		if field.Validations != nil {
			rules := make([]ValidationRule, len(field.Validations))
			for i, rule := range field.Validations {
				rule.Params = cloneStrings(rule.Params)
				rules[i] = rule
			}
			field.Validations = rules
		}
		clone.Fields[idx] = field
	}
	return clone
}
