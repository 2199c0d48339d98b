package formdef

// Definition is the on-disk description of a single form.
type Definition struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Endpoint    string            `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`

	// Source records where the definition was loaded from. It is not part of
	// the document itself.
	Source string `json:"-" yaml:"-"`
}

// FieldDefinition describes one input. Required carries the message shown
// when the value is empty; an empty Required marks the field optional.
type FieldDefinition struct {
	Name        string            `json:"name" yaml:"name"`
	Type        string            `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	HelpText    string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Required    string            `json:"required,omitempty" yaml:"required,omitempty"`
	RequiredKey string            `json:"requiredKey,omitempty" yaml:"requiredKey,omitempty"`
	Default     any               `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty" yaml:"enum,omitempty"`
	Rules       []RuleDefinition  `json:"rules,omitempty" yaml:"rules,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}

// RuleDefinition binds one constraint to a field. Value holds the threshold
// for length and bound rules; range rules use Min and Max; pattern rules use
// either a registered pattern Name or a raw RE2 Pattern.
type RuleDefinition struct {
	Kind       string `json:"kind" yaml:"kind"`
	Value      any    `json:"value,omitempty" yaml:"value,omitempty"`
	Min        *int   `json:"min,omitempty" yaml:"min,omitempty"`
	Max        *int   `json:"max,omitempty" yaml:"max,omitempty"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Pattern    string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	MessageKey string `json:"messageKey,omitempty" yaml:"messageKey,omitempty"`
}

// Rule kinds accepted in definitions.
const (
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleRange     = "range"
)

// Field types accepted in definitions.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)
