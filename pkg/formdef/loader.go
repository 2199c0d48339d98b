package formdef

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	errDefinitionIDMissing = errors.New("formdef: definition id is required")
	errNoFields            = errors.New("formdef: definition declares no fields")
)

// Load parses a JSON or YAML definition. Unknown keys are rejected so typos in
// rule names surface at load time instead of silently disabling a rule.
func Load(data []byte, source string) (Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Definition{}, fmt.Errorf("formdef: file %s is empty", source)
	}

	def, err := decode(data, source)
	if err != nil {
		return Definition{}, err
	}
	def.Source = source

	if err := Validate(def); err != nil {
		return Definition{}, fmt.Errorf("formdef: %s: %w", source, err)
	}
	return def, nil
}

// LoadFS reads the definition at path from fsys.
func LoadFS(fsys fs.FS, path string) (Definition, error) {
	if fsys == nil {
		return Definition{}, errors.New("formdef: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Load(data, path)
}

// LoadFile reads a definition from disk.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Load(data, path)
}

func decode(data []byte, source string) (Definition, error) {
	var def Definition
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return Definition{}, fmt.Errorf("formdef: parse %s: %w", source, err)
		}
		return def, nil
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return Definition{}, fmt.Errorf("formdef: parse %s: %w", source, err)
		}
		return def, nil
	}
}

// Validate checks structural invariants of a definition.
func Validate(def Definition) error {
	if strings.TrimSpace(def.ID) == "" {
		return errDefinitionIDMissing
	}
	if len(def.Fields) == 0 {
		return errNoFields
	}

	seen := make(map[string]struct{}, len(def.Fields))
	for idx, field := range def.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("field at index %d has no name", idx)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("duplicate field %q", name)
		}
		seen[name] = struct{}{}

		if err := validateField(field); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
	}
	return nil
}

func validateField(field FieldDefinition) error {
	switch field.Type {
	case "", TypeString, TypeInteger, TypeNumber, TypeBoolean:
	default:
		return fmt.Errorf("unsupported type %q", field.Type)
	}

	if field.Default != nil && len(field.Enum) > 0 && !enumContains(field.Enum, field.Default) {
		return fmt.Errorf("default %v is not one of the enum values", field.Default)
	}

	for idx, rule := range field.Rules {
		if err := validateRule(rule); err != nil {
			return fmt.Errorf("rule %d (%s): %w", idx, rule.Kind, err)
		}
	}
	return nil
}

func validateRule(rule RuleDefinition) error {
	switch rule.Kind {
	case RuleMinLength, RuleMaxLength, RuleMin, RuleMax:
		if _, err := rule.IntValue(); err != nil {
			return err
		}
	case RuleRange:
		if rule.Min == nil && rule.Max == nil {
			return errors.New("range requires min or max")
		}
		if rule.Min != nil && rule.Max != nil && *rule.Min > *rule.Max {
			return fmt.Errorf("range min %d exceeds max %d", *rule.Min, *rule.Max)
		}
	case RulePattern:
		if strings.TrimSpace(rule.Name) == "" && strings.TrimSpace(rule.Pattern) == "" {
			return errors.New("pattern requires a name or an expression")
		}
	case "":
		return errors.New("kind is required")
	default:
		return fmt.Errorf("unknown kind %q", rule.Kind)
	}
	return nil
}

// IntValue coerces Value into an int. JSON decodes numbers as float64 and
// YAML as int, so both are accepted along with numeric strings.
func (r RuleDefinition) IntValue() (int, error) {
	switch v := r.Value.(type) {
	case nil:
		return 0, errors.New("value is required")
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("value of type %T is not an integer", r.Value)
	}
}

func enumContains(values []any, candidate any) bool {
	want := fmt.Sprint(candidate)
	for _, value := range values {
		if fmt.Sprint(value) == want {
			return true
		}
	}
	return false
}
