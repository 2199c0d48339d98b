package validation

import "sort"

// Kind tags the rule that rejected a value.
type Kind string

const (
	KindRequired  Kind = "required"
	KindMinLength Kind = "min-length"
	KindMaxLength Kind = "max-length"
	KindPattern   Kind = "pattern"
	KindRange     Kind = "range"
)

// Failure reports the first rule a field value did not satisfy.
type Failure struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Errors maps field names to their current failure. A field is absent while
// its value satisfies every rule.
type Errors map[string]Failure

// Has reports whether name currently fails.
func (e Errors) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Fields returns the failing field names sorted alphabetically.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Messages converts failures into the map shape renderers consume.
func (e Errors) Messages() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for name, failure := range e {
		out[name] = []string{failure.Message}
	}
	return out
}

func sortStrings(values []string) []string {
	sort.Strings(values)
	return values
}
