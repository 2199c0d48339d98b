package render

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
)

// ErrorMapping splits an error payload into messages per field name and
// messages that belong to the whole form.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

var formLevelKeys = map[string]bool{
	"":                 true,
	"_form":            true,
	"form":             true,
	"__all__":          true,
	"non_field_errors": true,
}

// MergeFormErrors appends extras to existing, trimming blanks and dropping
// repeats. The first occurrence keeps its position.
func MergeFormErrors(existing []string, extras ...string) []string {
	all := make([]string, 0, len(existing)+len(extras))
	all = append(all, existing...)
	all = append(all, extras...)
	return dedupe(all)
}

// MapErrorPayload resolves payload keys onto field names. Keys may be bare
// names, dotted paths ("body.email"), JSON pointers ("/body/email") or
// JSONPath-like selectors ("$.data.age[0]"); the last segment naming a field
// wins. Keys that name no field become form errors.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	var out ErrorMapping
	if len(payload) == 0 {
		return out
	}

	names := make(map[string]bool, len(form.Fields))
	for _, field := range form.Fields {
		names[field.Name] = true
	}

	for _, key := range slices.Sorted(maps.Keys(payload)) {
		messages := dedupe(payload[key])
		if len(messages) == 0 {
			continue
		}
		name := resolveErrorKey(key, names)
		if name == "" {
			out.Form = append(out.Form, messages...)
			continue
		}
		if out.Fields == nil {
			out.Fields = make(map[string][]string)
		}
		out.Fields[name] = dedupe(append(out.Fields[name], messages...))
	}
	out.Form = dedupe(out.Form)
	return out
}

func resolveErrorKey(key string, names map[string]bool) string {
	key = strings.TrimSpace(key)
	if formLevelKeys[key] {
		return ""
	}
	if names[key] {
		return key
	}

	segments := strings.FieldsFunc(key, func(r rune) bool {
		switch r {
		case '/', '.', '[', ']', '$':
			return true
		}
		return false
	})
	for i := len(segments) - 1; i >= 0; i-- {
		segment := strings.Trim(segments[i], `"'`)
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if names[segment] {
			return segment
		}
	}
	return ""
}

func dedupe(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(messages))
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" || seen[message] {
			continue
		}
		seen[message] = true
		out = append(out, message)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
