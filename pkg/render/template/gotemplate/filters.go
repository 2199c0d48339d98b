package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

// ErrorID returns the DOM id of the inline error element for a field.
func ErrorID(field string) string {
	return "fg-" + strings.TrimSpace(field) + "-error"
}

// InputID returns the DOM id of the control for a field.
func InputID(field string) string {
	return "fg-" + strings.TrimSpace(field)
}

func registerDefaultFilters() {
	defaults := map[string]pongo2.FilterFunction{
		"trim":     filterTrim,
		"error_id": filterErrorID,
		"input_id": filterInputID,
	}
	for name, fn := range defaults {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterErrorID(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(ErrorID(in.String())), nil
}

func filterInputID(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(InputID(in.String())), nil
}
