package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
)

func TestMapErrorPayload_PathStyles(t *testing.T) {
	form := model.FormModel{
		Fields: []model.Field{
			{Name: "username", Type: model.FieldTypeString},
			{Name: "email", Type: model.FieldTypeString},
			{Name: "age", Type: model.FieldTypeInteger},
			{Name: "gender", Type: model.FieldTypeString},
		},
	}

	payload := map[string][]string{
		"/body/username":             {"Username taken"},
		"body.email":                 {"Email invalid", " Email invalid "},
		"$.data.age[0]":              {"Age must be between 18 and 99"},
		"request/payload/gender":     {"Pick one"},
		"non_field_errors":           {"Form level error"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"":                           {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(form, payload)

	wantFields := map[string][]string{
		"username": {"Username taken"},
		"email":    {"Email invalid"},
		"age":      {"Age must be between 18 and 99"},
		"gender":   {"Pick one"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
