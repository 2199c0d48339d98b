package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type:    model.FieldTypeInteger,
		UIHints: map[string]string{"widget": "slider"},
	}

	if got := reg.Resolve(field); got != "slider" {
		t.Fatalf("expected explicit widget to win, got %q", got)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{name: "enum select", field: model.Field{Type: model.FieldTypeString, Enum: []any{"female", "male"}}, expect: WidgetSelect},
		{name: "boolean checkbox", field: model.Field{Type: model.FieldTypeBoolean}, expect: WidgetCheckbox},
		{name: "password format", field: model.Field{Type: model.FieldTypeString, Format: "password"}, expect: WidgetPassword},
		{name: "email format", field: model.Field{Type: model.FieldTypeString, Format: "Email"}, expect: WidgetEmail},
		{name: "integer number", field: model.Field{Type: model.FieldTypeInteger}, expect: WidgetNumber},
		{name: "plain string", field: model.Field{Type: model.FieldTypeString}, expect: WidgetInput},
		{name: "enum beats number", field: model.Field{Type: model.FieldTypeInteger, Enum: []any{1, 2}}, expect: WidgetSelect},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reg.Resolve(tc.field); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestRegister_LaterRegistrationWinsTies(t *testing.T) {
	reg := NewRegistry()
	reg.Register("masked", 70, func(field model.Field) bool {
		return field.Format == "password"
	})

	if got := reg.Resolve(model.Field{Format: "password"}); got != "masked" {
		t.Fatalf("expected later registration to win, got %q", got)
	}
}

func TestDecorate_SetsHints(t *testing.T) {
	form := model.FormModel{
		Fields: []model.Field{
			{Name: "username", Type: model.FieldTypeString},
			{Name: "password", Type: model.FieldTypeString, Format: "password", UIHints: map[string]string{"helpText": "x"}},
			{Name: "age", Type: model.FieldTypeInteger},
			{Name: "gender", Type: model.FieldTypeString, Enum: []any{"female"}},
		},
	}
	original := form.Fields[1].UIHints

	if err := NewRegistry().Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	want := []map[string]string{
		{"widget": "input", "inputType": "text"},
		{"widget": "password", "inputType": "password", "helpText": "x"},
		{"widget": "number", "inputType": "number"},
		{"widget": "select"},
	}
	for idx, field := range form.Fields {
		if diff := cmp.Diff(want[idx], field.UIHints); diff != "" {
			t.Fatalf("%s hints mismatch (-want +got):\n%s", field.Name, diff)
		}
	}
	if _, ok := original["widget"]; ok {
		t.Fatal("decorate must not mutate the caller's hint map")
	}
}
