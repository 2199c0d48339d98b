package formdef_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/formdef"
)

func TestDefault_RegistrationDefinition(t *testing.T) {
	def, err := formdef.Default()
	if err != nil {
		t.Fatalf("load default: %v", err)
	}

	if def.ID != "register" {
		t.Fatalf("id mismatch: %q", def.ID)
	}

	names := make([]string, 0, len(def.Fields))
	for _, field := range def.Fields {
		names = append(names, field.Name)
	}
	want := []string{"username", "email", "password", "age", "gender"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	username := def.Fields[0]
	if username.Required != "This is required" {
		t.Fatalf("username required message: %q", username.Required)
	}
	if n, err := username.Rules[0].IntValue(); err != nil || n != 2 {
		t.Fatalf("username min length: %d (%v)", n, err)
	}

	age := def.Fields[3]
	if age.Required != "" {
		t.Fatalf("age must be optional")
	}
	if age.Rules[0].Min == nil || *age.Rules[0].Min != 18 || age.Rules[0].Max == nil || *age.Rules[0].Max != 99 {
		t.Fatalf("age range not parsed: %#v", age.Rules[0])
	}

	gender := def.Fields[4]
	if diff := cmp.Diff([]any{"female", "male", "other"}, gender.Enum); diff != "" {
		t.Fatalf("gender enum mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSONNumbersCoerced(t *testing.T) {
	raw := []byte(`{
  "id": "tiny",
  "fields": [
    {"name": "nick", "required": "Needed", "rules": [{"kind": "minLength", "value": 3, "message": "Too short"}]}
  ]
}`)
	def, err := formdef.Load(raw, "tiny.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n, err := def.Fields[0].Rules[0].IntValue(); err != nil || n != 3 {
		t.Fatalf("expected 3, got %d (%v)", n, err)
	}
	if def.Source != "tiny.json" {
		t.Fatalf("source not recorded: %q", def.Source)
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		raw     string
		wantErr string
	}{
		{
			name:    "empty",
			source:  "empty.yaml",
			raw:     "  ",
			wantErr: "is empty",
		},
		{
			name:    "missing id",
			source:  "noid.yaml",
			raw:     "fields:\n  - name: a\n",
			wantErr: "definition id is required",
		},
		{
			name:    "duplicate field",
			source:  "dup.yaml",
			raw:     "id: x\nfields:\n  - name: a\n  - name: a\n",
			wantErr: `duplicate field "a"`,
		},
		{
			name:    "unknown rule kind",
			source:  "kind.yaml",
			raw:     "id: x\nfields:\n  - name: a\n    rules:\n      - kind: shout\n",
			wantErr: `unknown kind "shout"`,
		},
		{
			name:    "unknown key",
			source:  "typo.yaml",
			raw:     "id: x\nfields:\n  - name: a\n    requird: yes\n",
			wantErr: "requird",
		},
		{
			name:    "inverted range",
			source:  "range.yaml",
			raw:     "id: x\nfields:\n  - name: a\n    type: integer\n    rules:\n      - kind: range\n        min: 9\n        max: 1\n",
			wantErr: "exceeds max",
		},
		{
			name:    "default outside enum",
			source:  "enum.yaml",
			raw:     "id: x\nfields:\n  - name: a\n    enum: [one, two]\n    default: three\n",
			wantErr: "not one of the enum values",
		},
		{
			name:    "non integer length",
			source:  "len.yaml",
			raw:     "id: x\nfields:\n  - name: a\n    rules:\n      - kind: minLength\n        value: lots\n",
			wantErr: "not an integer",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formdef.Load([]byte(tc.raw), tc.source)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/contact.yml": {Data: []byte("id: contact\nfields:\n  - name: message\n    required: Say something\n")},
	}
	def, err := formdef.LoadFS(fsys, "forms/contact.yml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if def.ID != "contact" || def.Fields[0].Required != "Say something" {
		t.Fatalf("unexpected definition: %#v", def)
	}

	if _, err := formdef.LoadFS(fsys, "forms/missing.yml"); err == nil {
		t.Fatalf("expected missing file error")
	}
}
