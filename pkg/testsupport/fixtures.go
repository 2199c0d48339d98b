// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/formdef"
	pkgmodel "github.com/goliatone/go-signupform/pkg/model"
)

// UpdateEnv names the variable that makes golden helpers rewrite fixtures.
const UpdateEnv = "UPDATE_GOLDENS"

// RegistrationModel builds the model of the embedded registration definition.
func RegistrationModel() (pkgmodel.FormModel, error) {
	def, err := formdef.Default()
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: registration definition: %w", err)
	}
	form, err := pkgmodel.NewBuilder().Build(def)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: registration model: %w", err)
	}
	return form, nil
}

func MustRegistrationModel(t testing.TB) pkgmodel.FormModel {
	t.Helper()
	form, err := RegistrationModel()
	if err != nil {
		t.Fatal(err)
	}
	return form
}

// MustLoadFormModel decodes a JSON form model golden.
func MustLoadFormModel(t testing.TB, path string) pkgmodel.FormModel {
	t.Helper()
	var form pkgmodel.FormModel
	if err := json.Unmarshal(mustRead(t, path), &form); err != nil {
		t.Fatalf("testsupport: decode %s: %v", path, err)
	}
	return form
}

// WriteFormModel refreshes a form model golden when UpdateEnv is set.
func WriteFormModel(t testing.TB, path string, form pkgmodel.FormModel) {
	t.Helper()
	if os.Getenv(UpdateEnv) == "" {
		return
	}
	data, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		t.Fatalf("testsupport: encode form model: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("testsupport: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("testsupport: %v", err)
	}
}

// CompareGolden reports the difference between want and got, or "".
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

func MustReadGoldenString(t testing.TB, path string) string {
	t.Helper()
	return string(mustRead(t, path))
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t testing.TB, render func(io.Writer) (string, error)) (returned, written string) {
	t.Helper()
	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("testsupport: render: %v", err)
	}
	return out, buf.String()
}

func mustRead(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("testsupport: %v", err)
	}
	return data
}
