package vanilla

import (
	"io/fs"
	"strings"
	"testing"
)

func TestAssetsFS_BundlesStylesheetAndRuntime(t *testing.T) {
	css, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(css), ".signupform-form") {
		t.Fatalf("stylesheet does not style the form chrome")
	}

	js, err := fs.ReadFile(AssetsFS(), RuntimeScriptName)
	if err != nil {
		t.Fatalf("read runtime: %v", err)
	}
	for _, marker := range []string{"data-validate-url", "data-signupform-actions", "window.alert"} {
		if !strings.Contains(string(js), marker) {
			t.Fatalf("runtime missing %q", marker)
		}
	}
}

func TestRuntime_DoesNotApplyFailedValidation(t *testing.T) {
	js, err := fs.ReadFile(AssetsFS(), RuntimeScriptName)
	if err != nil {
		t.Fatalf("read runtime: %v", err)
	}
	src := string(js)
	for _, marker := range []string{
		"current === seq && ok(res)",
		"res.status === 404",
		"res.status === 422",
		"window.location.reload()",
	} {
		if !strings.Contains(src, marker) {
			t.Fatalf("runtime missing %q", marker)
		}
	}
	alert := strings.Index(src, "window.alert(res.data.payload)")
	if alert < 0 || !strings.Contains(src[alert:], "restart();") {
		t.Fatal("runtime should start a fresh draft after a successful submit")
	}
}

func TestTemplatesFS_ContainsBuiltins(t *testing.T) {
	for _, name := range []string{
		formTemplate,
		fieldTemplate,
		actionsTemplate,
		resultTemplate,
		pageTemplate,
		"templates/components/input.tmpl",
		"templates/components/select.tmpl",
		"templates/components/checkbox.tmpl",
	} {
		if _, err := fs.Stat(TemplatesFS(), name); err != nil {
			t.Fatalf("template %s missing: %v", name, err)
		}
	}
}
