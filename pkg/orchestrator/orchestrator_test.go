package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/formdef"
	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/orchestrator"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/widgets"
)

type stubRenderer struct {
	last    model.FormModel
	options render.RenderOptions
	calls   int
}

func (r *stubRenderer) Name() string        { return "stub" }
func (r *stubRenderer) ContentType() string { return "text/plain" }

func (r *stubRenderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	r.calls++
	r.last = form
	r.options = opts
	return []byte(form.ID), nil
}

func TestGenerate_DefaultsToEmbeddedRegistration(t *testing.T) {
	out, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		RenderOptions: render.RenderOptions{CanSubmit: true},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	html := string(out)
	for _, fragment := range []string{
		`<form id="register"`,
		`action="/submit"`,
		`data-field="username"`,
		`data-field="gender"`,
		`<button type="submit"`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in output\n%s", fragment, html)
		}
	}
}

func TestModel_AppliesWidgetsAndDecorators(t *testing.T) {
	decorator := model.DecoratorFunc(func(form *model.FormModel) error {
		if form.Metadata == nil {
			form.Metadata = make(map[string]string)
		}
		form.Metadata["decorated"] = "true"
		return nil
	})

	form, err := orchestrator.New(orchestrator.WithUIDecorators(decorator)).Model(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	if form.Metadata["decorated"] != "true" {
		t.Fatalf("decorator did not run: %#v", form.Metadata)
	}

	got := map[string]string{}
	for _, field := range form.Fields {
		got[field.Name] = field.UIHints["widget"]
	}
	want := map[string]string{
		"username": widgets.WidgetInput,
		"email":    widgets.WidgetEmail,
		"password": widgets.WidgetPassword,
		"age":      widgets.WidgetNumber,
		"gender":   widgets.WidgetSelect,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_CustomWidgetRegistry(t *testing.T) {
	registry := widgets.NewRegistry()
	registry.Register(widgets.WidgetInput, 100, func(field model.Field) bool {
		return field.Name == "age"
	})

	form, err := orchestrator.New(orchestrator.WithWidgetRegistry(registry)).Model(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	age, _ := form.Field("age")
	if age.UIHints["widget"] != widgets.WidgetInput {
		t.Fatalf("expected custom widget to win, got %q", age.UIHints["widget"])
	}
}

func TestModel_DefinitionSources(t *testing.T) {
	const doc = `
id: newsletter
endpoint: /subscribe
fields:
  - name: email
    type: string
    format: email
    required: Email is required
`
	fsys := fstest.MapFS{"defs/newsletter.yaml": {Data: []byte(doc)}}
	orch := orchestrator.New()

	form, err := orch.Model(context.Background(), orchestrator.Request{DefinitionFS: fsys, DefinitionPath: "defs/newsletter.yaml"})
	if err != nil {
		t.Fatalf("model from fs: %v", err)
	}
	if form.ID != "newsletter" || len(form.Fields) != 1 {
		t.Fatalf("unexpected form %#v", form)
	}

	def, err := formdef.Load([]byte(doc), "inline")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, err = orchestrator.New(orchestrator.WithDefinition(def)).Model(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("model from option: %v", err)
	}
	if form.Endpoint != "/subscribe" {
		t.Fatalf("unexpected endpoint %q", form.Endpoint)
	}

	if _, err := orch.Model(context.Background(), orchestrator.Request{DefinitionFS: fsys, DefinitionPath: "missing.yaml"}); err == nil {
		t.Fatal("expected error for missing definition")
	}
}

func TestRenderer_Selection(t *testing.T) {
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(orchestrator.WithRegistry(registry))

	got, err := orch.Renderer("")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if got.Name() != "stub" {
		t.Fatalf("expected fallback to the only registered renderer, got %q", got.Name())
	}
	if _, err := orch.Renderer("missing"); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestGenerate_RequiresContext(t *testing.T) {
	if _, err := orchestrator.New().Generate(nil, orchestrator.Request{}); err == nil {
		t.Fatal("expected error for nil context")
	}
}
