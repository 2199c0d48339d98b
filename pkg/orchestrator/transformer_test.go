package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/orchestrator"
	"github.com/goliatone/go-signupform/pkg/render"
)

func TestOrchestrator_AppliesTransformer(t *testing.T) {
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	transformCalled := false
	transformer := orchestrator.TransformerFunc(func(ctx context.Context, form *model.FormModel) error {
		transformCalled = true
		form.Metadata = map[string]string{"patched": "true"}
		return nil
	})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithSchemaTransformer(transformer),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !transformCalled {
		t.Fatalf("expected transformer to be invoked")
	}
	if renderer.last.Metadata["patched"] != "true" {
		t.Fatalf("transformer mutation missing: %#v", renderer.last.Metadata)
	}
}

func TestJSONPresetTransformerFromFS(t *testing.T) {
	orch := orchestrator.New()
	form, err := orch.Model(context.Background(), orchestrator.Request{})
	if err != nil {
		t.Fatalf("model: %v", err)
	}

	transformer, err := orchestrator.NewJSONPresetTransformerFromFS(os.DirFS("testdata"), "sample_transformer.json")
	if err != nil {
		t.Fatalf("new json transformer: %v", err)
	}
	if err := transformer.Transform(context.Background(), &form); err != nil {
		t.Fatalf("apply transformer: %v", err)
	}

	if form.Title != "Join the club" {
		t.Fatalf("title not patched: %q", form.Title)
	}
	if form.Metadata["preset"] != "club" {
		t.Fatalf("metadata patch missing: %#v", form.Metadata)
	}
	if form.UIHints["submitLabel"] != "Create account" {
		t.Fatalf("ui hint missing: %#v", form.UIHints)
	}

	username, _ := form.Field("username")
	if username.Label != "Handle" || username.Placeholder != "Pick a handle" {
		t.Fatalf("username not patched: %#v", username)
	}
	if username.UIHints["autocomplete"] != "nickname" {
		t.Fatalf("username hints not merged: %#v", username.UIHints)
	}

	age, _ := form.Field("age")
	if age.Description != "Members must be adults" || age.Metadata["unit"] != "years" {
		t.Fatalf("age not patched: %#v", age)
	}
}

func TestJSONPresetTransformer_UnknownField(t *testing.T) {
	transformer, err := orchestrator.NewJSONPresetTransformer([]byte(`{"fields":{"nickname":{"label":"x"}}}`))
	if err != nil {
		t.Fatalf("new transformer: %v", err)
	}
	form := model.FormModel{Fields: []model.Field{{Name: "username"}}}
	err = transformer.Transform(context.Background(), &form)
	if err == nil || !strings.Contains(err.Error(), `"nickname"`) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestJSONPresetTransformer_RejectsEmpty(t *testing.T) {
	if _, err := orchestrator.NewJSONPresetTransformer([]byte("  ")); err == nil {
		t.Fatal("expected error for empty document")
	}
}

func TestOrchestrator_TransformerErrorAborts(t *testing.T) {
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	boom := errors.New("boom")
	transformer := orchestrator.TransformerFunc(func(context.Context, *model.FormModel) error {
		return boom
	})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithSchemaTransformer(transformer),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected transformer error, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("renderer should not run after a transformer error")
	}
}
