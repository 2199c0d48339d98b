package vanilla_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-signupform/pkg/testsupport"
)

const submitButton = `<button type="submit" class="signupform-submit">Submit</button>`

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func renderString(t *testing.T, renderer *vanilla.Renderer, form model.FormModel, opts render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRender_SubmitOnlyWhenValid(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustRegistrationModel(t)

	invalid := renderString(t, renderer, form, render.RenderOptions{})
	assertContains(t, invalid, `data-signupform-actions></div>`)
	assertNotContains(t, invalid, `type="submit"`)

	valid := renderString(t, renderer, form, render.RenderOptions{CanSubmit: true})
	assertContains(t, valid, submitButton)
}

func TestRender_FieldsInDeclarationOrder(t *testing.T) {
	html := renderString(t, newRenderer(t), testsupport.MustRegistrationModel(t), render.RenderOptions{})

	last := -1
	for _, name := range []string{"username", "email", "password", "age", "gender"} {
		idx := strings.Index(html, `data-field="`+name+`"`)
		if idx < 0 {
			t.Fatalf("field %s not rendered", name)
		}
		if idx < last {
			t.Fatalf("field %s rendered out of order", name)
		}
		last = idx
	}
}

func TestRender_InlineErrors(t *testing.T) {
	html := renderString(t, newRenderer(t), testsupport.MustRegistrationModel(t), render.RenderOptions{
		Values: map[string]any{"username": "a"},
		Errors: map[string][]string{"username": {"Min length is 2"}},
	})

	assertContains(t, html,
		`<p class="signupform-error" id="fg-username-error" role="alert" data-error-for="username">Min length is 2</p>`,
		`<p class="signupform-error" id="fg-email-error" role="alert" data-error-for="email" hidden></p>`,
		`aria-invalid="true"`,
	)
}

func TestRender_MapsErrorPaths(t *testing.T) {
	html := renderString(t, newRenderer(t), testsupport.MustRegistrationModel(t), render.RenderOptions{
		Errors: map[string][]string{
			"body.email": {"Email is already registered"},
			"_form":      {"Sign-ups are paused"},
		},
		FormErrors: []string{"Sign-ups are paused", "Try again later"},
	})

	assertContains(t, html,
		`data-error-for="email">Email is already registered</p>`,
		`<li>Sign-ups are paused</li><li>Try again later</li>`,
	)
	if strings.Count(html, "Sign-ups are paused") != 1 {
		t.Fatalf("form error should render once\n%s", html)
	}
}

func TestRender_Controls(t *testing.T) {
	html := renderString(t, newRenderer(t), testsupport.MustRegistrationModel(t), render.RenderOptions{
		Values: map[string]any{
			"username": "ab",
			"email":    "a@b.co",
			"password": "Valid1Pass!",
			"age":      "20",
			"gender":   "male",
		},
	})

	assertContains(t, html,
		`name="username" type="text" class="signupform-input" value="ab" placeholder="Enter UserName"`,
		`name="email" type="email"`,
		`name="password" type="password" class="signupform-input" value=""`,
		`name="age" type="number"`,
		` min="18" max="99"`,
		` minlength="2"`,
		`autocomplete="new-password"`,
		`<option value="male" selected>Male</option>`,
		`<option value="female">Female</option>`,
	)
	assertNotContains(t, html, "Valid1Pass!")
}

func TestRender_HelpTextIsSanitized(t *testing.T) {
	form := testsupport.MustRegistrationModel(t)
	for idx := range form.Fields {
		if form.Fields[idx].Name == "username" {
			form.Fields[idx].UIHints = map[string]string{"helpText": `Pick <em>wisely</em><script>alert(1)</script>`}
		}
	}

	html := renderString(t, newRenderer(t), form, render.RenderOptions{})
	assertContains(t, html,
		`id="fg-username-help">Pick <em>wisely</em></p>`,
		`<strong>8 to 20</strong>`,
		`aria-describedby="fg-password-error fg-password-help"`,
	)
	assertNotContains(t, html, "alert(1)")
}

func TestRender_HiddenFieldsAndMethodOverride(t *testing.T) {
	form := testsupport.MustRegistrationModel(t)
	form.Method = "PUT"

	html := renderString(t, newRenderer(t), form, render.RenderOptions{
		Action:       "/accounts",
		HiddenFields: render.MergeHiddenFields(nil, render.SessionField("abc")),
	})

	assertContains(t, html,
		`method="post" action="/accounts"`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<input type="hidden" name="_session" value="abc">`,
	)
}

func TestRender_RuntimeOnlyWithValidateURL(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustRegistrationModel(t)

	static := renderString(t, renderer, form, render.RenderOptions{})
	assertNotContains(t, static, "data-validate-url", "DOMParser")
	assertContains(t, static, "--signupform-accent")

	live := renderString(t, renderer, form, render.RenderOptions{ValidateURL: "/validate"})
	assertContains(t, live, `data-validate-url="/validate"`, "DOMParser")

	linked := renderString(t, newRenderer(t,
		vanilla.WithRuntimeScriptURL("/assets/signupform-runtime.js"),
		vanilla.WithInlineStyles(false),
	), form, render.RenderOptions{ValidateURL: "/validate"})
	assertContains(t, linked, `<script src="/assets/signupform-runtime.js" defer></script>`)
	assertNotContains(t, linked, "DOMParser", "--signupform-accent")
}

func TestRender_Theme(t *testing.T) {
	html := renderString(t, newRenderer(t), testsupport.MustRegistrationModel(t), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--brand": "#123456"},
			AssetURL: func(key string) string {
				if key == vanilla.StylesheetAssetKey {
					return "/themes/acme/forms.css"
				}
				return ""
			},
		},
	})

	assertContains(t, html,
		`<link rel="stylesheet" href="/themes/acme/forms.css">`,
		`--brand: #123456;`,
		`data-theme="acme" data-theme-variant="dark"`,
	)
	assertNotContains(t, html, "--signupform-accent")
}

func TestRender_Localized(t *testing.T) {
	form := testsupport.MustRegistrationModel(t)
	form.UIHints["submitLabelKey"] = "form.submit"

	translator := render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		if locale == "es" && key == "form.submit" {
			return "Enviar", nil
		}
		return "", nil
	})

	html := renderString(t, newRenderer(t), form, render.RenderOptions{
		CanSubmit:  true,
		Locale:     "es",
		Translator: translator,
	})
	assertContains(t, html, `data-locale="es"`, `<button type="submit" class="signupform-submit">Enviar</button>`)

	if form.UIHints["submitLabel"] != "Submit" {
		t.Fatalf("render mutated the caller's model: %q", form.UIHints["submitLabel"])
	}
}

func TestRender_ComponentAssets(t *testing.T) {
	registry := components.NewDefaultRegistry()
	base, _ := registry.Descriptor(components.NameSelect)
	registry.MustRegister(components.NameSelect, components.Descriptor{
		Renderer:    base.Renderer,
		Stylesheets: []string{"/css/select.css"},
		Scripts:     []components.Script{{Src: "/js/select.js", Defer: true}},
	})

	html := renderString(t, newRenderer(t, vanilla.WithComponentRegistry(registry)), testsupport.MustRegistrationModel(t), render.RenderOptions{})
	assertContains(t, html,
		`<link rel="stylesheet" href="/css/select.css">`,
		`<script src="/js/select.js" defer></script>`,
	)
}

func TestRender_ThemePartialsReachComponents(t *testing.T) {
	recorder := &recordingTemplateRenderer{}
	renderer := newRenderer(t, vanilla.WithTemplateRenderer(recorder))

	_, err := renderer.Render(context.Background(), testsupport.MustRegistrationModel(t), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Partials: map[string]string{components.PartialSelect: "themes/acme/select.tmpl"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{
		"templates/components/input.tmpl",
		"templates/field.tmpl",
		"templates/components/input.tmpl",
		"templates/field.tmpl",
		"templates/components/input.tmpl",
		"templates/field.tmpl",
		"templates/components/input.tmpl",
		"templates/field.tmpl",
		"themes/acme/select.tmpl",
		"templates/field.tmpl",
		"templates/actions.tmpl",
		"templates/form.tmpl",
	}
	if diff := cmp.Diff(want, recorder.calls); diff != "" {
		t.Fatalf("template calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderActions(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustRegistrationModel(t)

	out, err := renderer.RenderActions(context.Background(), form, render.RenderOptions{CanSubmit: true})
	if err != nil {
		t.Fatalf("render actions: %v", err)
	}
	assertContains(t, string(out), `<div class="signupform-actions" data-signupform-actions>`+submitButton+`</div>`)

	out, err = renderer.RenderActions(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render actions: %v", err)
	}
	assertNotContains(t, string(out), "<button")
}

func TestRenderResult_AlertsSerializedSnapshot(t *testing.T) {
	renderer := newRenderer(t)
	payload := `{"username":"ab","age":20}`

	out, err := renderer.RenderResult(context.Background(), testsupport.MustRegistrationModel(t), payload, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render result: %v", err)
	}
	assertContains(t, string(out),
		`data-signupform-result`,
		`<h2>Form submitted</h2>`,
		`window.alert("{\"username\":\"ab\",\"age\":20}");`,
	)
}

func TestPage(t *testing.T) {
	out, err := newRenderer(t).Page("Create your account", "", []byte(`<form></form>`))
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	assertContains(t, string(out),
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Create your account</title>",
		"<body>\n<form></form>\n</body>",
	)
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t).Render(ctx, testsupport.MustRegistrationModel(t), render.RenderOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}

type recordingTemplateRenderer struct {
	calls []string
}

func (r *recordingTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplateRenderer) RenderTemplate(name string, _ any, out ...io.Writer) (string, error) {
	r.calls = append(r.calls, name)
	var buf bytes.Buffer
	buf.WriteString("<" + name + ">")
	for _, w := range out {
		_, _ = w.Write(buf.Bytes())
	}
	return buf.String(), nil
}

func (r *recordingTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplateRenderer) RegisterFilter(string, func(input any, param any) (any, error)) error {
	return nil
}

func (r *recordingTemplateRenderer) GlobalContext(any) error {
	return nil
}

func TestRender_TemplatesFSOverridesByName(t *testing.T) {
	overrides := fstest.MapFS{
		"templates/actions.tmpl": {Data: []byte(`<footer data-signupform-actions>{% if can_submit %}<button type="submit">{{ submit_label }}</button>{% endif %}</footer>`)},
	}
	renderer := newRenderer(t, vanilla.WithTemplatesFS(overrides))
	form := testsupport.MustRegistrationModel(t)

	html := renderString(t, renderer, form, render.RenderOptions{CanSubmit: true})
	assertContains(t, html,
		`<footer data-signupform-actions><button type="submit">Submit</button></footer>`,
		`data-field="username"`,
	)
	assertNotContains(t, html, submitButton)
}
