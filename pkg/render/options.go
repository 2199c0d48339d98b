package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model.
	Method string
	// Action overrides the endpoint declared by the form model.
	Action string
	// ValidateURL is where the browser runtime posts edits to be re-validated.
	// Renderers omit the live validation hooks when it is empty.
	ValidateURL string
	// Values pre-populates rendered controls keyed by field name.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field name. Only fields the
	// user has touched should appear here.
	Errors map[string][]string
	// FormErrors carries messages that do not belong to a single field.
	FormErrors []string
	// CanSubmit reports whether every field currently satisfies its rules.
	// Renderers omit the submit control entirely while it is false.
	CanSubmit bool
	// HiddenFields are emitted as hidden inputs (session ids, CSRF tokens).
	HiddenFields map[string]string
	// Theme carries the resolved go-theme configuration, if any.
	Theme *theme.RendererConfig
	// Locale, Translator and OnMissing drive label and message localisation.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}
