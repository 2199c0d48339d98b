package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
)

const (
	formTitleKeyHint       = "titleKey"
	formDescriptionKeyHint = "descriptionKey"
	formSubmitLabelKeyHint = "submitLabelKey"
	formSubmitLabelHint    = "submitLabel"

	fieldLabelKeyHint       = "labelKey"
	fieldDescriptionKeyHint = "descriptionKey"
	fieldPlaceholderKeyHint = "placeholderKey"
	fieldHelpTextKeyHint    = "helpTextKey"

	ruleMessageKeyParam = "messageKey"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a key needs
// translating but no Translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what to render when a key cannot be
// translated. params carries a map with the "default" fallback as its first
// element.
type MissingTranslationHandler func(locale, key string, params []any, err error) string

func missingTranslationDefault(_ string, key string, params []any, _ error) string {
	for _, param := range params {
		values, ok := param.(map[string]any)
		if !ok {
			continue
		}
		if fallback := strings.TrimSpace(anyToString(values["default"])); fallback != "" {
			return fallback
		}
	}
	return key
}

// LocalizeFormModel mutates the supplied form model in place, translating any
// configured `*Key` hints into their localized string values. Rule messages
// carrying a `messageKey` param are translated too, so validation failures
// surface in the requested locale.
//
// This is best-effort: translation failures are routed through opts.OnMissing.
func LocalizeFormModel(form *model.FormModel, opts RenderOptions) {
	if form == nil {
		return
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	localizeFormUIHints(form, opts.Locale, opts.Translator, onMissing)

	for i := range form.Fields {
		localizeField(&form.Fields[i], opts.Locale, opts.Translator, onMissing)
	}
}

func localizeFormUIHints(form *model.FormModel, locale string, t Translator, onMissing MissingTranslationHandler) {
	if form == nil || len(form.UIHints) == 0 {
		return
	}

	if key := strings.TrimSpace(form.UIHints[formTitleKeyHint]); key != "" {
		form.Title = translate(locale, key, strings.TrimSpace(form.Title), t, onMissing)
	}
	if key := strings.TrimSpace(form.UIHints[formDescriptionKeyHint]); key != "" {
		form.Description = translate(locale, key, strings.TrimSpace(form.Description), t, onMissing)
	}
	if key := strings.TrimSpace(form.UIHints[formSubmitLabelKeyHint]); key != "" {
		form.UIHints[formSubmitLabelHint] = translate(locale, key, strings.TrimSpace(form.UIHints[formSubmitLabelHint]), t, onMissing)
	}
}

func localizeField(field *model.Field, locale string, t Translator, onMissing MissingTranslationHandler) {
	if field == nil {
		return
	}

	if key := strings.TrimSpace(mapString(field.UIHints, fieldLabelKeyHint)); key != "" {
		field.Label = translate(locale, key, strings.TrimSpace(field.Label), t, onMissing)
	}
	if key := strings.TrimSpace(mapString(field.UIHints, fieldDescriptionKeyHint)); key != "" {
		field.Description = translate(locale, key, strings.TrimSpace(field.Description), t, onMissing)
	}
	if key := strings.TrimSpace(mapString(field.UIHints, fieldPlaceholderKeyHint)); key != "" {
		field.Placeholder = translate(locale, key, strings.TrimSpace(field.Placeholder), t, onMissing)
	}
	if key := strings.TrimSpace(mapString(field.UIHints, fieldHelpTextKeyHint)); key != "" {
		field.UIHints = ensureMap(field.UIHints)
		field.UIHints["helpText"] = translate(locale, key, strings.TrimSpace(field.UIHints["helpText"]), t, onMissing)
	}

	if len(field.Validations) == 0 {
		return
	}
	rules := make([]model.ValidationRule, len(field.Validations))
	copy(rules, field.Validations)
	for i := range rules {
		if key := strings.TrimSpace(mapString(rules[i].Params, ruleMessageKeyParam)); key != "" {
			rules[i].Message = translate(locale, key, strings.TrimSpace(rules[i].Message), t, onMissing)
		}
	}
	field.Validations = rules
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		if onMissing != nil {
			return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
		}
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return key
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}

	if onMissing != nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

func anyToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func ensureMap(in map[string]string) map[string]string {
	if in != nil {
		return in
	}
	return make(map[string]string)
}

func mapString(values map[string]string, key string) string {
	if values == nil || key == "" {
		return ""
	}
	return values[key]
}
