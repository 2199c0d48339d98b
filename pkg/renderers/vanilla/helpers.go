package vanilla

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAssetKey is the theme asset key that replaces the inline default
// stylesheet with a linked one.
const StylesheetAssetKey = "vanilla.stylesheet"

func helpID(name string) string {
	return "fg-" + strings.TrimSpace(name) + "-help"
}

func stringValue(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func firstMessage(messages []string) string {
	for _, msg := range messages {
		if trimmed := strings.TrimSpace(msg); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func optionLabel(value string) string {
	if value == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(r)) + value[size:]
}

func htmlMethod(method string) (string, string) {
	upper := strings.ToUpper(strings.TrimSpace(method))
	switch upper {
	case "", "POST":
		return "post", ""
	case "GET":
		return "get", ""
	default:
		return "post", upper
	}
}

func themeData(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":     cfg.Theme,
		"variant":  cfg.Variant,
		"css_vars": cssVarsStyle(cfg.CSSVars),
	}
}

func themePartials(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil || len(cfg.Partials) == 0 {
		return nil
	}
	out := make(map[string]string, len(cfg.Partials))
	for key, value := range cfg.Partials {
		out[key] = value
	}
	return out
}

func themeAsset(cfg *theme.RendererConfig, key string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return strings.TrimSpace(cfg.AssetURL(key))
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(".signupform-form {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
