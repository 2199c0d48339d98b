package validation

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-signupform/pkg/formdef"
	"github.com/goliatone/go-signupform/pkg/model"
)

// DefinitionIssue represents a definition problem with optional location
// metadata.
type DefinitionIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// DefinitionResult captures lint outcomes for a definition document.
type DefinitionResult struct {
	Valid  bool              `json:"valid"`
	Issues []DefinitionIssue `json:"issues,omitempty"`
}

var fieldRefPattern = regexp.MustCompile(`field "([^"]+)"`)

// ValidateDefinition loads raw as a definition and checks that every pattern
// rule references a pattern the engine knows or compiles as RE2.
func (e *Engine) ValidateDefinition(raw []byte, name string) DefinitionResult {
	result := DefinitionResult{Valid: true}

	def, err := formdef.Load(raw, name)
	if err != nil {
		result.Valid = false
		result.Issues = []DefinitionIssue{issueFromError(err)}
		return result
	}

	form, err := model.NewBuilder().Build(def)
	if err != nil {
		result.Valid = false
		result.Issues = []DefinitionIssue{issueFromError(err)}
		return result
	}

	for _, field := range form.Fields {
		for _, rule := range field.Validations {
			if rule.Kind != model.ValidationRulePattern {
				continue
			}
			if patternName := rule.Params["name"]; patternName != "" {
				if _, ok := e.patterns[patternName]; !ok {
					result.Issues = append(result.Issues, DefinitionIssue{
						Field:   field.Name,
						Message: "unknown pattern " + patternName,
					})
				}
				continue
			}
			if _, err := e.regexp(rule.Params["pattern"]); err != nil {
				result.Issues = append(result.Issues, DefinitionIssue{
					Field:   field.Name,
					Message: strings.TrimPrefix(err.Error(), "validation: "),
				})
			}
		}
	}
	result.Valid = len(result.Issues) == 0
	return result
}

func issueFromError(err error) DefinitionIssue {
	if err == nil {
		return DefinitionIssue{Message: "unknown error"}
	}

	msg := strings.TrimSpace(err.Error())
	var field string
	if match := fieldRefPattern.FindStringSubmatch(msg); len(match) == 2 {
		field = match[1]
	}
	msg = strings.TrimPrefix(msg, "model builder: invalid definition: ")
	msg = strings.TrimPrefix(msg, "formdef: ")

	return DefinitionIssue{
		Field:   field,
		Message: msg,
	}
}
