package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-signupform/pkg/model"
)

const patternTagPrefix = "signup_pattern_"

// Engine evaluates field rules through a go-playground validator instance.
// Named patterns are registered as custom validator tags. An Engine is safe
// for concurrent use once constructed.
type Engine struct {
	validate *validator.Validate
	patterns map[string]string

	mu       sync.RWMutex
	compiled map[string]*regexp.Regexp
}

// Option customises an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	matchers map[string]Matcher
}

// WithPattern registers or replaces a named pattern.
func WithPattern(name string, matcher Matcher) Option {
	return func(cfg *engineConfig) {
		name = strings.TrimSpace(name)
		if name == "" || matcher == nil {
			return
		}
		cfg.matchers[name] = matcher
	}
}

// New constructs an Engine with the email and password patterns registered.
func New(options ...Option) (*Engine, error) {
	cfg := engineConfig{
		matchers: map[string]Matcher{
			PatternEmail:    MatchEmail,
			PatternPassword: MatchPassword,
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine := &Engine{
		validate: validator.New(),
		patterns: make(map[string]string, len(cfg.matchers)),
		compiled: make(map[string]*regexp.Regexp),
	}
	for name, matcher := range cfg.matchers {
		tag := patternTagPrefix + name
		match := matcher
		fn := func(fl validator.FieldLevel) bool {
			return match(fl.Field().String())
		}
		if err := engine.validate.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("validation: register pattern %q: %w", name, err)
		}
		engine.patterns[name] = tag
	}
	return engine, nil
}

// MustNew mirrors New but panics on failure.
func MustNew(options ...Option) *Engine {
	engine, err := New(options...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Check evaluates every field of form against values. Missing entries are
// treated as empty input.
func (e *Engine) Check(form model.FormModel, values map[string]string) Errors {
	out := make(Errors)
	for _, field := range form.Fields {
		if failure := e.CheckField(field, values[field.Name]); failure != nil {
			out[field.Name] = *failure
		}
	}
	return out
}

// CheckField runs the field's rules in order and returns the first failure,
// or nil when the value is acceptable. Values are checked exactly as typed:
// whitespace counts as input for both presence and length.
func (e *Engine) CheckField(field model.Field, raw string) *Failure {
	empty := raw == ""
	for _, rule := range field.Validations {
		if rule.Kind == model.ValidationRuleRequired {
			if e.validate.Var(raw, "required") != nil {
				return failure(field, KindRequired, rule)
			}
			continue
		}
		if empty {
			// Optional fields accept empty input.
			return nil
		}

		kind, ok := e.checkRule(field, rule, raw)
		if !ok {
			return failure(field, kind, rule)
		}
	}
	return nil
}

func (e *Engine) checkRule(field model.Field, rule model.ValidationRule, raw string) (Kind, bool) {
	switch rule.Kind {
	case model.ValidationRuleMinLength:
		return KindMinLength, e.varOK(raw, "min="+rule.Params["value"])
	case model.ValidationRuleMaxLength:
		return KindMaxLength, e.varOK(raw, "max="+rule.Params["value"])
	case model.ValidationRulePattern:
		return KindPattern, e.matchPattern(rule, raw)
	case model.ValidationRuleMin:
		return KindRange, e.numberOK(field, raw, "gte="+rule.Params["value"])
	case model.ValidationRuleMax:
		return KindRange, e.numberOK(field, raw, "lte="+rule.Params["value"])
	case model.ValidationRuleRange:
		return KindRange, e.numberOK(field, raw, rangeTag(rule.Params))
	default:
		// Unknown kinds are rejected by the definition loader.
		return "", true
	}
}

func (e *Engine) varOK(value any, tag string) bool {
	return e.validate.Var(value, tag) == nil
}

func (e *Engine) numberOK(field model.Field, raw, tag string) bool {
	trimmed := strings.TrimSpace(raw)
	if field.Type == model.FieldTypeNumber {
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return false
		}
		return tag == "" || e.varOK(n, tag)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return false
	}
	return tag == "" || e.varOK(n, tag)
}

func (e *Engine) matchPattern(rule model.ValidationRule, raw string) bool {
	if name := rule.Params["name"]; name != "" {
		tag, ok := e.patterns[name]
		if !ok {
			return false
		}
		return e.varOK(raw, tag)
	}

	re, err := e.regexp(rule.Params["pattern"])
	if err != nil {
		return false
	}
	return re.MatchString(raw)
}

func (e *Engine) regexp(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, errors.New("validation: empty pattern")
	}

	e.mu.RLock()
	re, ok := e.compiled[expr]
	e.mu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("validation: compile pattern: %w", err)
	}
	e.mu.Lock()
	e.compiled[expr] = re
	e.mu.Unlock()
	return re, nil
}

// Patterns lists the registered pattern names.
func (e *Engine) Patterns() []string {
	names := make([]string, 0, len(e.patterns))
	for name := range e.patterns {
		names = append(names, name)
	}
	return sortStrings(names)
}

func rangeTag(params map[string]string) string {
	var parts []string
	if minVal := params["min"]; minVal != "" {
		parts = append(parts, "gte="+minVal)
	}
	if maxVal := params["max"]; maxVal != "" {
		parts = append(parts, "lte="+maxVal)
	}
	return strings.Join(parts, ",")
}

func failure(field model.Field, kind Kind, rule model.ValidationRule) *Failure {
	return &Failure{Field: field.Name, Kind: kind, Message: rule.Message}
}
