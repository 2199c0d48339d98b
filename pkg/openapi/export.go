package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/validation"
)

const (
	openAPIVersion  = "3.0.3"
	defaultVersion  = "1.0.0"
	patternNameExt  = "x-pattern-name"
	messageExt      = "x-message"
	jsonContentType = "application/json"
	formContentType = "application/x-www-form-urlencoded"
)

// Option customises the exported document.
type Option func(*config)

type config struct {
	title     string
	version   string
	serverURL string
}

// WithTitle overrides info.title. Defaults to the form title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = strings.TrimSpace(title)
	}
}

// WithVersion overrides info.version.
func WithVersion(version string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(version); trimmed != "" {
			cfg.version = trimmed
		}
	}
}

// WithServerURL adds a server entry.
func WithServerURL(url string) Option {
	return func(cfg *config) {
		cfg.serverURL = strings.TrimSpace(url)
	}
}

// Export builds a document with one operation for the form endpoint. The
// request body mirrors the serialized snapshot; field rules become schema
// constraints. The document is validated before it is returned.
func Export(ctx context.Context, form model.FormModel, options ...Option) (*openapi3.T, error) {
	if strings.TrimSpace(form.Endpoint) == "" {
		return nil, errors.New("openapi: form endpoint is required")
	}

	cfg := config{title: form.Title, version: defaultVersion}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.title == "" {
		cfg.title = form.ID
	}

	body := ValuesSchema(form)
	operation := openapi3.NewOperation()
	operation.OperationID = form.ID
	operation.Summary = cfg.title
	operation.Description = form.Description
	operation.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithSchema(body, []string{formContentType, jsonContentType})),
	}
	operation.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("Submission accepted; message carries the serialized values.").
				WithJSONSchema(openapi3.NewObjectSchema().WithProperty("message", openapi3.NewStringSchema())),
		}),
		openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().
				WithDescription("One or more fields failed their rules.").
				WithJSONSchema(errorsSchema()),
		}),
	)

	item := &openapi3.PathItem{}
	method := strings.ToUpper(strings.TrimSpace(form.Method))
	if method == "" {
		method = http.MethodPost
	}
	item.SetOperation(method, operation)

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:       cfg.title,
			Version:     cfg.version,
			Description: form.Description,
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(form.Endpoint, item)),
	}
	if cfg.serverURL != "" {
		doc.Servers = openapi3.Servers{{URL: cfg.serverURL}}
	}

	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// JSON exports the document and encodes it.
func JSON(ctx context.Context, form model.FormModel, options ...Option) ([]byte, error) {
	doc, err := Export(ctx, form, options...)
	if err != nil {
		return nil, err
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: encode document: %w", err)
	}
	return raw, nil
}

// ValuesSchema describes the submitted values: one property per field, in
// form order, with rule constraints applied.
func ValuesSchema(form model.FormModel) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	var required []string
	for _, field := range form.Fields {
		schema.WithProperty(field.Name, fieldSchema(field))
		if field.Required {
			required = append(required, field.Name)
		}
	}
	schema.Required = required
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeInteger:
		schema = openapi3.NewIntegerSchema()
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
	case model.FieldTypeBoolean:
		schema = openapi3.NewBoolSchema()
	default:
		schema = openapi3.NewStringSchema()
	}

	schema.Title = field.Label
	schema.Description = field.Description
	if field.Format != "" && field.Type == model.FieldTypeString {
		schema.Format = field.Format
	}
	if !field.Required && field.Type != model.FieldTypeString {
		schema.Nullable = true
	}
	if len(field.Enum) > 0 {
		schema.WithEnum(field.Enum...)
	}
	if field.Default != nil {
		schema.WithDefault(field.Default)
	}

	for _, rule := range field.Validations {
		applyRule(schema, rule)
	}
	return schema
}

func applyRule(schema *openapi3.Schema, rule model.ValidationRule) {
	switch rule.Kind {
	case model.ValidationRuleMinLength:
		if n, ok := parseUint(rule.Params["value"]); ok {
			schema.WithMinLength(int64(n))
		}
	case model.ValidationRuleMaxLength:
		if n, ok := parseUint(rule.Params["value"]); ok {
			schema.WithMaxLength(int64(n))
		}
	case model.ValidationRuleMin:
		if v, ok := parseFloat(rule.Params["value"]); ok {
			schema.WithMin(v)
		}
	case model.ValidationRuleMax:
		if v, ok := parseFloat(rule.Params["value"]); ok {
			schema.WithMax(v)
		}
	case model.ValidationRuleRange:
		if v, ok := parseFloat(rule.Params["min"]); ok {
			schema.WithMin(v)
		}
		if v, ok := parseFloat(rule.Params["max"]); ok {
			schema.WithMax(v)
		}
	case model.ValidationRulePattern:
		applyPattern(schema, rule)
	default:
		return
	}

	if rule.Message != "" && rule.Kind != model.ValidationRulePattern {
		setExtension(schema, messageExt+"-"+rule.Kind, rule.Message)
	}
}

// Named patterns are exported as a Go-compatible regexp when one exists. The
// password policy needs lookaheads, so it is only referenced by name.
func applyPattern(schema *openapi3.Schema, rule model.ValidationRule) {
	if expr := strings.TrimSpace(rule.Params["pattern"]); expr != "" {
		schema.WithPattern(expr)
	}
	if name := strings.TrimSpace(rule.Params["name"]); name != "" {
		setExtension(schema, patternNameExt, name)
		if name == validation.PatternEmail {
			schema.WithPattern(validation.EmailPattern.String())
		}
	}
	if rule.Message != "" {
		setExtension(schema, messageExt+"-pattern", rule.Message)
	}
}

func errorsSchema() *openapi3.Schema {
	messages := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	return openapi3.NewObjectSchema().
		WithProperty("errors", openapi3.NewObjectSchema().WithAdditionalProperties(messages)).
		WithProperty("canSubmit", openapi3.NewBoolSchema())
}

func setExtension(schema *openapi3.Schema, key string, value any) {
	if schema.Extensions == nil {
		schema.Extensions = make(map[string]any)
	}
	schema.Extensions[key] = value
}

func parseUint(raw string) (uint64, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	return n, err == nil
}

func parseFloat(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return v, err == nil
}
