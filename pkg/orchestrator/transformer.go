package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"

	"github.com/goliatone/go-signupform/pkg/model"
)

// Transformer rewrites the built model before decorators and renderers see it.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc lets a plain function act as a Transformer.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// Preset is a declarative patch over form copy and hints:
//
//	{
//	  "title": "Join us",
//	  "uiHints": {"submitLabel": "Create account"},
//	  "fields": {"username": {"label": "Handle"}}
//	}
//
// Empty strings leave the target untouched; maps are merged key by key.
type Preset struct {
	Title    string                 `json:"title"`
	Metadata map[string]string      `json:"metadata"`
	UIHints  map[string]string      `json:"uiHints"`
	Fields   map[string]FieldPreset `json:"fields"`
}

type FieldPreset struct {
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Placeholder string            `json:"placeholder"`
	Metadata    map[string]string `json:"metadata"`
	UIHints     map[string]string `json:"uiHints"`
}

// JSONPresetTransformer applies a Preset decoded from JSON. Unknown keys
// and unknown field names are errors so typos surface early.
type JSONPresetTransformer struct {
	preset Preset
}

func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("preset: empty document")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var preset Preset
	if err := dec.Decode(&preset); err != nil {
		return nil, fmt.Errorf("preset: decode: %w", err)
	}
	return &JSONPresetTransformer{preset: preset}, nil
}

// NewJSONPresetTransformerFromFS reads the preset at name inside fsys.
func NewJSONPresetTransformerFromFS(fsys fs.FS, name string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset: nil filesystem")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	return NewJSONPresetTransformer(data)
}

func (t *JSONPresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset: nil form model")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p := t.preset
	setIfNonEmpty(&form.Title, p.Title)
	form.Metadata = mergeInto(form.Metadata, p.Metadata)
	form.UIHints = mergeInto(form.UIHints, p.UIHints)

	for name, patch := range p.Fields {
		idx := fieldIndex(form.Fields, name)
		if idx < 0 {
			return fmt.Errorf("preset: unknown field %q", name)
		}
		f := &form.Fields[idx]
		setIfNonEmpty(&f.Label, patch.Label)
		setIfNonEmpty(&f.Description, patch.Description)
		setIfNonEmpty(&f.Placeholder, patch.Placeholder)
		f.Metadata = mergeInto(f.Metadata, patch.Metadata)
		f.UIHints = mergeInto(f.UIHints, patch.UIHints)
	}
	return nil
}

func fieldIndex(fields []model.Field, name string) int {
	for i := range fields {
		if fields[i].Name == name {
			return i
		}
	}
	return -1
}

func setIfNonEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func mergeInto(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	maps.Copy(dst, src)
	return dst
}
