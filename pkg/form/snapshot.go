package form

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-signupform/pkg/model"
)

// Snapshot is an immutable copy of a valid draft, taken at submit time.
type Snapshot struct {
	entries []entry
}

type entry struct {
	name  string
	typ   model.FieldType
	value string
}

func newSnapshot(form model.FormModel, values map[string]string) Snapshot {
	entries := make([]entry, 0, len(form.Fields))
	for _, field := range form.Fields {
		entries = append(entries, entry{
			name:  field.Name,
			typ:   field.Type,
			value: values[field.Name],
		})
	}
	return Snapshot{entries: entries}
}

// Fields lists field names in form order.
func (s Snapshot) Fields() []string {
	names := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		names = append(names, e.name)
	}
	return names
}

// Value returns the raw value captured for name.
func (s Snapshot) Value(name string) string {
	for _, e := range s.entries {
		if e.name == name {
			return e.value
		}
	}
	return ""
}

// Values returns a copy of the raw values.
func (s Snapshot) Values() map[string]string {
	out := make(map[string]string, len(s.entries))
	for _, e := range s.entries {
		out[e.name] = e.value
	}
	return out
}

// Typed returns the values converted to their JSON types: integers and
// numbers become numeric values, empty numeric fields become nil.
func (s Snapshot) Typed() map[string]any {
	out := make(map[string]any, len(s.entries))
	for _, e := range s.entries {
		out[e.name] = e.typed()
	}
	return out
}

func (e entry) typed() any {
	trimmed := strings.TrimSpace(e.value)
	switch e.typ {
	case model.FieldTypeInteger:
		if trimmed == "" {
			return nil
		}
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n
		}
	case model.FieldTypeNumber:
		if trimmed == "" {
			return nil
		}
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return n
		}
	case model.FieldTypeBoolean:
		if b, err := strconv.ParseBool(trimmed); err == nil {
			return b
		}
	}
	return e.value
}

// JSON serialises the snapshot as a compact object with keys in form order.
func (s Snapshot) JSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(e.name)
		if err != nil {
			return nil, err
		}
		value, err := marshal(e.typed())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IndentedJSON mirrors JSON with two-space indentation.
func (s Snapshot) IndentedJSON() ([]byte, error) {
	raw, err := s.JSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormURLEncoded serialises the raw values as an application/x-www-form-urlencoded
// body.
func (s Snapshot) FormURLEncoded() string {
	values := url.Values{}
	for _, e := range s.entries {
		values.Set(e.name, e.value)
	}
	return values.Encode()
}

func marshal(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
