package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-signupform/pkg/model"
	"github.com/goliatone/go-signupform/pkg/render"
	"github.com/goliatone/go-signupform/pkg/validation"
)

var (
	// ErrUnknownField is returned when a value targets a field the model does
	// not declare.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalid is returned by Submit while any field fails its rules.
	ErrInvalid = errors.New("form: values do not satisfy every rule")
)

// Checker evaluates a single field value. *validation.Engine satisfies it.
type Checker interface {
	CheckField(field model.Field, raw string) *validation.Failure
}

// Form is the mutable draft for one mounted form.
type Form struct {
	model   model.FormModel
	checker Checker

	values  map[string]string
	touched map[string]bool
	errors  validation.Errors
}

// New returns an empty draft seeded with field defaults. Every field starts
// untouched.
func New(form model.FormModel, checker Checker) *Form {
	f := &Form{
		model:   form,
		checker: checker,
		values:  make(map[string]string, len(form.Fields)),
		touched: make(map[string]bool, len(form.Fields)),
		errors:  make(validation.Errors),
	}
	for _, field := range form.Fields {
		if field.Default != nil {
			f.values[field.Name] = fmt.Sprint(field.Default)
		}
		f.check(field)
	}
	return f
}

// Model returns the form model backing the draft.
func (f *Form) Model() model.FormModel {
	return f.model
}

// Set stores raw for name, marks the field touched and re-evaluates only that
// field.
func (f *Form) Set(name, raw string) error {
	field, ok := f.model.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.values[name] = raw
	f.touched[name] = true
	f.check(field)
	return nil
}

// Update applies several values at once. Unknown names are rejected before
// any value is stored.
func (f *Form) Update(values map[string]string) error {
	for name := range values {
		if _, ok := f.model.Field(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}
	for _, name := range f.model.FieldNames() {
		if raw, ok := values[name]; ok {
			if err := f.Set(name, raw); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Form) check(field model.Field) {
	if f.checker == nil {
		delete(f.errors, field.Name)
		return
	}
	if failure := f.checker.CheckField(field, f.values[field.Name]); failure != nil {
		f.errors[field.Name] = *failure
		return
	}
	delete(f.errors, field.Name)
}

// Value returns the raw value for name.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of every stored value.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for name, value := range f.values {
		out[name] = value
	}
	return out
}

// Touched reports whether the user has edited name.
func (f *Form) Touched(name string) bool {
	return f.touched[name]
}

// TouchAll marks every field touched so all current failures become visible.
func (f *Form) TouchAll() {
	for _, name := range f.model.FieldNames() {
		f.touched[name] = true
	}
}

// Error returns the visible failure for name: nil when the field passes or
// has not been touched yet.
func (f *Form) Error(name string) *validation.Failure {
	if !f.touched[name] {
		return nil
	}
	failure, ok := f.errors[name]
	if !ok {
		return nil
	}
	return &failure
}

// Errors returns the failures of touched fields.
func (f *Form) Errors() validation.Errors {
	out := make(validation.Errors)
	for name, failure := range f.errors {
		if f.touched[name] {
			out[name] = failure
		}
	}
	return out
}

// AllErrors returns every current failure regardless of touched state.
func (f *Form) AllErrors() validation.Errors {
	out := make(validation.Errors, len(f.errors))
	for name, failure := range f.errors {
		out[name] = failure
	}
	return out
}

// FieldValid reports whether name currently satisfies its rules.
func (f *Form) FieldValid(name string) bool {
	_, failing := f.errors[name]
	return !failing
}

// Valid reports whether every field satisfies its rules.
func (f *Form) Valid() bool {
	return len(f.errors) == 0
}

// CanSubmit reports whether the submit control should be offered.
func (f *Form) CanSubmit() bool {
	return f.Valid()
}

// Submit returns a read-only snapshot of the draft. While any field fails,
// every field is marked touched and ErrInvalid is returned.
func (f *Form) Submit() (Snapshot, error) {
	if !f.Valid() {
		f.TouchAll()
		return Snapshot{}, ErrInvalid
	}
	return newSnapshot(f.model, f.values), nil
}

// RenderOptions describes the draft for renderers. Extra options are applied
// afterwards so callers can add hidden fields, themes or URLs.
func (f *Form) RenderOptions(extra ...func(*render.RenderOptions)) render.RenderOptions {
	values := make(map[string]any, len(f.values))
	for name, value := range f.values {
		values[name] = value
	}

	opts := render.RenderOptions{
		Values:    values,
		Errors:    f.Errors().Messages(),
		CanSubmit: f.CanSubmit(),
	}
	for _, fn := range extra {
		if fn != nil {
			fn(&opts)
		}
	}
	return opts
}
