// Package model defines the typed form model consumed by renderers. Builders
// reside in internal/model but return the types defined here.
//
// Each field carries its validation rules in evaluation order. The builder
// always emits the required rule first, followed by the definition's rules in
// declaration order. Rule parameters are strings so renderers can map bounds
// and patterns onto HTML attributes without type switches. The UIHints map
// surfaces renderer-facing directives such as `helpText`, `widget`,
// `inputType` and the localisation keys `labelKey`, `placeholderKey` and
// `descriptionKey`.
package model
