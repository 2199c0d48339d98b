// Package openapi describes a form's submission endpoint as an OpenAPI 3
// document, so API clients can post the same payload the form produces.
package openapi
