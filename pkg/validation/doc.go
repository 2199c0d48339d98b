// Package validation evaluates the rules attached to form model fields.
//
// Rules run in the order the model lists them and the first failing rule wins,
// so a field reports at most one Failure at a time. Empty values on optional
// fields pass every rule. Failures are plain values: the engine never returns
// an error for user input, only for misconfigured rules.
package validation
