// Package form holds the live draft behind a rendered registration form.
//
// A Form tracks the raw value of every field, which fields the user has
// touched and the current validation failure per field. Failures are computed
// eagerly but only surfaced for touched fields; overall validity ignores the
// touched state, so the submit control can be withheld before the user has
// interacted with every field. A Form is not safe for concurrent use.
package form
