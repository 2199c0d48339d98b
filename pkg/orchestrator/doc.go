// Package orchestrator wires the definition loader, model builder, decorators,
// theme resolution and renderers into a single entry point.
package orchestrator
