package components

// Canonical component names used by the vanilla renderer and default registry.
// They match the widget names resolved by pkg/widgets.
const (
	NameInput    = "input"
	NameSelect   = "select"
	NamePassword = "password"
	NameEmail    = "email"
	NameNumber   = "number"
	NameCheckbox = "checkbox"
)
