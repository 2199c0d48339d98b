package formdef

import (
	"embed"
	"io/fs"
)

//go:embed definitions/*.yaml
var embeddedDefinitions embed.FS

// RegistrationPath is the location of the registration form inside EmbeddedFS.
const RegistrationPath = "registration.yaml"

// EmbeddedFS returns the bundled definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefinitions, "definitions")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// Default loads the embedded registration definition.
func Default() (Definition, error) {
	return LoadFS(EmbeddedFS(), RegistrationPath)
}

// MustDefault mirrors Default but panics on failure.
func MustDefault() Definition {
	def, err := Default()
	if err != nil {
		panic(err)
	}
	return def
}
