package signupform

import (
	"io/fs"

	"github.com/goliatone/go-signupform/pkg/formdef"
	"github.com/goliatone/go-signupform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedDefinitions exposes the bundled form definitions.
func EmbeddedDefinitions() fs.FS {
	return formdef.EmbeddedFS()
}
