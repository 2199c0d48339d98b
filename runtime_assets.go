package signupform

import (
	"io/fs"

	"github.com/goliatone/go-signupform/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and browser runtime used by the
// vanilla renderer so Go applications can serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(signupform.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
