package vanilla

import (
	"embed"
	"io/fs"
)

// Asset file names inside AssetsFS.
const (
	StylesheetName    = "signupform-vanilla.css"
	RuntimeScriptName = "signupform-runtime.js"
)

var (
	//go:embed templates/*.tmpl templates/components/*.tmpl
	templateFiles embed.FS

	//go:embed assets/*
	assetFiles embed.FS

	assets = mustSub(assetFiles, "assets")
)

// TemplatesFS holds form.tmpl, the actions and result partials and the
// per-component templates under components/.
func TemplatesFS() fs.FS { return templateFiles }

// AssetsFS holds the stylesheet and the live validation runtime at its root,
// ready for http.FileServerFS.
func AssetsFS() fs.FS { return assets }

func defaultStylesheet() string    { return assetText(StylesheetName) }
func defaultRuntimeScript() string { return assetText(RuntimeScriptName) }

func assetText(name string) string {
	data, err := fs.ReadFile(assets, name)
	if err != nil {
		return ""
	}
	return string(data)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
