package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*.css
var embeddedAssets embed.FS

// StylesheetName is the file served under the assets route.
const StylesheetName = "formdeck.css"

// TemplatesFS exposes the embedded template bundle for consumers that want
// the built-in page rendering out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded stylesheet bundle so callers can serve it
// over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// Should never happen, but fall back to the raw FS so assets remain
		// usable.
		return embeddedAssets
	}
	return sub
}
