package web

import (
	"embed"
	"io/fs"
)

//go:embed templates
var content embed.FS

// TemplatesFS returns the view templates file system.
func TemplatesFS() (fs.FS, error) {
	return fs.Sub(content, "templates")
}
