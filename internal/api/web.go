package api

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed web/templates/index.html web/static
var webFiles embed.FS

var indexTemplate = template.Must(template.ParseFS(webFiles, "web/templates/index.html"))

var staticFiles = mustSub(webFiles, "web/static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
