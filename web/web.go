// Package web embute os templates HTML e os arquivos estáticos do site.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates interpreta todos os templates; cada página é referenciada pelo nome do arquivo
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Static retorna os arquivos servidos em /static
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
