// Package views HTML şablonlarını binary'ye gömer.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts/*.html public/*.html errors/*.html
var files embed.FS

// NewEngine gömülü şablonlardan html motorunu oluşturur.
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(files), ".html")
}
