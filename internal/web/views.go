package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

// Layout wraps every page; pages are rendered into it through {{embed}}.
const Layout = "layout"

//go:embed templates/*.html
var templateFS embed.FS

// NewViews returns the html engine over the embedded pages, named by file
// name without extension.
func NewViews() (*html.Engine, error) {
	pages, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}
	return html.NewFileSystem(http.FS(pages), ".html"), nil
}
