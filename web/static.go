package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

//go:embed all:static
var staticFiles embed.FS

// Only the widget's own script and stylesheet are served.
var assetTypes = map[string]string{
	".js":  "application/javascript",
	".css": "text/css",
}

// SetupStaticFiles serves the embedded widget assets under /static/.
// Pages reference them with a ?v= version, so responses are cached hard.
func SetupStaticFiles(s *rweb.Server) {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.LogErr(err, "failed to open embedded static directory")
		return
	}

	s.Get("/static/*", func(c rweb.Context) error {
		name := strings.TrimPrefix(c.Request().Path(), "/static/")

		contentType, ok := assetTypes[path.Ext(name)]
		if !ok {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		content, err := fs.ReadFile(assets, name)
		if err != nil {
			c.SetStatus(http.StatusNotFound)
			return nil
		}

		c.Response().SetHeader("Content-Type", contentType)
		c.Response().SetHeader("Cache-Control", "public, max-age=31536000")
		return c.Bytes(content)
	})
}
