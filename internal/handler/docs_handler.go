package handler

import (
	"net/http"
	"regexp"
)

// serverURL matches the servers entry of the embedded document, which is
// written against the default /api prefix.
var serverURL = regexp.MustCompile(`(?m)^([ \t]*- url:[ \t]*)/api[ \t]*$`)

type DocsHandler struct {
	document []byte
}

// NewDocsHandler rewrites the document's server URL to apiPrefix so the
// published paths match the mounted routes.
func NewDocsHandler(document []byte, apiPrefix string) *DocsHandler {
	if apiPrefix != "" && len(document) > 0 {
		document = serverURL.ReplaceAllFunc(document, func(line []byte) []byte {
			m := serverURL.FindSubmatch(line)
			return append(append([]byte(nil), m[1]...), apiPrefix...)
		})
	}
	return &DocsHandler{document: document}
}

func (h *DocsHandler) OpenAPI(w http.ResponseWriter, _ *http.Request) {
	if h == nil || len(h.document) == 0 {
		http.Error(w, "openapi document not configured", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.document)
}

func (h *DocsHandler) SwaggerUI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Security-Policy", "default-src 'self'; connect-src 'self' https://unpkg.com; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data: https://validator.swagger.io")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Auth System API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
        persistAuthorization: true
      });
    </script>
  </body>
</html>`))
}
