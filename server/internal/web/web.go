package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/launchdash/launchdash/server/internal/api"
)

// Title is the dashboard heading.
const Title = "SpaceX Launch Records Dashboard"

//go:embed page.html
var pageHTML string

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	Title   string
	Options api.OptionsResponse
}

// Handler serves the dashboard page at "/".
type Handler struct {
	page []byte
}

// New renders the page once for opts. The dataset never changes after
// startup, so the markup is fixed for the life of the process.
func New(opts api.OptionsResponse) (*Handler, error) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, pageData{Title: Title, Options: opts}); err != nil {
		return nil, fmt.Errorf("web: render page: %w", err)
	}
	return &Handler{page: buf.Bytes()}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		if _, err := w.Write(h.page); err != nil {
			slog.Debug("web: write page failed", "err", err)
		}
	}
}
