package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/hallgate/adminbase/internal/admin/domain"
	"github.com/hallgate/adminbase/pkg/slogx"
)

//go:embed views/*.html
var viewsFS embed.FS

// Renderer holds the parsed page templates. Each page is parsed
// together with the shared layout so a broken template fails at
// construction, not at request time.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(viewsFS, "views/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		t, err := template.ParseFS(viewsFS, "views/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", base, err)
		}
		pages[base] = t
	}
	return &Renderer{pages: pages}, nil
}

// viewData is the envelope every page template receives.
type viewData struct {
	Title        string
	AppName      string
	User         domain.User
	SignedIn     bool
	BypassActive bool
	Flashes      []Flash
	Data         any
}

// render writes the named page. Template faults become a plain 500;
// they never leak a partial page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, code int, page, title string, data any) {
	t, ok := s.Renderer.pages[page]
	if !ok {
		slogx.FromContext(r.Context()).Error("unknown view", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	st := StateFrom(r.Context())
	vd := viewData{
		Title:        title,
		AppName:      s.Settings.Value(r.Context(), domain.SettingAppName, "adminbase"),
		User:         st.User,
		SignedIn:     st.SignedIn(),
		BypassActive: st.BypassActive,
		Flashes:      append(s.popFlashes(w, r), drainInline(r)...),
		Data:         data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", vd); err != nil {
		slogx.FromContext(r.Context()).Error("render failed", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}
