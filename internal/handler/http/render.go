package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/internal/validators"
	"github.com/MKhiriev/go-course-catalog/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{
	"home",
	"login",
	"user_form",
	"users",
	"user",
	"courses",
	"course",
	"course_form",
	"error",
}

var templateFuncs = template.FuncMap{
	"fieldErrors": func(errs validators.FieldErrors, field string) []string {
		return errs.Messages(field)
	},
	"isAdmin": func(p *models.Principal) bool {
		return p != nil && p.IsAdmin()
	},
	"hours": func(h *int) string {
		if h == nil {
			return ""
		}
		return strconv.Itoa(*h)
	},
	"fees": func(f *float64) string {
		if f == nil {
			return ""
		}
		return strconv.FormatFloat(*f, 'f', 2, 64)
	},
	"date": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"dateOr": func(t *time.Time, fallback string) string {
		if t == nil {
			return fallback
		}
		return t.Format("2006-01-02 15:04")
	},
}

type views struct {
	pages map[string]*template.Template
}

func loadViews() (*views, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}
	return &views{pages: pages}, nil
}

// page is the data every template receives.
type page struct {
	Title     string
	Principal *models.Principal
	CSRFToken string
	Flash     map[string]string
	Errors    validators.FieldErrors
	Data      any
}

// render writes the named page with status. Pending flash attributes of the
// session are delivered to this response and discarded.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any, errs validators.FieldErrors) {
	log := logger.FromRequest(r)

	p := page{Title: title, Errors: errs, Data: data}
	if s := sessionFrom(r.Context()); s != nil {
		p.Principal = s.Principal()
		p.CSRFToken = s.CSRFToken()
		p.Flash = s.TakeFlashes()
	}

	t, ok := h.views.pages[name]
	if !ok {
		log.Error().Str("page", name).Msg("unknown page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		log.Err(err).Str("page", name).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		buf.WriteTo(w)
	}
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
