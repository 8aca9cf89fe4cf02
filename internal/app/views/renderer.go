// Package views renders the console's HTML pages from embedded templates.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names, as passed to gin's c.HTML.
const (
	PageLogin        = "login"
	PageSignup       = "signup"
	PageDashboard    = "dashboard"
	PageStudents     = "students"
	PageStudentForm  = "student_form"
	PageStudentStale = "student_loading"
)

// shells maps each page onto the frame it is drawn in.
var shells = map[string]string{
	PageLogin:        "auth",
	PageSignup:       "auth",
	PageDashboard:    "layout",
	PageStudents:     "layout",
	PageStudentForm:  "layout",
	PageStudentStale: "layout",
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"add":   func(a, b int) int { return a + b },
	"sub":   func(a, b int) int { return a - b },
	"percentOf": func(v, max int) int {
		if max <= 0 {
			return 0
		}
		return v * 100 / max
	},
}

// Renderer implements gin's render.HTMLRender over the embedded templates.
type Renderer struct {
	pages   map[string]*template.Template
	missing *template.Template
}

// NewRenderer parses every page together with its frame.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		pages:   make(map[string]*template.Template, len(shells)),
		missing: template.Must(template.New("missing").Parse(`template {{.}} not found`)),
	}
	for page, shell := range shells {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/"+shell+".html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Instance implements render.HTMLRender
func (r *Renderer) Instance(name string, data interface{}) render.Render {
	t, ok := r.pages[name]
	if !ok {
		return render.HTML{Template: r.missing, Data: name}
	}
	return render.HTML{Template: t, Name: shells[name], Data: data}
}
