package views

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded stylesheet and assets under /static/.
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"dateInput": func(t time.Time) string { return t.Format("2006-01-02") },
	"dateLong":  func(t time.Time) string { return t.Format("Monday, Jan 2 2006") },
	"percent":   func(v float64) string { return fmt.Sprintf("%.0f", v) },
}).ParseFS(templatesFS, "templates/*.html"))

// Render writes the named page template. Pages are named after their file,
// e.g. "dashboard" renders templates/dashboard.html.
func Render(w http.ResponseWriter, name string, data interface{}) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return pages.ExecuteTemplate(w, name+".html", data)
}
