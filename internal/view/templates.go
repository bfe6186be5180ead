package view

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"regexp"

	"github.com/ramatoys/storefront/internal/catalog"
	"github.com/ramatoys/storefront/internal/shared"
	"github.com/ramatoys/storefront/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Admin       bool
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatPrice":   catalog.FormatPrice,
		"categoryLabel": catalog.CategoryLabel,
		"stars":         stars,
		"imageSrc":      imageSrc,
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes the named template and writes it with status. Nothing is
// written when execution fails.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData, status int) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

var inlineImage = regexp.MustCompile(`^data:image/[a-zA-Z0-9.+-]+;base64,[A-Za-z0-9+/]*={0,2}$`)

// imageSrc lets base64 image data URIs through the URL sanitizer. Any other
// value is returned as a plain string and filtered as usual.
func imageSrc(ref string) any {
	if inlineImage.MatchString(ref) {
		return template.URL(ref)
	}
	return ref
}

// stars splits a rating into filled and empty star flags out of five.
func stars(rating float64) []bool {
	filled := int(math.Floor(rating))
	out := make([]bool, 5)
	for i := range out {
		out[i] = i < filled
	}
	return out
}
