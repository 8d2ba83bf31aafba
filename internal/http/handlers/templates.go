package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds the parsed page templates.
type Templates struct {
	set    *template.Template
	logger *zap.Logger
}

// NewTemplates parses the embedded pages.
func NewTemplates(logger *zap.Logger) (*Templates, error) {
	set, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{set: set, logger: logger}, nil
}

func (t *Templates) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.set.ExecuteTemplate(w, name, data); err != nil {
		t.logger.Error("render template", zap.String("template", name), zap.Error(err))
	}
}
