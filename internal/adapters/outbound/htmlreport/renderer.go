package htmlreport

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/abdidvp/integrity/internal/domain"
)

//go:embed report.html.tmpl
var reportTemplate string

// Renderer implements domain.DocumentRenderer as a self-contained HTML page
// suitable for a mail body. Check descriptions are Markdown.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// New parses the embedded template. It panics only if the template itself is
// broken, which the tests catch.
func New() *Renderer {
	r := &Renderer{md: goldmark.New()}
	r.tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
		"markdown": r.markdown,
	}).Parse(reportTemplate))
	return r
}

// Render executes the template for doc.
func (r *Renderer) Render(doc *domain.Document) (string, error) {
	if doc == nil {
		return "", errors.New("rendering report: nil document")
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}

// markdown converts a description to HTML. Raw HTML in the source is
// dropped by goldmark's default renderer.
func (r *Renderer) markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>")
	}
	return template.HTML(strings.TrimSpace(buf.String()))
}
