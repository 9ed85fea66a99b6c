package report

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/dhamidi/javamet/java/metrics"
)

//go:embed templates/report.html.tmpl
var htmlFS embed.FS

var htmlTmpl = template.Must(template.New("report.html.tmpl").ParseFS(htmlFS, "templates/report.html.tmpl"))

// HTMLEncoder renders a self-contained HTML page.
type HTMLEncoder struct {
	w    io.Writer
	root *metrics.Java
}

func NewHTMLEncoder(w io.Writer) *HTMLEncoder {
	return &HTMLEncoder{w: w}
}

func (e *HTMLEncoder) Encode(root *metrics.Java) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *HTMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, Build(e.root)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
