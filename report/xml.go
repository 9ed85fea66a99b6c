package report

import (
	"encoding/xml"
	"io"

	"github.com/dhamidi/javamet/java/metrics"
)

type XMLEncoder struct {
	w    io.Writer
	root *metrics.Java
}

func NewXMLEncoder(w io.Writer) *XMLEncoder {
	return &XMLEncoder{w: w}
}

func (e *XMLEncoder) Encode(root *metrics.Java) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *XMLEncoder) MarshalText() ([]byte, error) {
	body, err := xml.MarshalIndent(Build(e.root), "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
