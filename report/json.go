package report

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javamet/java/metrics"
)

type JSONEncoder struct {
	w    io.Writer
	root *metrics.Java
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(root *metrics.Java) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(Build(e.root), "", "  ")
}
