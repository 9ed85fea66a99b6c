// Package report renders a metrics tree as plain text, JSON, XML, or a
// standalone HTML page.
package report

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/javamet/java/metrics"
)

// Encoder renders one metrics tree to its writer.
type Encoder interface {
	encoding.TextMarshaler
	Encode(root *metrics.Java) error
}

// New returns the encoder for a format name. The empty name means text.
func New(format string, w io.Writer) (Encoder, error) {
	switch format {
	case "", "text":
		return NewTextEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "xml":
		return NewXMLEncoder(w), nil
	case "html":
		return NewHTMLEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{"text", "json", "xml", "html"}
}
