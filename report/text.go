package report

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dhamidi/javamet/java/metrics"
)

// TextEncoder renders a per-package summary table followed by grand
// totals, suitable for terminals.
type TextEncoder struct {
	w    io.Writer
	root *metrics.Java
}

func NewTextEncoder(w io.Writer) *TextEncoder {
	return &TextEncoder{w: w}
}

func (e *TextEncoder) Encode(root *metrics.Java) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	v := Build(e.root)
	var buf bytes.Buffer

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PACKAGE\tUNITS\tTYPES\tMETHODS\tFIELDS\tSTMTS\tCOMMENTS")
	for _, p := range v.Packages {
		t := p.Totals
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			p.DisplayName(), t.CompilationUnits, t.Types, t.Methods,
			t.Fields, t.Statements, t.Comments.Total())
	}
	t := v.Totals
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\t%d\t%d\t%d\n",
		t.CompilationUnits, t.Types, t.Methods, t.Fields,
		t.Statements, t.Comments.Total())
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	c := t.Comments
	fmt.Fprintf(&buf, "\nComments: %d line (%d chars), %d block (%d lines, %d chars), %d doc (%d lines, %d chars)\n",
		c.Line.Count, c.Line.Length,
		c.Block.Count, c.Block.Lines, c.Block.Length,
		c.Doc.Count, c.Doc.Lines, c.Doc.Length)

	if len(v.ModularUnits) > 0 {
		fmt.Fprintln(&buf)
		mtw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(mtw, "MODULE\tOPEN\tREQUIRES\tEXPORTS\tOPENS\tUSES\tPROVIDES")
		for _, mu := range v.ModularUnits {
			m := mu.Module
			if m == nil {
				continue
			}
			open := ""
			if m.Open {
				open = "open"
			}
			fmt.Fprintf(mtw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
				m.Name, open, m.Requires, m.Exports, m.Opens, m.Uses, m.Provides)
		}
		if err := mtw.Flush(); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}
