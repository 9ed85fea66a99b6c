package syntax

import "fmt"

// Position is a location in a source file. Line and Column are 1-based,
// Offset is a byte offset into the file.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span covers a source region from Start up to End (exclusive end offset).
type Span struct {
	Start Position
	End   Position
}

// Lines returns how many source lines the span touches.
func (s Span) Lines() int {
	return s.End.Line - s.Start.Line + 1
}

// Contains reports whether the position identified by line and column
// falls inside the span.
func (s Span) Contains(line, column int) bool {
	if line < s.Start.Line || line > s.End.Line {
		return false
	}
	if line == s.Start.Line && column < s.Start.Column {
		return false
	}
	if line == s.End.Line && column > s.End.Column {
		return false
	}
	return true
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
