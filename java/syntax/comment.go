package syntax

import (
	"strings"
	"unicode/utf8"
)

// CommentKind distinguishes the three comment forms of the language.
type CommentKind int

const (
	LineComment CommentKind = iota
	BlockComment
	DocComment
)

func (k CommentKind) String() string {
	switch k {
	case LineComment:
		return "line"
	case BlockComment:
		return "block"
	case DocComment:
		return "doc"
	}
	return "unknown"
}

// Comment is a single source comment. Text holds the raw source text
// including delimiters.
type Comment struct {
	Kind CommentKind
	Span Span
	Text string
}

// Lines returns the number of source lines the comment spans.
func (c *Comment) Lines() int {
	return c.Span.Lines()
}

// ContentLength measures the comment's content: delimiters removed, each
// line trimmed of surrounding whitespace and leading asterisks, and the
// remaining characters counted.
func (c *Comment) ContentLength() int {
	body := c.Text
	switch c.Kind {
	case LineComment:
		body = strings.TrimPrefix(body, "//")
	case DocComment:
		body = strings.TrimPrefix(body, "/**")
		body = strings.TrimSuffix(body, "*/")
	case BlockComment:
		body = strings.TrimPrefix(body, "/*")
		body = strings.TrimSuffix(body, "*/")
	}

	total := 0
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*")
		line = strings.TrimSpace(line)
		total += utf8.RuneCountInString(line)
	}
	return total
}

// classifyComment derives the kind from the raw text. A doc comment opens
// with "/**" and has content of its own; the degenerate "/**/" is a plain
// block comment.
func classifyComment(text string) CommentKind {
	switch {
	case strings.HasPrefix(text, "//"):
		return LineComment
	case strings.HasPrefix(text, "/**") && len(text) >= 5:
		return DocComment
	default:
		return BlockComment
	}
}
