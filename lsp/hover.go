package lsp

import (
	"fmt"

	"github.com/dhamidi/javamet/java/metrics"
	"github.com/dhamidi/javamet/java/syntax"
)

// hoverText finds the innermost declaration covering the position and
// renders its metrics as markdown. The syntax tree and the metrics
// tree are walked in parallel; the collector builds both in the same
// member order, so matching indexes identify the same declaration.
func hoverText(unit *syntax.CompilationUnit, root *metrics.Java, line, col int) (string, bool) {
	if unit.Module != nil && len(root.ModularUnits) > 0 {
		if unit.Module.Span.Contains(line, col) {
			return moduleSummary(root.ModularUnits[0].Module), true
		}
		return "", false
	}

	cu := collectedUnit(root)
	if cu == nil {
		return "", false
	}
	for i, t := range unit.Types {
		if i < len(cu.Types) && t.Span.Contains(line, col) {
			return typeHover(t, cu.Types[i], line, col)
		}
	}
	return "", false
}

func collectedUnit(root *metrics.Java) *metrics.CompilationUnit {
	for _, p := range root.Packages() {
		if len(p.Units) > 0 {
			return p.Units[0]
		}
	}
	return nil
}

func typeHover(t *syntax.TypeDecl, tm *metrics.Type, line, col int) (string, bool) {
	fieldIdx, methodIdx, innerIdx := 0, 0, 0
	for _, m := range t.Members {
		switch m := m.(type) {
		case *syntax.TypeDecl:
			if m.Span.Contains(line, col) && innerIdx < len(tm.Inner) {
				return typeHover(m, tm.Inner[innerIdx], line, col)
			}
			innerIdx++
		case *syntax.FieldDecl:
			count := len(m.Declarators)
			if m.Span.Contains(line, col) && fieldIdx+count <= len(tm.Fields) {
				pick := 0
				for di, d := range m.Declarators {
					if d.Span.Contains(line, col) {
						pick = di
						break
					}
				}
				return fieldSummary(tm.Fields[fieldIdx+pick]), true
			}
			fieldIdx += count
		case *syntax.MethodDecl:
			if m.Span.Contains(line, col) && methodIdx < len(tm.Methods) {
				return methodSummary(tm.Methods[methodIdx]), true
			}
			methodIdx++
		case *syntax.InitializerDecl:
			if m.Span.Contains(line, col) && methodIdx < len(tm.Methods) {
				return methodSummary(tm.Methods[methodIdx]), true
			}
			methodIdx++
		case *syntax.EnumConstant:
			withBody := len(m.Body) > 0
			if withBody {
				if m.Span.Contains(line, col) && innerIdx < len(tm.Inner) {
					return typeSummary(tm.Inner[innerIdx]), true
				}
				innerIdx++
			} else {
				if m.Span.Contains(line, col) && fieldIdx < len(tm.Fields) {
					return fieldSummary(tm.Fields[fieldIdx]), true
				}
				fieldIdx++
			}
		}
	}
	return typeSummary(tm), true
}

func typeSummary(t *metrics.Type) string {
	a := metrics.Of(t)
	return fmt.Sprintf("**%s** `%s`\n\n- types: %d\n- methods: %d\n- fields: %d\n- statements: %d\n- comments: %d",
		t.Name, t.Kind, a.Types, a.Methods, a.Fields, a.Statements, a.Comments.Total())
}

func methodSummary(m *metrics.Method) string {
	text := fmt.Sprintf("**%s** `%s`\n\n- statements: %d\n- comments: %d",
		m.Name, m.Kind, m.Statements.Count, m.Comments.Total())
	if len(m.LocalTypes) > 0 {
		text += fmt.Sprintf("\n- local types: %d", len(m.LocalTypes))
	}
	return text
}

func fieldSummary(f *metrics.Field) string {
	return fmt.Sprintf("**%s** `%s`\n\n- statements: %d\n- comments: %d",
		f.Name, f.Kind, f.Statements.Count, f.Comments.Total())
}

func moduleSummary(m *metrics.ModuleDeclaration) string {
	if m == nil {
		return ""
	}
	open := ""
	if m.Open {
		open = "open "
	}
	return fmt.Sprintf("**%smodule %s**\n\n- requires: %d\n- exports: %d\n- opens: %d\n- uses: %d\n- provides: %d\n- comments: %d",
		open, m.Name, m.Requires, m.Exports, m.Opens, m.Uses, m.Provides, m.Comments.Total())
}
