package metrics

import (
	"fmt"

	"github.com/dhamidi/javamet/java/syntax"
)

// walkStmts counts the statements of a method body into m and collects
// statement comments. parent is the declaration holding the body's
// orphan comments; local and anonymous types found along the way claim
// from it before becoming local types of m.
func (c *Collector) walkStmts(m *Method, parent *syntax.Node, stmts []syntax.Stmt) {
	for _, s := range stmts {
		c.walkStmt(m, parent, s)
	}
}

// walkStmt applies the counting table for one statement. Wrappers
// contribute nothing themselves: blocks, empty statements, and labels
// are transparent. An unknown variant is a logic error, not something
// to skip, because skipping would silently undercount.
func (c *Collector) walkStmt(m *Method, parent *syntax.Node, s syntax.Stmt) {
	if lt, ok := s.(*syntax.LocalTypeStmt); ok {
		m.LocalTypes = append(m.LocalTypes, c.typeMetrics(lt.Decl, parent))
		return
	}

	n := s.Info()
	c.take(&m.Comments, n.Comment)
	for _, a := range n.Anon {
		m.LocalTypes = append(m.LocalTypes, c.anonMetrics(a))
	}

	switch s := s.(type) {
	case *syntax.Block:
		c.walkStmts(m, parent, s.Stmts)
	case *syntax.EmptyStmt:
	case *syntax.LabeledStmt:
		if s.Stmt != nil {
			c.walkStmt(m, parent, s.Stmt)
		}
	case *syntax.LocalVarStmt:
		for _, d := range s.Declarators {
			c.take(&m.Comments, d.Comment)
			if d.HasInit {
				m.Statements.Count++
			}
		}
	case *syntax.ExprStmt:
		m.Statements.Count++
	case *syntax.IfStmt:
		m.Statements.Count++
		if s.Then != nil {
			c.walkStmt(m, parent, s.Then)
		}
		if s.Else != nil {
			c.walkStmt(m, parent, s.Else)
		}
	case *syntax.WhileStmt:
		m.Statements.Count++
		if s.Body != nil {
			c.walkStmt(m, parent, s.Body)
		}
	case *syntax.DoStmt:
		m.Statements.Count++
		if s.Body != nil {
			c.walkStmt(m, parent, s.Body)
		}
	case *syntax.ForStmt:
		m.Statements.Count++
		if s.Body != nil {
			c.walkStmt(m, parent, s.Body)
		}
	case *syntax.ForEachStmt:
		m.Statements.Count++
		if s.Body != nil {
			c.walkStmt(m, parent, s.Body)
		}
	case *syntax.SwitchStmt:
		m.Statements.Count++
		for _, cs := range s.Cases {
			c.take(&m.Comments, cs.Comment)
			m.Statements.Count += cs.Labels
			c.walkStmts(m, parent, cs.Stmts)
		}
	case *syntax.SyncStmt:
		m.Statements.Count++
		if s.Body != nil {
			c.walkStmts(m, parent, s.Body.Stmts)
		}
	case *syntax.TryStmt:
		m.Statements.Count += 1 + s.Resources
		if s.Body != nil {
			c.walkStmts(m, parent, s.Body.Stmts)
		}
		for _, cc := range s.Catches {
			c.take(&m.Comments, cc.Comment)
			if cc.Body != nil {
				c.walkStmts(m, parent, cc.Body.Stmts)
			}
		}
		if s.Finally != nil {
			c.walkStmts(m, parent, s.Finally.Stmts)
		}
	case *syntax.ReturnStmt, *syntax.BreakStmt, *syntax.ContinueStmt,
		*syntax.YieldStmt, *syntax.ThrowStmt, *syntax.AssertStmt,
		*syntax.CtorCallStmt:
		m.Statements.Count++
	default:
		panic(fmt.Sprintf("metrics: unhandled statement %T", s))
	}
}
