package syntax

import "sort"

// attachComments binds every comment of a unit to exactly one place: the
// doc or primary slot of the construct that starts right after it, or
// the orphan list of its nearest enclosing declaration.
//
// Attachment runs in two passes. The first walks comments bottom-up and
// fills doc/primary slots, so a stack of comments above one declaration
// resolves nearest-first and earlier comments in the stack stay free.
// The second pass records everything still unbound as an orphan, in
// source order.
func attachComments(unit *CompilationUnit, comments []*Comment, src []byte) {
	if len(comments) == 0 {
		return
	}
	idx := newAttachIndex(unit)
	bound := make(map[*Comment]bool)

	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		if hasCodeBefore(src, c) {
			continue
		}
		t := idx.targetAfter(c)
		if t == nil || t.holder != idx.holderOf(c) {
			continue
		}
		if c.Span.End.Line < t.effStart-1 {
			continue
		}
		switch {
		case c.Kind == DocComment && t.documentable && t.info.Doc == nil:
			t.info.Doc = c
		case t.info.Comment == nil:
			t.info.Comment = c
		default:
			continue
		}
		bound[c] = true
		if c.Span.Start.Line < t.effStart {
			t.effStart = c.Span.Start.Line
		}
	}

	for _, c := range comments {
		if !bound[c] {
			h := idx.holderOf(c)
			h.Orphans = append(h.Orphans, c)
		}
	}
}

// hasCodeBefore reports whether anything but whitespace precedes the
// comment on its starting line. Such a comment trails code and never
// becomes a doc or primary comment.
func hasCodeBefore(src []byte, c *Comment) bool {
	for i := c.Span.Start.Offset - 1; i >= 0; i-- {
		switch src[i] {
		case '\n':
			return false
		case ' ', '\t', '\r':
		default:
			return true
		}
	}
	return false
}

// A target is a construct a comment may precede. effStart tracks the
// line the construct effectively begins on and moves up as comments
// attach, letting a chain of single comments connect.
type target struct {
	info         *Node
	holder       *Node
	documentable bool
	effStart     int
}

type attachIndex struct {
	unit    *Node
	holders []*Node
	targets []*target
}

func newAttachIndex(unit *CompilationUnit) *attachIndex {
	ix := &attachIndex{unit: &unit.Node}
	ix.holders = append(ix.holders, &unit.Node)
	if unit.Package != nil {
		ix.target(&unit.Package.Node, &unit.Node, true)
	}
	for _, imp := range unit.Imports {
		ix.target(&imp.Node, &unit.Node, false)
	}
	for _, t := range unit.Types {
		ix.typeDecl(t, &unit.Node)
	}
	if unit.Module != nil {
		ix.module(unit.Module, &unit.Node)
	}
	sort.Slice(ix.targets, func(i, j int) bool {
		return ix.targets[i].info.Span.Start.Offset < ix.targets[j].info.Span.Start.Offset
	})
	return ix
}

func (ix *attachIndex) target(n, holder *Node, documentable bool) {
	ix.targets = append(ix.targets, &target{
		info:         n,
		holder:       holder,
		documentable: documentable,
		effStart:     n.Span.Start.Line,
	})
}

func (ix *attachIndex) module(m *ModuleDecl, holder *Node) {
	ix.target(&m.Node, holder, true)
	ix.holders = append(ix.holders, &m.Node)
	for _, d := range m.Directives {
		ix.target(&d.Node, &m.Node, false)
	}
}

func (ix *attachIndex) typeDecl(t *TypeDecl, holder *Node) {
	ix.target(&t.Node, holder, true)
	ix.holders = append(ix.holders, &t.Node)
	ix.membersOf(t.Members, &t.Node)
}

func (ix *attachIndex) membersOf(members []Member, holder *Node) {
	for _, m := range members {
		switch m := m.(type) {
		case *TypeDecl:
			ix.typeDecl(m, holder)
		case *FieldDecl:
			ix.target(&m.Node, holder, true)
			ix.holders = append(ix.holders, &m.Node)
			for _, d := range m.Declarators {
				ix.target(&d.Node, &m.Node, false)
			}
		case *MethodDecl:
			ix.target(&m.Node, holder, true)
			ix.holders = append(ix.holders, &m.Node)
			if m.Body != nil {
				ix.stmts(m.Body.Stmts, &m.Node)
			}
		case *InitializerDecl:
			ix.target(&m.Node, holder, false)
			ix.holders = append(ix.holders, &m.Node)
			if m.Body != nil {
				ix.stmts(m.Body.Stmts, &m.Node)
			}
		case *EnumConstant:
			ix.target(&m.Node, holder, true)
			if m.Body != nil {
				ix.holders = append(ix.holders, &m.Node)
				ix.membersOf(m.Body, &m.Node)
			}
		}
	}
}

func (ix *attachIndex) stmts(list []Stmt, holder *Node) {
	for _, s := range list {
		ix.stmt(s, holder)
	}
}

func (ix *attachIndex) stmt(s Stmt, holder *Node) {
	if lt, ok := s.(*LocalTypeStmt); ok {
		ix.typeDecl(lt.Decl, holder)
		return
	}
	n := s.Info()
	ix.target(n, holder, false)
	for _, a := range n.Anon {
		ix.anon(a)
	}
	switch s := s.(type) {
	case *Block:
		ix.stmts(s.Stmts, holder)
	case *LocalVarStmt:
		for _, d := range s.Declarators {
			ix.target(&d.Node, holder, false)
		}
	case *IfStmt:
		if s.Then != nil {
			ix.stmt(s.Then, holder)
		}
		if s.Else != nil {
			ix.stmt(s.Else, holder)
		}
	case *WhileStmt:
		if s.Body != nil {
			ix.stmt(s.Body, holder)
		}
	case *DoStmt:
		if s.Body != nil {
			ix.stmt(s.Body, holder)
		}
	case *ForStmt:
		if s.Body != nil {
			ix.stmt(s.Body, holder)
		}
	case *ForEachStmt:
		if s.Body != nil {
			ix.stmt(s.Body, holder)
		}
	case *SwitchStmt:
		for _, c := range s.Cases {
			ix.target(&c.Node, holder, false)
			ix.stmts(c.Stmts, holder)
		}
	case *SyncStmt:
		if s.Body != nil {
			ix.stmts(s.Body.Stmts, holder)
		}
	case *LabeledStmt:
		if s.Stmt != nil {
			ix.stmt(s.Stmt, holder)
		}
	case *TryStmt:
		if s.Body != nil {
			ix.stmts(s.Body.Stmts, holder)
		}
		for _, cc := range s.Catches {
			ix.target(&cc.Node, holder, false)
			if cc.Body != nil {
				ix.stmts(cc.Body.Stmts, holder)
			}
		}
		if s.Finally != nil {
			ix.stmts(s.Finally.Stmts, holder)
		}
	}
}

func (ix *attachIndex) anon(a *AnonClass) {
	ix.holders = append(ix.holders, &a.Node)
	ix.membersOf(a.Body, &a.Node)
}

// holderOf finds the innermost declaration whose span contains the
// comment. The unit itself contains everything.
func (ix *attachIndex) holderOf(c *Comment) *Node {
	best := ix.unit
	for _, h := range ix.holders {
		if h.Span.Start.Offset <= c.Span.Start.Offset && c.Span.End.Offset <= h.Span.End.Offset {
			if h.Span.Start.Offset > best.Span.Start.Offset ||
				(h.Span.Start.Offset == best.Span.Start.Offset && h.Span.End.Offset < best.Span.End.Offset) {
				best = h
			}
		}
	}
	return best
}

// targetAfter returns the first target starting at or after the end of
// the comment, or nil when the comment is below every construct.
func (ix *attachIndex) targetAfter(c *Comment) *target {
	i := sort.Search(len(ix.targets), func(i int) bool {
		return ix.targets[i].info.Span.Start.Offset >= c.Span.End.Offset
	})
	if i == len(ix.targets) {
		return nil
	}
	return ix.targets[i]
}
