package syntax

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// ParseError reports malformed source in a unit.
type ParseError struct {
	File string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: syntax error", e.File, e.Line)
}

// Parse parses a single Java source file into a compilation unit with
// comments attached. Malformed source yields a *ParseError and no unit.
func Parse(ctx context.Context, file string, source []byte) (*CompilationUnit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if bad := firstBadNode(root); bad != nil {
		return nil, &ParseError{File: file, Line: int(bad.StartPoint().Row) + 1}
	}

	b := &builder{src: source}
	unit := b.compilationUnit(root, file)
	attachComments(unit, b.commentsIn(root), source)
	return unit, nil
}

func firstBadNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstBadNode(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}

type builder struct {
	src []byte
}

func (b *builder) span(n *sitter.Node) Span {
	return Span{
		Start: Position{
			Offset: int(n.StartByte()),
			Line:   int(n.StartPoint().Row) + 1,
			Column: int(n.StartPoint().Column) + 1,
		},
		End: Position{
			Offset: int(n.EndByte()),
			Line:   int(n.EndPoint().Row) + 1,
			Column: int(n.EndPoint().Column) + 1,
		},
	}
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(b.src[n.StartByte():n.EndByte()])
}

func (b *builder) fieldText(n *sitter.Node, field string) string {
	return b.text(n.ChildByFieldName(field))
}

func childOfType(n *sitter.Node, t string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if ch := n.Child(i); ch.Type() == t {
			return ch
		}
	}
	return nil
}

func isCommentType(t string) bool {
	return t == "line_comment" || t == "block_comment" || t == "comment"
}

// commentsIn collects every comment token of the tree in source order.
func (b *builder) commentsIn(root *sitter.Node) []*Comment {
	var out []*Comment
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if isCommentType(n.Type()) {
			text := b.text(n)
			out = append(out, &Comment{Kind: classifyComment(text), Span: b.span(n), Text: text})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return out
}

func (b *builder) compilationUnit(root *sitter.Node, file string) *CompilationUnit {
	unit := &CompilationUnit{File: file}
	unit.Span = b.span(root)
	for i := 0; i < int(root.ChildCount()); i++ {
		ch := root.Child(i)
		switch ch.Type() {
		case "package_declaration":
			unit.Package = b.packageDecl(ch)
		case "import_declaration":
			unit.Imports = append(unit.Imports, b.importDecl(ch))
		case "module_declaration":
			unit.Module = b.moduleDecl(ch)
		case "class_declaration", "interface_declaration", "enum_declaration",
			"annotation_type_declaration", "record_declaration":
			unit.Types = append(unit.Types, b.typeDecl(ch))
		}
	}
	return unit
}

func (b *builder) packageDecl(n *sitter.Node) *PackageDecl {
	p := &PackageDecl{}
	p.Span = b.span(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.Type() == "identifier" || ch.Type() == "scoped_identifier" {
			p.Name = b.text(ch)
		}
	}
	return p
}

func (b *builder) importDecl(n *sitter.Node) *Import {
	imp := &Import{}
	imp.Span = b.span(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		switch ch.Type() {
		case "static":
			imp.Static = true
		case "identifier", "scoped_identifier":
			imp.Path = b.text(ch)
		case "asterisk":
			imp.Wildcard = true
		}
	}
	return imp
}

func (b *builder) moduleDecl(n *sitter.Node) *ModuleDecl {
	m := &ModuleDecl{}
	m.Span = b.span(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		switch ch.Type() {
		case "open":
			m.Open = true
		case "identifier", "scoped_identifier":
			if m.Name == "" {
				m.Name = b.text(ch)
			}
		case "module_body":
			m.Directives = b.directives(ch)
		}
	}
	return m
}

func (b *builder) directives(body *sitter.Node) []*Directive {
	var out []*Directive
	for i := 0; i < int(body.ChildCount()); i++ {
		ch := body.Child(i)
		var kind DirectiveKind
		switch ch.Type() {
		case "requires_module_directive":
			kind = RequiresDirective
		case "exports_module_directive":
			kind = ExportsDirective
		case "opens_module_directive":
			kind = OpensDirective
		case "uses_module_directive":
			kind = UsesDirective
		case "provides_module_directive":
			kind = ProvidesDirective
		default:
			continue
		}
		d := &Directive{Kind: kind}
		d.Span = b.span(ch)
		for j := 0; j < int(ch.ChildCount()); j++ {
			sub := ch.Child(j)
			if sub.Type() == "identifier" || sub.Type() == "scoped_identifier" {
				d.Target = b.text(sub)
				break
			}
		}
		out = append(out, d)
	}
	return out
}

func (b *builder) typeDecl(n *sitter.Node) *TypeDecl {
	t := &TypeDecl{Mods: b.modifiers(n), Name: b.fieldText(n, "name")}
	t.Span = b.span(n)
	switch n.Type() {
	case "class_declaration":
		t.Form = ClassForm
	case "interface_declaration":
		t.Form = InterfaceForm
	case "enum_declaration":
		t.Form = EnumForm
	case "annotation_type_declaration":
		t.Form = AnnotationForm
	case "record_declaration":
		t.Form = RecordForm
	default:
		panic(fmt.Sprintf("syntax: unhandled type declaration %q at %s", n.Type(), b.span(n).Start))
	}
	t.Members = b.members(n.ChildByFieldName("body"))
	return t
}

// members converts the children of any type body production. Unknown
// children (braces, separators, comments) are skipped.
func (b *builder) members(body *sitter.Node) []Member {
	if body == nil {
		return nil
	}
	var out []Member
	for i := 0; i < int(body.ChildCount()); i++ {
		ch := body.Child(i)
		switch ch.Type() {
		case "field_declaration", "constant_declaration":
			out = append(out, b.fieldDecl(ch, false))
		case "annotation_type_element_declaration":
			out = append(out, b.fieldDecl(ch, true))
		case "method_declaration":
			out = append(out, b.methodDecl(ch, false))
		case "constructor_declaration", "compact_constructor_declaration":
			out = append(out, b.methodDecl(ch, true))
		case "static_initializer":
			out = append(out, b.initializer(ch, true))
		case "block":
			out = append(out, b.initializer(ch, false))
		case "class_declaration", "interface_declaration", "enum_declaration",
			"annotation_type_declaration", "record_declaration":
			out = append(out, b.typeDecl(ch))
		case "enum_constant":
			out = append(out, b.enumConstant(ch))
		case "enum_body_declarations":
			out = append(out, b.members(ch)...)
		}
	}
	return out
}

func (b *builder) fieldDecl(n *sitter.Node, element bool) *FieldDecl {
	f := &FieldDecl{Mods: b.modifiers(n), Element: element}
	f.Span = b.span(n)
	if element {
		d := &Declarator{Name: b.fieldText(n, "name")}
		if name := n.ChildByFieldName("name"); name != nil {
			d.Span = b.span(name)
		} else {
			d.Span = f.Span
		}
		f.Declarators = append(f.Declarators, d)
		return f
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.Type() != "variable_declarator" {
			continue
		}
		d := &Declarator{
			Name:    b.fieldText(ch, "name"),
			HasInit: ch.ChildByFieldName("value") != nil,
		}
		d.Span = b.span(ch)
		f.Declarators = append(f.Declarators, d)
	}
	return f
}

func (b *builder) methodDecl(n *sitter.Node, ctor bool) *MethodDecl {
	m := &MethodDecl{Mods: b.modifiers(n), Ctor: ctor, Name: b.fieldText(n, "name")}
	m.Span = b.span(n)
	if body := n.ChildByFieldName("body"); body != nil {
		m.Body = b.block(body)
	}
	return m
}

func (b *builder) initializer(n *sitter.Node, static bool) *InitializerDecl {
	init := &InitializerDecl{Static: static}
	init.Span = b.span(n)
	if static {
		if blk := childOfType(n, "block"); blk != nil {
			init.Body = b.block(blk)
		}
	} else {
		init.Body = b.block(n)
	}
	return init
}

func (b *builder) enumConstant(n *sitter.Node) *EnumConstant {
	e := &EnumConstant{Name: b.fieldText(n, "name")}
	e.Span = b.span(n)
	if body := n.ChildByFieldName("body"); body != nil {
		e.Body = b.members(body)
	}
	return e
}

func (b *builder) modifiers(n *sitter.Node) Modifiers {
	mn := childOfType(n, "modifiers")
	if mn == nil {
		return 0
	}
	var mods Modifiers
	for i := 0; i < int(mn.ChildCount()); i++ {
		switch b.text(mn.Child(i)) {
		case "static":
			mods |= ModStatic
		case "abstract":
			mods |= ModAbstract
		case "default":
			mods |= ModDefault
		case "native":
			mods |= ModNative
		case "final":
			mods |= ModFinal
		case "public":
			mods |= ModPublic
		case "protected":
			mods |= ModProtected
		case "private":
			mods |= ModPrivate
		case "synchronized":
			mods |= ModSynchronized
		case "transient":
			mods |= ModTransient
		case "volatile":
			mods |= ModVolatile
		case "strictfp":
			mods |= ModStrictfp
		case "sealed":
			mods |= ModSealed
		case "non-sealed":
			mods |= ModNonSealed
		}
	}
	return mods
}

// block converts any node whose children are statements: block,
// constructor_body, static initializer bodies.
func (b *builder) block(n *sitter.Node) *Block {
	blk := &Block{}
	blk.Span = b.span(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		if s := b.stmt(n.Child(i)); s != nil {
			blk.Stmts = append(blk.Stmts, s)
		}
	}
	return blk
}

func (b *builder) stmt(n *sitter.Node) Stmt {
	switch n.Type() {
	case "{", "}", "line_comment", "block_comment", "comment":
		return nil
	case ";":
		s := &EmptyStmt{}
		s.Span = b.span(n)
		return s
	case "block":
		return b.block(n)
	case "class_declaration", "interface_declaration", "enum_declaration",
		"annotation_type_declaration", "record_declaration":
		s := &LocalTypeStmt{Decl: b.typeDecl(n)}
		s.Span = b.span(n)
		return s
	case "local_variable_declaration":
		return b.localVar(n)
	case "expression_statement":
		s := &ExprStmt{}
		s.Span = b.span(n)
		b.findAnonChildren(&s.Node, n)
		return s
	case "labeled_statement":
		s := &LabeledStmt{}
		s.Span = b.span(n)
		if count := int(n.ChildCount()); count > 0 {
			s.Stmt = b.stmt(n.Child(count - 1))
		}
		return s
	case "if_statement":
		s := &IfStmt{}
		s.Span = b.span(n)
		then := n.ChildByFieldName("consequence")
		alt := n.ChildByFieldName("alternative")
		b.findAnonExcept(&s.Node, n, then, alt)
		if then != nil {
			s.Then = b.stmt(then)
		}
		if alt != nil {
			s.Else = b.stmt(alt)
		}
		return s
	case "while_statement":
		s := &WhileStmt{}
		s.Span = b.span(n)
		body := n.ChildByFieldName("body")
		b.findAnonExcept(&s.Node, n, body)
		if body != nil {
			s.Body = b.stmt(body)
		}
		return s
	case "do_statement":
		s := &DoStmt{}
		s.Span = b.span(n)
		body := n.ChildByFieldName("body")
		b.findAnonExcept(&s.Node, n, body)
		if body != nil {
			s.Body = b.stmt(body)
		}
		return s
	case "for_statement":
		s := &ForStmt{}
		s.Span = b.span(n)
		body := n.ChildByFieldName("body")
		b.findAnonExcept(&s.Node, n, body)
		if body != nil {
			s.Body = b.stmt(body)
		}
		return s
	case "enhanced_for_statement":
		s := &ForEachStmt{}
		s.Span = b.span(n)
		body := n.ChildByFieldName("body")
		b.findAnonExcept(&s.Node, n, body)
		if body != nil {
			s.Body = b.stmt(body)
		}
		return s
	case "switch_expression", "switch_statement":
		return b.switchStmt(n)
	case "return_statement":
		s := &ReturnStmt{}
		s.Span = b.span(n)
		b.findAnonChildren(&s.Node, n)
		return s
	case "break_statement":
		s := &BreakStmt{}
		s.Span = b.span(n)
		return s
	case "continue_statement":
		s := &ContinueStmt{}
		s.Span = b.span(n)
		return s
	case "yield_statement":
		s := &YieldStmt{}
		s.Span = b.span(n)
		b.findAnonChildren(&s.Node, n)
		return s
	case "throw_statement":
		s := &ThrowStmt{}
		s.Span = b.span(n)
		b.findAnonChildren(&s.Node, n)
		return s
	case "assert_statement":
		s := &AssertStmt{}
		s.Span = b.span(n)
		b.findAnonChildren(&s.Node, n)
		return s
	case "synchronized_statement":
		s := &SyncStmt{}
		s.Span = b.span(n)
		if cond := childOfType(n, "parenthesized_expression"); cond != nil {
			b.findAnon(&s.Node, cond)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			s.Body = b.block(body)
		}
		return s
	case "try_statement", "try_with_resources_statement":
		return b.tryStmt(n)
	case "explicit_constructor_invocation":
		s := &CtorCallStmt{}
		s.Span = b.span(n)
		if args := n.ChildByFieldName("arguments"); args != nil {
			b.findAnon(&s.Node, args)
		}
		return s
	}
	panic(fmt.Sprintf("syntax: unhandled statement node %q at %s", n.Type(), b.span(n).Start))
}

func (b *builder) localVar(n *sitter.Node) *LocalVarStmt {
	s := &LocalVarStmt{}
	s.Span = b.span(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		if ch.Type() != "variable_declarator" {
			continue
		}
		d := &Declarator{Name: b.fieldText(ch, "name")}
		d.Span = b.span(ch)
		if v := ch.ChildByFieldName("value"); v != nil {
			d.HasInit = true
			b.findAnon(&s.Node, v)
		}
		s.Declarators = append(s.Declarators, d)
	}
	return s
}

func (b *builder) switchStmt(n *sitter.Node) *SwitchStmt {
	s := &SwitchStmt{}
	s.Span = b.span(n)
	if cond := n.ChildByFieldName("condition"); cond != nil {
		b.findAnon(&s.Node, cond)
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return s
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		ch := body.Child(i)
		switch ch.Type() {
		case "switch_block_statement_group":
			c := &SwitchCase{}
			c.Span = b.span(ch)
			for j := 0; j < int(ch.ChildCount()); j++ {
				g := ch.Child(j)
				switch g.Type() {
				case "switch_label":
					c.Labels++
				case ":":
				default:
					if st := b.stmt(g); st != nil {
						c.Stmts = append(c.Stmts, st)
					}
				}
			}
			s.Cases = append(s.Cases, c)
		case "switch_rule":
			c := &SwitchCase{Labels: 1}
			c.Span = b.span(ch)
			if count := int(ch.ChildCount()); count > 0 {
				if st := b.stmt(ch.Child(count - 1)); st != nil {
					c.Stmts = append(c.Stmts, st)
				}
			}
			s.Cases = append(s.Cases, c)
		}
	}
	return s
}

func (b *builder) tryStmt(n *sitter.Node) *TryStmt {
	s := &TryStmt{}
	s.Span = b.span(n)
	if res := n.ChildByFieldName("resources"); res != nil {
		for i := 0; i < int(res.ChildCount()); i++ {
			ch := res.Child(i)
			if ch.Type() != "resource" {
				continue
			}
			if v := ch.ChildByFieldName("value"); v != nil {
				s.Resources++
				b.findAnon(&s.Node, v)
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		s.Body = b.block(body)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		switch ch.Type() {
		case "catch_clause":
			cc := &CatchClause{}
			cc.Span = b.span(ch)
			if body := ch.ChildByFieldName("body"); body != nil {
				cc.Body = b.block(body)
			}
			s.Catches = append(s.Catches, cc)
		case "finally_clause":
			if blk := childOfType(ch, "block"); blk != nil {
				s.Finally = b.block(blk)
			}
		}
	}
	return s
}

// findAnon walks an expression subtree and records anonymous class bodies
// on dst, outermost first. It does not descend into a captured body:
// anything inside belongs to the body's own members.
func (b *builder) findAnon(dst *Node, n *sitter.Node) {
	if n.Type() == "object_creation_expression" {
		if body := childOfType(n, "class_body"); body != nil {
			a := &AnonClass{SuperName: simpleTypeName(b.fieldText(n, "type"))}
			a.Span = b.span(body)
			a.Body = b.members(body)
			dst.Anon = append(dst.Anon, a)
			for i := 0; i < int(n.ChildCount()); i++ {
				ch := n.Child(i)
				if ch.Type() == "class_body" {
					continue
				}
				b.findAnon(dst, ch)
			}
			return
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		b.findAnon(dst, n.Child(i))
	}
}

func (b *builder) findAnonChildren(dst *Node, n *sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		b.findAnon(dst, n.Child(i))
	}
}

func (b *builder) findAnonExcept(dst *Node, n *sitter.Node, skip ...*sitter.Node) {
	for i := 0; i < int(n.ChildCount()); i++ {
		ch := n.Child(i)
		skipped := false
		for _, sk := range skip {
			if sk != nil && ch.StartByte() == sk.StartByte() && ch.EndByte() == sk.EndByte() {
				skipped = true
				break
			}
		}
		if !skipped {
			b.findAnon(dst, ch)
		}
	}
}

// simpleTypeName reduces a possibly qualified, possibly generic type
// reference to its simple name: "java.util.List<String>" becomes "List".
func simpleTypeName(s string) string {
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
