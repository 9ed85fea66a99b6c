package metrics

import (
	"fmt"

	"github.com/dhamidi/javamet/java/syntax"
)

// typeMetrics builds the metrics of one type declaration. Per node the
// order is fixed: claim adjacent orphans from the holder first, then
// recurse into members, then drain whatever is still attached to the
// declaration itself. This is what makes a comment stick to the
// declaration closest to it instead of an enclosing scope.
func (c *Collector) typeMetrics(t *syntax.TypeDecl, holder *syntax.Node) *Type {
	tm := &Type{CodeElement: CodeElement{Name: t.Name}, Kind: typeKind(t.Form)}
	c.claimAdjacent(&tm.Comments, holder, &t.Node)
	for _, m := range t.Members {
		c.memberMetrics(tm, &t.Node, t.Form, m)
	}
	c.drainNode(&tm.Comments, &t.Node)
	return tm
}

func (c *Collector) memberMetrics(tm *Type, holder *syntax.Node, form syntax.TypeForm, m syntax.Member) {
	switch m := m.(type) {
	case *syntax.TypeDecl:
		tm.Inner = append(tm.Inner, c.typeMetrics(m, holder))
	case *syntax.FieldDecl:
		tm.Fields = append(tm.Fields, c.fieldMetrics(m, holder, form)...)
	case *syntax.MethodDecl:
		tm.Methods = append(tm.Methods, c.methodMetrics(m, holder, form))
	case *syntax.InitializerDecl:
		tm.Methods = append(tm.Methods, c.initializerMetrics(m, holder))
	case *syntax.EnumConstant:
		if len(m.Body) > 0 {
			tm.Inner = append(tm.Inner, c.enumConstantType(m, holder))
		} else {
			tm.Fields = append(tm.Fields, c.enumConstantField(m, holder))
		}
	default:
		panic(fmt.Sprintf("metrics: unhandled member %T", m))
	}
}

// fieldMetrics fans a declaration out into one Field per declarator.
// The declaration's own doc, primary, and adjacent orphans ride on the
// first declarator; later declarators only claim comments adjacent to
// themselves.
func (c *Collector) fieldMetrics(f *syntax.FieldDecl, holder *syntax.Node, form syntax.TypeForm) []*Field {
	kind := fieldKind(f, form)
	out := make([]*Field, 0, len(f.Declarators))
	for i, d := range f.Declarators {
		fm := &Field{CodeElement: CodeElement{Name: d.Name}, Kind: kind}
		if d.HasInit {
			fm.Statements.Count++
		}
		if i == 0 {
			c.claimAdjacent(&fm.Comments, holder, &f.Node)
			c.take(&fm.Comments, f.Doc)
			c.take(&fm.Comments, f.Comment)
		} else {
			c.claimAdjacent(&fm.Comments, &f.Node, &d.Node)
		}
		c.take(&fm.Comments, d.Comment)
		out = append(out, fm)
	}
	if len(out) > 0 {
		c.drainNode(&out[0].Comments, &f.Node)
	}
	return out
}

func (c *Collector) methodMetrics(m *syntax.MethodDecl, holder *syntax.Node, form syntax.TypeForm) *Method {
	mm := &Method{CodeElement: CodeElement{Name: m.Name}, Kind: methodKind(m, form)}
	c.claimAdjacent(&mm.Comments, holder, &m.Node)
	if m.Body != nil {
		c.walkStmts(mm, &m.Node, m.Body.Stmts)
	}
	c.drainNode(&mm.Comments, &m.Node)
	return mm
}

func (c *Collector) initializerMetrics(init *syntax.InitializerDecl, holder *syntax.Node) *Method {
	kind := InstanceInitializer
	if init.Static {
		kind = StaticInitializer
	}
	mm := &Method{CodeElement: CodeElement{Name: "initializer"}, Kind: kind}
	c.claimAdjacent(&mm.Comments, holder, &init.Node)
	if init.Body != nil {
		c.walkStmts(mm, &init.Node, init.Body.Stmts)
	}
	c.drainNode(&mm.Comments, &init.Node)
	return mm
}

// enumConstantType handles an enum constant carrying a class body: it
// becomes a type of its own, not a field.
func (c *Collector) enumConstantType(e *syntax.EnumConstant, holder *syntax.Node) *Type {
	t := &Type{CodeElement: CodeElement{Name: e.Name}, Kind: EnumConstantType}
	c.claimAdjacent(&t.Comments, holder, &e.Node)
	for _, m := range e.Body {
		c.memberMetrics(t, &e.Node, syntax.ClassForm, m)
	}
	c.drainNode(&t.Comments, &e.Node)
	return t
}

func (c *Collector) enumConstantField(e *syntax.EnumConstant, holder *syntax.Node) *Field {
	f := &Field{CodeElement: CodeElement{Name: e.Name}, Kind: EnumConstantField}
	c.claimAdjacent(&f.Comments, holder, &e.Node)
	c.drainNode(&f.Comments, &e.Node)
	return f
}

// anonMetrics builds the metrics of an anonymous class body. Comments
// above the statement the expression appears in belong to that
// statement's method, so nothing is claimed from outside the body.
func (c *Collector) anonMetrics(a *syntax.AnonClass) *Type {
	t := &Type{CodeElement: CodeElement{Name: "Anonymous$" + a.SuperName}, Kind: AnonymousType}
	for _, m := range a.Body {
		c.memberMetrics(t, &a.Node, syntax.ClassForm, m)
	}
	c.drainNode(&t.Comments, &a.Node)
	return t
}

func typeKind(form syntax.TypeForm) TypeKind {
	switch form {
	case syntax.ClassForm:
		return ClassType
	case syntax.InterfaceForm:
		return InterfaceType
	case syntax.EnumForm:
		return EnumType
	case syntax.AnnotationForm:
		return AnnotationType
	case syntax.RecordForm:
		return RecordType
	}
	panic(fmt.Sprintf("metrics: unhandled type form %v", form))
}

// methodKind picks the first matching rule. A bodyless method inside
// an interface is abstract even without the modifier.
func methodKind(m *syntax.MethodDecl, enclosing syntax.TypeForm) MethodKind {
	switch {
	case m.Ctor:
		return Constructor
	case m.Mods.Has(syntax.ModDefault):
		return DefaultMethod
	case m.Mods.Has(syntax.ModStatic):
		return StaticMethod
	case m.Mods.Has(syntax.ModAbstract):
		return AbstractMethod
	case m.Mods.Has(syntax.ModNative):
		return NativeMethod
	case m.Body == nil && enclosing == syntax.InterfaceForm:
		return AbstractMethod
	default:
		return InstanceMethod
	}
}

// fieldKind classifies a whole declaration; every declarator in it
// shares the kind. Interface and annotation fields are implicitly
// static.
func fieldKind(f *syntax.FieldDecl, enclosing syntax.TypeForm) FieldKind {
	switch {
	case f.Element:
		return AnnotationElement
	case f.Mods.Has(syntax.ModStatic):
		return StaticField
	case enclosing == syntax.InterfaceForm || enclosing == syntax.AnnotationForm:
		return StaticField
	default:
		return InstanceField
	}
}
