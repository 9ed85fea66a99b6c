package syntax

// Node is the common part of every syntax construct: its span and the
// comments bound to it. Comment is the primary comment directly preceding
// the construct, Doc its documentation comment. Orphans holds comments
// positioned inside the construct that could not be bound to anything more
// specific; only holder constructs (units, type and member declarations,
// module declarations, anonymous class bodies) carry orphans. Anon lists
// anonymous class bodies found in the construct's expressions.
type Node struct {
	Span    Span
	Comment *Comment
	Doc     *Comment
	Orphans []*Comment
	Anon    []*AnonClass
}

// Info returns the embedded Node, giving uniform access through the
// Member and Stmt interfaces.
func (n *Node) Info() *Node { return n }

// EffectiveStartLine is the line the construct effectively begins on for
// adjacency purposes: the start of its primary comment when one is
// attached, else the start of its doc comment, else its own first line.
func (n *Node) EffectiveStartLine() int {
	if n.Comment != nil {
		return n.Comment.Span.Start.Line
	}
	if n.Doc != nil {
		return n.Doc.Span.Start.Line
	}
	return n.Span.Start.Line
}

// CompilationUnit is one parsed source file. Exactly one of Module or the
// ordinary declarations is populated: module-info files carry Module,
// everything else carries Package/Imports/Types.
type CompilationUnit struct {
	Node
	File    string
	Package *PackageDecl
	Imports []*Import
	Types   []*TypeDecl
	Module  *ModuleDecl
}

// PackageDecl is the package declaration of a unit.
type PackageDecl struct {
	Node
	Name string
}

// Import is a single import declaration.
type Import struct {
	Node
	Path     string
	Static   bool
	Wildcard bool
}

// ModuleDecl is the module declaration of a module-info unit.
type ModuleDecl struct {
	Node
	Name       string
	Open       bool
	Directives []*Directive
}

// DirectiveKind enumerates module directive forms.
type DirectiveKind int

const (
	RequiresDirective DirectiveKind = iota
	ExportsDirective
	OpensDirective
	UsesDirective
	ProvidesDirective
)

func (k DirectiveKind) String() string {
	switch k {
	case RequiresDirective:
		return "requires"
	case ExportsDirective:
		return "exports"
	case OpensDirective:
		return "opens"
	case UsesDirective:
		return "uses"
	case ProvidesDirective:
		return "provides"
	}
	return "unknown"
}

// Directive is one module directive.
type Directive struct {
	Node
	Kind   DirectiveKind
	Target string
}

// TypeForm is the grammar production a type declaration came from.
type TypeForm int

const (
	ClassForm TypeForm = iota
	InterfaceForm
	EnumForm
	AnnotationForm
	RecordForm
)

func (f TypeForm) String() string {
	switch f {
	case ClassForm:
		return "class"
	case InterfaceForm:
		return "interface"
	case EnumForm:
		return "enum"
	case AnnotationForm:
		return "annotation"
	case RecordForm:
		return "record"
	}
	return "unknown"
}

// Modifiers is a bit set of declaration modifiers.
type Modifiers uint

const (
	ModStatic Modifiers = 1 << iota
	ModAbstract
	ModDefault
	ModNative
	ModFinal
	ModPublic
	ModProtected
	ModPrivate
	ModSynchronized
	ModTransient
	ModVolatile
	ModStrictfp
	ModSealed
	ModNonSealed
)

// Has reports whether all bits of m are set.
func (mods Modifiers) Has(m Modifiers) bool { return mods&m == m }

// Member is a construct that can appear in a type body. The set is closed:
// *FieldDecl, *MethodDecl, *InitializerDecl, nested *TypeDecl, and
// *EnumConstant.
type Member interface {
	Info() *Node
	memberNode()
}

// TypeDecl is a class, interface, enum, annotation, or record declaration,
// at any nesting level including local declarations.
type TypeDecl struct {
	Node
	Form    TypeForm
	Name    string
	Mods    Modifiers
	Members []Member
}

// FieldDecl is a field or constant declaration with one or more
// declarators. Annotation elements are represented as field declarations
// with Element set and a single declarator.
type FieldDecl struct {
	Node
	Mods        Modifiers
	Element     bool
	Declarators []*Declarator
}

// Declarator is a single name within a field or local variable
// declaration.
type Declarator struct {
	Node
	Name    string
	HasInit bool
}

// MethodDecl is a method, constructor, or compact constructor. Body is nil
// for abstract, native, and interface methods without bodies.
type MethodDecl struct {
	Node
	Mods Modifiers
	Name string
	Ctor bool
	Body *Block
}

// InitializerDecl is a static or instance initializer block.
type InitializerDecl struct {
	Node
	Static bool
	Body   *Block
}

// EnumConstant is one constant of an enum. Body is non-nil when the
// constant declares a class body of its own.
type EnumConstant struct {
	Node
	Name string
	Body []Member
}

// AnonClass is an anonymous class body attached to an object creation
// expression.
type AnonClass struct {
	Node
	SuperName string
	Body      []Member
}

func (*TypeDecl) memberNode()        {}
func (*FieldDecl) memberNode()       {}
func (*MethodDecl) memberNode()      {}
func (*InitializerDecl) memberNode() {}
func (*EnumConstant) memberNode()    {}
