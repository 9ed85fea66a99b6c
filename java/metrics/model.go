// Package metrics builds structural and documentation metrics from
// parsed Java compilation units: counts of packages, units, types,
// methods, fields, statements, and comments split into line, block,
// and doc categories.
//
// A Collector walks one unit at a time and grows a tree of metrics
// nodes mirroring the declaration hierarchy. Every comment in the
// source is attributed to exactly one node. Flat totals over any
// subtree come from Of and OfChildren.
package metrics

// TypeKind classifies why a type exists.
type TypeKind string

const (
	ClassType        TypeKind = "class"
	InterfaceType    TypeKind = "interface"
	EnumType         TypeKind = "enum"
	EnumConstantType TypeKind = "enum-constant-with-body"
	AnnotationType   TypeKind = "annotation"
	AnonymousType    TypeKind = "anonymous-class"
	RecordType       TypeKind = "record"
)

// MethodKind classifies methods, constructors, and initializer blocks.
type MethodKind string

const (
	Constructor         MethodKind = "constructor"
	InstanceInitializer MethodKind = "instance-initializer"
	StaticInitializer   MethodKind = "static-initializer"
	InstanceMethod      MethodKind = "instance-method"
	StaticMethod        MethodKind = "static-method"
	AbstractMethod      MethodKind = "abstract-method"
	DefaultMethod       MethodKind = "default-method"
	NativeMethod        MethodKind = "native-method"
)

// FieldKind classifies field declarators.
type FieldKind string

const (
	StaticField       FieldKind = "static"
	InstanceField     FieldKind = "instance"
	EnumConstantField FieldKind = "enum-constant"
	AnnotationElement FieldKind = "annotation-element"
)

// LineComments counts single-line comments. They always occupy one
// physical line, so only a count and a content length are kept.
type LineComments struct {
	Count  int
	Length int
}

// SpanComments counts comments that may span several physical lines.
type SpanComments struct {
	Count  int
	Lines  int
	Length int
}

// Comments holds the comment counters of one element, split by
// category. Length is the number of characters left after trimming
// each line's surrounding whitespace and leading asterisks.
type Comments struct {
	Line  LineComments
	Block SpanComments
	Doc   SpanComments
}

// Add merges another counter set into c.
func (c *Comments) Add(o Comments) {
	c.Line.Count += o.Line.Count
	c.Line.Length += o.Line.Length
	c.Block.Count += o.Block.Count
	c.Block.Lines += o.Block.Lines
	c.Block.Length += o.Block.Length
	c.Doc.Count += o.Doc.Count
	c.Doc.Lines += o.Doc.Lines
	c.Doc.Length += o.Doc.Length
}

// Total is the number of comments across all three categories.
func (c Comments) Total() int {
	return c.Line.Count + c.Block.Count + c.Doc.Count
}

// Statements counts executable statements.
type Statements struct {
	Count int
}

// CodeElement carries what every named element shares: its name and
// the comments attributed to it.
type CodeElement struct {
	Name     string
	Comments Comments
}

// Field holds the metrics of a single declarator. A declaration
// introducing several names produces one Field per name.
type Field struct {
	CodeElement
	Kind       FieldKind
	Statements Statements
}

// Method holds the metrics of a method, constructor, or initializer
// block. LocalTypes lists the local and anonymous classes declared
// inside the body, in source order.
type Method struct {
	CodeElement
	Kind       MethodKind
	Statements Statements
	LocalTypes []*Type
}

// Type holds the metrics of one type declaration and its members.
type Type struct {
	CodeElement
	Kind    TypeKind
	Fields  []*Field
	Methods []*Method
	Inner   []*Type
}

// CompilationUnit aggregates one ordinary source file.
type CompilationUnit struct {
	CodeElement
	Types []*Type
}

// ModuleDeclaration counts the directives of a module declaration.
type ModuleDeclaration struct {
	CodeElement
	Open     bool
	Requires int
	Exports  int
	Opens    int
	Uses     int
	Provides int
}

// Directives is the total across all five directive counters.
func (m *ModuleDeclaration) Directives() int {
	return m.Requires + m.Exports + m.Opens + m.Uses + m.Provides
}

// ModularCompilationUnit aggregates one module-info source file.
type ModularCompilationUnit struct {
	CodeElement
	Module *ModuleDeclaration
}

// Package groups the compilation units declaring one package. The
// empty name is the default package.
type Package struct {
	CodeElement
	Units []*CompilationUnit
}

// Java is the root of the metrics tree. Packages are created on first
// lookup and listed in first-seen order; modular units are listed in
// arrival order.
type Java struct {
	ModularUnits []*ModularCompilationUnit

	packages map[string]*Package
	order    []string
}

// Package returns the bucket for a package name, creating it on first
// use. Repeated lookups with the same name return the same instance.
func (j *Java) Package(name string) *Package {
	if p, ok := j.packages[name]; ok {
		return p
	}
	if j.packages == nil {
		j.packages = make(map[string]*Package)
	}
	p := &Package{CodeElement: CodeElement{Name: name}}
	j.packages[name] = p
	j.order = append(j.order, name)
	return p
}

// Packages lists all packages in first-seen order.
func (j *Java) Packages() []*Package {
	out := make([]*Package, 0, len(j.order))
	for _, name := range j.order {
		out = append(out, j.packages[name])
	}
	return out
}
