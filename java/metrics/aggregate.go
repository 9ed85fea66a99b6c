package metrics

// Aggregated is a flat sum of every counter across a subtree. It is a
// value snapshot, detached from the tree it was computed from.
type Aggregated struct {
	Packages           int
	CompilationUnits   int
	ModuleDeclarations int
	Directives         int
	Types              int
	Methods            int
	Fields             int
	Statements         int
	Comments           Comments
}

// Aggregate is implemented by every node of the metrics tree.
type Aggregate interface {
	aggregate(a *Aggregated, self bool)
}

// Of folds a subtree including the node's own increment at its level:
// one package for a Package, one type for a Type, and so on.
func Of(n Aggregate) Aggregated {
	var a Aggregated
	n.aggregate(&a, true)
	return a
}

// OfChildren folds a node's descendants and its directly carried
// comment and statement counters, excluding the node's own increment.
// Of(n) always equals OfChildren(n) plus that one increment.
func OfChildren(n Aggregate) Aggregated {
	var a Aggregated
	n.aggregate(&a, false)
	return a
}

func (j *Java) aggregate(a *Aggregated, _ bool) {
	for _, name := range j.order {
		j.packages[name].aggregate(a, true)
	}
	for _, m := range j.ModularUnits {
		m.aggregate(a, true)
	}
}

func (p *Package) aggregate(a *Aggregated, self bool) {
	if self {
		a.Packages++
	}
	a.Comments.Add(p.Comments)
	for _, u := range p.Units {
		u.aggregate(a, true)
	}
}

func (u *CompilationUnit) aggregate(a *Aggregated, self bool) {
	if self {
		a.CompilationUnits++
	}
	a.Comments.Add(u.Comments)
	for _, t := range u.Types {
		t.aggregate(a, true)
	}
}

func (m *ModularCompilationUnit) aggregate(a *Aggregated, self bool) {
	if self {
		a.CompilationUnits++
	}
	a.Comments.Add(m.Comments)
	if m.Module != nil {
		m.Module.aggregate(a, true)
	}
}

func (m *ModuleDeclaration) aggregate(a *Aggregated, self bool) {
	if self {
		a.ModuleDeclarations++
	}
	a.Comments.Add(m.Comments)
	a.Directives += m.Directives()
}

func (t *Type) aggregate(a *Aggregated, self bool) {
	if self {
		a.Types++
	}
	a.Comments.Add(t.Comments)
	for _, f := range t.Fields {
		f.aggregate(a, true)
	}
	for _, m := range t.Methods {
		m.aggregate(a, true)
	}
	for _, in := range t.Inner {
		in.aggregate(a, true)
	}
}

func (m *Method) aggregate(a *Aggregated, self bool) {
	if self {
		a.Methods++
	}
	a.Comments.Add(m.Comments)
	a.Statements += m.Statements.Count
	for _, t := range m.LocalTypes {
		t.aggregate(a, true)
	}
}

func (f *Field) aggregate(a *Aggregated, self bool) {
	if self {
		a.Fields++
	}
	a.Comments.Add(f.Comments)
	a.Statements += f.Statements.Count
}
