package metrics

import (
	"path/filepath"

	"github.com/dhamidi/javamet/java/syntax"
)

// Collector accumulates metrics across repeated Collect calls, one per
// compilation unit. It is not safe for concurrent use: shard by
// collector instance and merge results, or serialize calls.
type Collector struct {
	root    *Java
	claimed map[*syntax.Comment]bool
}

func NewCollector() *Collector {
	return &Collector{
		root:    &Java{},
		claimed: make(map[*syntax.Comment]bool),
	}
}

// Metrics returns the tree accumulated so far.
func (c *Collector) Metrics() *Java { return c.root }

// Collect walks one parsed unit and merges its metrics into the tree.
// The unit's subtree is fully built before anything is merged, so a
// failure halfway through leaves the accumulated tree untouched.
func (c *Collector) Collect(unit *syntax.CompilationUnit) {
	for k := range c.claimed {
		delete(c.claimed, k)
	}
	if unit.Module != nil {
		mu := c.modularUnit(unit)
		c.root.ModularUnits = append(c.root.ModularUnits, mu)
		return
	}
	cu, pkgComments := c.unitMetrics(unit)
	pkgName := ""
	if unit.Package != nil {
		pkgName = unit.Package.Name
	}
	pkg := c.root.Package(pkgName)
	pkg.Units = append(pkg.Units, cu)
	pkg.Comments.Add(pkgComments)
}

// unitMetrics builds the metrics of an ordinary unit. The second result
// holds comments that belong on the package rather than the unit: a
// unit that declares a package but no types (package-info and friends)
// documents the package itself.
func (c *Collector) unitMetrics(unit *syntax.CompilationUnit) (*CompilationUnit, Comments) {
	cu := &CompilationUnit{CodeElement: CodeElement{Name: unitName(unit)}}
	for _, t := range unit.Types {
		cu.Types = append(cu.Types, c.typeMetrics(t, &unit.Node))
	}

	// whatever is left at unit level: package and import comments,
	// file header and footer
	var leftover Comments
	if unit.Package != nil {
		c.take(&leftover, unit.Package.Doc)
		c.take(&leftover, unit.Package.Comment)
	}
	for _, imp := range unit.Imports {
		c.take(&leftover, imp.Comment)
	}
	c.drainNode(&leftover, &unit.Node)

	if len(unit.Types) == 0 && unit.Package != nil {
		return cu, leftover
	}
	cu.Comments.Add(leftover)
	return cu, Comments{}
}

func (c *Collector) modularUnit(unit *syntax.CompilationUnit) *ModularCompilationUnit {
	mu := &ModularCompilationUnit{CodeElement: CodeElement{Name: unitName(unit)}}
	mu.Module = c.moduleMetrics(unit.Module, &unit.Node)
	for _, imp := range unit.Imports {
		c.take(&mu.Comments, imp.Comment)
	}
	c.drainNode(&mu.Comments, &unit.Node)
	return mu
}

func (c *Collector) moduleMetrics(m *syntax.ModuleDecl, parent *syntax.Node) *ModuleDeclaration {
	md := &ModuleDeclaration{CodeElement: CodeElement{Name: m.Name}, Open: m.Open}
	c.claimAdjacent(&md.Comments, parent, &m.Node)
	for _, d := range m.Directives {
		switch d.Kind {
		case syntax.RequiresDirective:
			md.Requires++
		case syntax.ExportsDirective:
			md.Exports++
		case syntax.OpensDirective:
			md.Opens++
		case syntax.UsesDirective:
			md.Uses++
		case syntax.ProvidesDirective:
			md.Provides++
		default:
			panic("metrics: unhandled module directive kind")
		}
		c.take(&md.Comments, d.Comment)
	}
	c.drainNode(&md.Comments, &m.Node)
	return md
}

func unitName(u *syntax.CompilationUnit) string {
	if u.File == "" {
		return ""
	}
	return filepath.Base(u.File)
}
