package report

import (
	"encoding/xml"

	"github.com/dhamidi/javamet/java/metrics"
)

// View is the serializable projection of a metrics tree shared by the
// JSON, XML, and HTML encoders.
type View struct {
	XMLName      xml.Name           `json:"-" xml:"metrics"`
	Totals       Totals             `json:"totals" xml:"totals"`
	Packages     []*PackageView     `json:"packages,omitempty" xml:"packages>package"`
	ModularUnits []*ModularUnitView `json:"modularUnits,omitempty" xml:"modular-units>unit"`
}

// Totals is a flattened aggregate over a subtree.
type Totals struct {
	Packages           int          `json:"packages" xml:"packages,attr"`
	CompilationUnits   int          `json:"compilationUnits" xml:"units,attr"`
	ModuleDeclarations int          `json:"moduleDeclarations,omitempty" xml:"modules,attr,omitempty"`
	Directives         int          `json:"directives,omitempty" xml:"directives,attr,omitempty"`
	Types              int          `json:"types" xml:"types,attr"`
	Methods            int          `json:"methods" xml:"methods,attr"`
	Fields             int          `json:"fields" xml:"fields,attr"`
	Statements         int          `json:"statements" xml:"statements,attr"`
	Comments           CommentsView `json:"comments" xml:"comments"`
}

type CommentsView struct {
	Line  LineCommentsView `json:"line" xml:"line"`
	Block SpanCommentsView `json:"block" xml:"block"`
	Doc   SpanCommentsView `json:"doc" xml:"doc"`
}

// Total is the comment count across all three categories.
func (c CommentsView) Total() int {
	return c.Line.Count + c.Block.Count + c.Doc.Count
}

type LineCommentsView struct {
	Count  int `json:"count" xml:"count,attr"`
	Length int `json:"length" xml:"length,attr"`
}

type SpanCommentsView struct {
	Count  int `json:"count" xml:"count,attr"`
	Lines  int `json:"lines" xml:"lines,attr"`
	Length int `json:"length" xml:"length,attr"`
}

type PackageView struct {
	Name     string       `json:"name" xml:"name,attr"`
	Totals   Totals       `json:"totals" xml:"totals"`
	Comments CommentsView `json:"comments" xml:"comments"`
	Units    []*UnitView  `json:"units,omitempty" xml:"unit"`
}

// DisplayName renders the default package readably.
func (p *PackageView) DisplayName() string {
	if p.Name == "" {
		return "(default)"
	}
	return p.Name
}

type UnitView struct {
	Name     string       `json:"name" xml:"name,attr"`
	Totals   Totals       `json:"totals" xml:"totals"`
	Comments CommentsView `json:"comments" xml:"comments"`
	Types    []*TypeView  `json:"types,omitempty" xml:"type"`
}

type TypeView struct {
	Name     string        `json:"name" xml:"name,attr"`
	Kind     string        `json:"kind" xml:"kind,attr"`
	Totals   Totals        `json:"totals" xml:"totals"`
	Comments CommentsView  `json:"comments" xml:"comments"`
	Fields   []*FieldView  `json:"fields,omitempty" xml:"field"`
	Methods  []*MethodView `json:"methods,omitempty" xml:"method"`
	Inner    []*TypeView   `json:"inner,omitempty" xml:"type"`
}

type FieldView struct {
	Name       string       `json:"name" xml:"name,attr"`
	Kind       string       `json:"kind" xml:"kind,attr"`
	Statements int          `json:"statements" xml:"statements,attr"`
	Comments   CommentsView `json:"comments" xml:"comments"`
}

type MethodView struct {
	Name       string       `json:"name" xml:"name,attr"`
	Kind       string       `json:"kind" xml:"kind,attr"`
	Statements int          `json:"statements" xml:"statements,attr"`
	Comments   CommentsView `json:"comments" xml:"comments"`
	LocalTypes []*TypeView  `json:"localTypes,omitempty" xml:"local-type"`
}

type ModularUnitView struct {
	Name     string       `json:"name" xml:"name,attr"`
	Comments CommentsView `json:"comments" xml:"comments"`
	Module   *ModuleView  `json:"module" xml:"module"`
}

type ModuleView struct {
	Name     string       `json:"name" xml:"name,attr"`
	Open     bool         `json:"open,omitempty" xml:"open,attr,omitempty"`
	Requires int          `json:"requires" xml:"requires,attr"`
	Exports  int          `json:"exports" xml:"exports,attr"`
	Opens    int          `json:"opens" xml:"opens,attr"`
	Uses     int          `json:"uses" xml:"uses,attr"`
	Provides int          `json:"provides" xml:"provides,attr"`
	Comments CommentsView `json:"comments" xml:"comments"`
}

// Build projects a metrics tree into its report view.
func Build(root *metrics.Java) *View {
	v := &View{Totals: buildTotals(metrics.Of(root))}
	for _, p := range root.Packages() {
		v.Packages = append(v.Packages, buildPackage(p))
	}
	for _, m := range root.ModularUnits {
		v.ModularUnits = append(v.ModularUnits, buildModularUnit(m))
	}
	return v
}

func buildTotals(a metrics.Aggregated) Totals {
	return Totals{
		Packages:           a.Packages,
		CompilationUnits:   a.CompilationUnits,
		ModuleDeclarations: a.ModuleDeclarations,
		Directives:         a.Directives,
		Types:              a.Types,
		Methods:            a.Methods,
		Fields:             a.Fields,
		Statements:         a.Statements,
		Comments:           buildComments(a.Comments),
	}
}

func buildComments(c metrics.Comments) CommentsView {
	return CommentsView{
		Line:  LineCommentsView{Count: c.Line.Count, Length: c.Line.Length},
		Block: SpanCommentsView{Count: c.Block.Count, Lines: c.Block.Lines, Length: c.Block.Length},
		Doc:   SpanCommentsView{Count: c.Doc.Count, Lines: c.Doc.Lines, Length: c.Doc.Length},
	}
}

func buildPackage(p *metrics.Package) *PackageView {
	pv := &PackageView{
		Name:     p.Name,
		Totals:   buildTotals(metrics.Of(p)),
		Comments: buildComments(p.Comments),
	}
	for _, u := range p.Units {
		pv.Units = append(pv.Units, buildUnit(u))
	}
	return pv
}

func buildUnit(u *metrics.CompilationUnit) *UnitView {
	uv := &UnitView{
		Name:     u.Name,
		Totals:   buildTotals(metrics.Of(u)),
		Comments: buildComments(u.Comments),
	}
	for _, t := range u.Types {
		uv.Types = append(uv.Types, buildType(t))
	}
	return uv
}

func buildType(t *metrics.Type) *TypeView {
	tv := &TypeView{
		Name:     t.Name,
		Kind:     string(t.Kind),
		Totals:   buildTotals(metrics.Of(t)),
		Comments: buildComments(t.Comments),
	}
	for _, f := range t.Fields {
		tv.Fields = append(tv.Fields, &FieldView{
			Name:       f.Name,
			Kind:       string(f.Kind),
			Statements: f.Statements.Count,
			Comments:   buildComments(f.Comments),
		})
	}
	for _, m := range t.Methods {
		tv.Methods = append(tv.Methods, buildMethod(m))
	}
	for _, in := range t.Inner {
		tv.Inner = append(tv.Inner, buildType(in))
	}
	return tv
}

func buildMethod(m *metrics.Method) *MethodView {
	mv := &MethodView{
		Name:       m.Name,
		Kind:       string(m.Kind),
		Statements: m.Statements.Count,
		Comments:   buildComments(m.Comments),
	}
	for _, t := range m.LocalTypes {
		mv.LocalTypes = append(mv.LocalTypes, buildType(t))
	}
	return mv
}

func buildModularUnit(m *metrics.ModularCompilationUnit) *ModularUnitView {
	mv := &ModularUnitView{
		Name:     m.Name,
		Comments: buildComments(m.Comments),
	}
	if m.Module != nil {
		mv.Module = &ModuleView{
			Name:     m.Module.Name,
			Open:     m.Module.Open,
			Requires: m.Module.Requires,
			Exports:  m.Module.Exports,
			Opens:    m.Module.Opens,
			Uses:     m.Module.Uses,
			Provides: m.Module.Provides,
			Comments: buildComments(m.Module.Comments),
		}
	}
	return mv
}
