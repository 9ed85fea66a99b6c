package syntax

import "testing"

func TestAttachDocAndPrimary(t *testing.T) {
	unit := parseUnit(t, `package com.example;

/** Doc for A. */
// primary note
class A {
}
`)

	a := unit.Types[0]
	if a.Doc == nil || a.Doc.Text != "/** Doc for A. */" {
		t.Errorf("Expected doc comment on A, got %+v", a.Doc)
	}
	if a.Comment == nil || a.Comment.Text != "// primary note" {
		t.Errorf("Expected primary comment on A, got %+v", a.Comment)
	}
	if len(unit.Orphans) != 0 {
		t.Errorf("Expected no unit orphans, got %d", len(unit.Orphans))
	}
}

func TestAttachPrimaryToMember(t *testing.T) {
	unit := parseUnit(t, `class A {
    // above x
    int x;

    // above m
    void m() {
    }
}
`)

	a := unit.Types[0]
	field := a.Members[0].(*FieldDecl)
	if field.Comment == nil || field.Comment.Text != "// above x" {
		t.Errorf("Expected primary comment on field, got %+v", field.Comment)
	}
	method := a.Members[1].(*MethodDecl)
	if method.Comment == nil || method.Comment.Text != "// above m" {
		t.Errorf("Expected primary comment on method, got %+v", method.Comment)
	}
}

func TestAttachChainLeavesEarlierCommentsAsOrphans(t *testing.T) {
	unit := parseUnit(t, `class A {
    // one
    // two
    void m() {
    }
}
`)

	a := unit.Types[0]
	method := a.Members[0].(*MethodDecl)
	if method.Comment == nil || method.Comment.Text != "// two" {
		t.Errorf("Expected nearest comment as primary, got %+v", method.Comment)
	}
	if len(a.Orphans) != 1 || a.Orphans[0].Text != "// one" {
		t.Fatalf("Expected the earlier comment as a type orphan, got %+v", a.Orphans)
	}
}

func TestAttachTrailingCommentStaysOrphan(t *testing.T) {
	unit := parseUnit(t, `class A {
    int x; // trailing
}
`)

	a := unit.Types[0]
	field := a.Members[0].(*FieldDecl)
	if field.Comment != nil {
		t.Errorf("Expected no primary on field, got %q", field.Comment.Text)
	}
	if len(a.Orphans) != 1 || a.Orphans[0].Text != "// trailing" {
		t.Fatalf("Expected trailing comment as a type orphan, got %+v", a.Orphans)
	}
}

func TestAttachBlankLineBreaksAdjacency(t *testing.T) {
	unit := parseUnit(t, `class A {

    // lonely

    int x;
}
`)

	a := unit.Types[0]
	field := a.Members[0].(*FieldDecl)
	if field.Comment != nil {
		t.Errorf("Expected no primary across a blank line, got %q", field.Comment.Text)
	}
	if len(a.Orphans) != 1 {
		t.Fatalf("Expected 1 type orphan, got %d", len(a.Orphans))
	}
}

func TestAttachFileHeaderIsUnitOrphan(t *testing.T) {
	unit := parseUnit(t, `// Copyright notice.

package com.example;

class A {
}
`)

	if unit.Package.Comment != nil {
		t.Errorf("Expected no primary on package, got %q", unit.Package.Comment.Text)
	}
	if len(unit.Orphans) != 1 || unit.Orphans[0].Text != "// Copyright notice." {
		t.Fatalf("Expected header as unit orphan, got %+v", unit.Orphans)
	}
}

func TestAttachPackageDoc(t *testing.T) {
	unit := parseUnit(t, `/** The example package. */
package com.example;
`)

	if unit.Package.Doc == nil || unit.Package.Doc.Text != "/** The example package. */" {
		t.Errorf("Expected doc comment on package, got %+v", unit.Package.Doc)
	}
}

func TestAttachDeclaratorComment(t *testing.T) {
	unit := parseUnit(t, `class A {
    int a,
        // about b
        b;
}
`)

	field := unit.Types[0].Members[0].(*FieldDecl)
	if len(field.Declarators) != 2 {
		t.Fatalf("Expected 2 declarators, got %d", len(field.Declarators))
	}
	b := field.Declarators[1]
	if b.Comment == nil || b.Comment.Text != "// about b" {
		t.Errorf("Expected primary comment on declarator b, got %+v", b.Comment)
	}
}

func TestAttachModuleDirectiveComment(t *testing.T) {
	unit := parseUnit(t, `/** The app module. */
module com.example.app {
    // needed for persistence
    requires java.sql;
}
`)

	m := unit.Module
	if m.Doc == nil {
		t.Fatal("Expected doc comment on module")
	}
	if len(m.Directives) != 1 {
		t.Fatalf("Expected 1 directive, got %d", len(m.Directives))
	}
	d := m.Directives[0]
	if d.Comment == nil || d.Comment.Text != "// needed for persistence" {
		t.Errorf("Expected primary comment on directive, got %+v", d.Comment)
	}
}

func TestAttachStatementComment(t *testing.T) {
	unit := parseUnit(t, `class A {
    void m() {
        // prepare
        int a = 1;
        a++; // bump
    }
}
`)

	method := unit.Types[0].Members[0].(*MethodDecl)
	lv := method.Body.Stmts[0].(*LocalVarStmt)
	if lv.Comment == nil || lv.Comment.Text != "// prepare" {
		t.Errorf("Expected primary comment on declaration statement, got %+v", lv.Comment)
	}
	if len(method.Orphans) != 1 || method.Orphans[0].Text != "// bump" {
		t.Fatalf("Expected trailing comment as method orphan, got %+v", method.Orphans)
	}
}
