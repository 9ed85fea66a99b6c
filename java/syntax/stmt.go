package syntax

// Stmt is a statement. The variant set is closed; collection dispatches
// over it exhaustively and treats anything else as a logic error.
type Stmt interface {
	Info() *Node
	stmtNode()
}

// Block is a braced statement sequence. Blocks are wrappers: they carry no
// count of their own.
type Block struct {
	Node
	Stmts []Stmt
}

// EmptyStmt is a bare semicolon.
type EmptyStmt struct {
	Node
}

// LocalTypeStmt wraps a type declaration in statement position.
type LocalTypeStmt struct {
	Node
	Decl *TypeDecl
}

// LocalVarStmt is a local variable declaration statement.
type LocalVarStmt struct {
	Node
	Declarators []*Declarator
}

// ExprStmt is a bare expression statement.
type ExprStmt struct {
	Node
}

// IfStmt covers both branches as one unit. Else is nil when absent.
type IfStmt struct {
	Node
	Then Stmt
	Else Stmt
}

// WhileStmt is a while loop.
type WhileStmt struct {
	Node
	Body Stmt
}

// DoStmt is a do-while loop.
type DoStmt struct {
	Node
	Body Stmt
}

// ForStmt is a basic for loop. Header declarations belong to the loop's
// own unit and are not represented separately.
type ForStmt struct {
	Node
	Body Stmt
}

// ForEachStmt is an enhanced for loop.
type ForEachStmt struct {
	Node
	Body Stmt
}

// SwitchStmt is a switch in statement position, old-style or arrow-style.
type SwitchStmt struct {
	Node
	Cases []*SwitchCase
}

// SwitchCase is one label group of a switch: Labels counts the case and
// default labels heading the group, Stmts the governed statements.
type SwitchCase struct {
	Node
	Labels int
	Stmts  []Stmt
}

// ReturnStmt is a return statement.
type ReturnStmt struct {
	Node
}

// BreakStmt is a break statement.
type BreakStmt struct {
	Node
}

// ContinueStmt is a continue statement.
type ContinueStmt struct {
	Node
}

// YieldStmt is a yield statement inside an arrow switch.
type YieldStmt struct {
	Node
}

// ThrowStmt is a throw statement.
type ThrowStmt struct {
	Node
}

// AssertStmt is an assert statement.
type AssertStmt struct {
	Node
}

// SyncStmt is a synchronized block.
type SyncStmt struct {
	Node
	Body *Block
}

// LabeledStmt wraps a statement with a label. The wrapper is transparent:
// only the wrapped statement is classified.
type LabeledStmt struct {
	Node
	Stmt Stmt
}

// TryStmt is a try statement, with or without resources. Resources counts
// the resources declared with an initializer.
type TryStmt struct {
	Node
	Resources int
	Body      *Block
	Catches   []*CatchClause
	Finally   *Block
}

// CatchClause is one catch attachment of a try statement.
type CatchClause struct {
	Node
	Body *Block
}

// CtorCallStmt is an explicit this(...) or super(...) constructor
// delegation.
type CtorCallStmt struct {
	Node
}

func (*Block) stmtNode()         {}
func (*EmptyStmt) stmtNode()     {}
func (*LocalTypeStmt) stmtNode() {}
func (*LocalVarStmt) stmtNode()  {}
func (*ExprStmt) stmtNode()      {}
func (*IfStmt) stmtNode()        {}
func (*WhileStmt) stmtNode()     {}
func (*DoStmt) stmtNode()        {}
func (*ForStmt) stmtNode()       {}
func (*ForEachStmt) stmtNode()   {}
func (*SwitchStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()     {}
func (*ContinueStmt) stmtNode()  {}
func (*YieldStmt) stmtNode()     {}
func (*ThrowStmt) stmtNode()     {}
func (*AssertStmt) stmtNode()    {}
func (*SyncStmt) stmtNode()      {}
func (*LabeledStmt) stmtNode()   {}
func (*TryStmt) stmtNode()       {}
func (*CtorCallStmt) stmtNode()  {}
