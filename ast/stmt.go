package ast

type Block struct {
	Base
	Stmts []Stmt
}

type LocalVarDecl struct {
	Base
	Mods *Modifiers
	Type *TypeRef
	Vars []*VarDeclarator
}

type LocalClassDecl struct {
	Base
	Decl *ClassDecl
}

type ExprStmt struct {
	Base
	X Expr
}

type IfStmt struct {
	Base
	Cond Expr
	Then Stmt
	Else Stmt
}

type WhileStmt struct {
	Base
	Cond Expr
	Body Stmt
}

type DoStmt struct {
	Base
	Body Stmt
	Cond Expr
}

type ForStmt struct {
	Base
	Init   []Stmt
	Cond   Expr
	Update []Expr
	Body   Stmt
}

type ForEachStmt struct {
	Base
	Mods *Modifiers
	Type *TypeRef
	Name string
	Iter Expr
	Body Stmt
}

type ReturnStmt struct {
	Base
	Value Expr
}

type ThrowStmt struct {
	Base
	X Expr
}

type TryStmt struct {
	Base
	Body    *Block
	Catches []*CatchClause
	Finally *Block
}

type CatchClause struct {
	Base
	Param *Param
	Types []*TypeRef // 多重捕获 (A | B)
	Body  *Block
}

type SwitchStmt struct {
	Base
	Tag   Expr
	Cases []*SwitchCase
}

type SwitchCase struct {
	Base
	Labels  []Expr
	Default bool
	Body    []Stmt
}

type BreakStmt struct {
	Base
	Label string
}

type ContinueStmt struct {
	Base
	Label string
}

type LabeledStmt struct {
	Base
	Label string
	Body  Stmt
}

type EmptyStmt struct {
	Base
}

// ConstructorCall this(...) 或 super(...), Qualifier 为 outer.super(...) 中的 outer
type ConstructorCall struct {
	Base
	Super     bool
	Qualifier Expr
	Args      []Expr
}

// UnsupportedStmt 分析器不建模的语句 (assert, synchronized, yield ...)
type UnsupportedStmt struct {
	Base
	What string
	Body []Stmt
}

func (*Block) stmtNode()           {}
func (*LocalVarDecl) stmtNode()    {}
func (*LocalClassDecl) stmtNode()  {}
func (*ExprStmt) stmtNode()        {}
func (*IfStmt) stmtNode()          {}
func (*WhileStmt) stmtNode()       {}
func (*DoStmt) stmtNode()          {}
func (*ForStmt) stmtNode()         {}
func (*ForEachStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()      {}
func (*ThrowStmt) stmtNode()       {}
func (*TryStmt) stmtNode()         {}
func (*SwitchStmt) stmtNode()      {}
func (*BreakStmt) stmtNode()       {}
func (*ContinueStmt) stmtNode()    {}
func (*LabeledStmt) stmtNode()     {}
func (*EmptyStmt) stmtNode()       {}
func (*ConstructorCall) stmtNode() {}
func (*UnsupportedStmt) stmtNode() {}
