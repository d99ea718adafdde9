package ast

// LitKind 字面量种类
type LitKind int

const (
	LitInt LitKind = iota
	LitLong
	LitFloat
	LitDouble
	LitChar
	LitString
	LitBool
	LitNull
)

type Literal struct {
	Base
	Kind  LitKind
	Value string
}

// Ident 简单名字 (变量、字段或类型名的第一段)
type Ident struct {
	Base
	Name string
}

// FieldAccess X.Name; 限定名 a.b.c 也表示为嵌套的 FieldAccess
type FieldAccess struct {
	Base
	X    Expr
	Name string
}

// MethodCall Recv 为 nil 表示无接收者调用; Recv 可以是 *SuperExpr
type MethodCall struct {
	Base
	Recv Expr
	Name string
	Args []Expr
}

type ThisExpr struct {
	Base
	Qualifier string // Outer.this 中的 Outer
}

type SuperExpr struct {
	Base
}

// NewObject new T(args) { body }; Outer 为 outer.new Inner() 中的 outer
type NewObject struct {
	Base
	Outer Expr
	Type  *TypeRef
	Args  []Expr
	Body  *ClassDecl // 匿名类体, 没有时为 nil
}

type NewArray struct {
	Base
	Elem      *TypeRef // 元素类型 (不含维度)
	DimExprs  []Expr
	ExtraDims int
	Init      *ArrayInit
}

type ArrayInit struct {
	Base
	Elems []Expr
}

type Index struct {
	Base
	X     Expr
	Index Expr
}

// Assign 赋值与复合赋值, Op 为 "=", "+=" 等
type Assign struct {
	Base
	Op  string
	LHS Expr
	RHS Expr
}

type Binary struct {
	Base
	Op string
	X  Expr
	Y  Expr
}

// Unary 前缀或后缀一元运算, ++/-- 也在这里
type Unary struct {
	Base
	Op      string
	X       Expr
	Postfix bool
}

type Cast struct {
	Base
	Type *TypeRef
	X    Expr
}

type InstanceOf struct {
	Base
	X    Expr
	Type *TypeRef
}

type Conditional struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

type Paren struct {
	Base
	X Expr
}

type ClassLit struct {
	Base
	Type *TypeRef
}

// UnsupportedExpr lambda、方法引用、switch 表达式等
type UnsupportedExpr struct {
	Base
	What string
}

func (*Literal) exprNode()         {}
func (*Ident) exprNode()           {}
func (*FieldAccess) exprNode()     {}
func (*MethodCall) exprNode()      {}
func (*ThisExpr) exprNode()        {}
func (*SuperExpr) exprNode()       {}
func (*NewObject) exprNode()       {}
func (*NewArray) exprNode()        {}
func (*ArrayInit) exprNode()       {}
func (*Index) exprNode()           {}
func (*Assign) exprNode()          {}
func (*Binary) exprNode()          {}
func (*Unary) exprNode()           {}
func (*Cast) exprNode()            {}
func (*InstanceOf) exprNode()      {}
func (*Conditional) exprNode()     {}
func (*Paren) exprNode()           {}
func (*ClassLit) exprNode()        {}
func (*UnsupportedExpr) exprNode() {}

// QualifiedName 把由 Ident/FieldAccess 组成的链还原为点分名字; 其它表达式返回 ""
func QualifiedName(e Expr) string {
	switch x := e.(type) {
	case *Ident:
		return x.Name
	case *FieldAccess:
		prefix := QualifiedName(x.X)
		if prefix == "" {
			return ""
		}
		return prefix + "." + x.Name
	}
	return ""
}
