// Package ast 定义了分析器消费的 Java 抽象语法树。
// 语法树由 parser 包从 tree-sitter 的具体语法树转换得到。
package ast

import "github.com/CodMac/level-lens/model"

// Node 所有语法树节点都带有源码位置
type Node interface {
	Loc() *model.Location
}

// Base 嵌入到每个节点中, 提供位置
type Base struct {
	Location *model.Location
}

func (b *Base) Loc() *model.Location { return b.Location }

// Stmt 语句节点
type Stmt interface {
	Node
	stmtNode()
}

// Expr 表达式节点
type Expr interface {
	Node
	exprNode()
}

// Member 类体成员
type Member interface {
	Node
	memberNode()
}

// ==========================================
// 1. 编译单元与类型引用
// ==========================================

type CompilationUnit struct {
	Base
	Path         string
	Package      *PackageDecl
	Imports      []*Import
	Types        []*ClassDecl
	SyntaxErrors []*SyntaxError
}

// SyntaxError tree-sitter 报告的 ERROR / MISSING 节点
type SyntaxError struct {
	Base
	Text    string
	Missing bool
}

type PackageDecl struct {
	Base
	Name string
}

type Import struct {
	Base
	Name     string // 不含 ".*"
	OnDemand bool
	Static   bool
}

// Modifiers 源码中显式写出的修饰符 (包括注解文本)
type Modifiers struct {
	Base
	Names       []string
	Annotations []string
}

func (m *Modifiers) Flags() model.Modifiers {
	var flags model.Modifiers
	if m == nil {
		return flags
	}
	for _, n := range m.Names {
		flags |= model.ParseModifier(n)
	}
	return flags
}

func (m *Modifiers) Empty() bool {
	return m == nil || (len(m.Names) == 0 && len(m.Annotations) == 0)
}

// TypeRef 源码中的类型引用, Name 为写出的 (可能部分限定的) 名字
type TypeRef struct {
	Base
	Name     string
	Dims     int
	TypeArgs []*TypeRef
}

func (t *TypeRef) String() string {
	if t == nil {
		return "void"
	}
	s := t.Name
	for i := 0; i < t.Dims; i++ {
		s += "[]"
	}
	return s
}

type TypeParam struct {
	Base
	Name   string
	Bounds []*TypeRef
}

// ==========================================
// 2. 声明 (Declarations)
// ==========================================

// ClassDecl 类或接口声明; 也用于局部类与匿名类的类体
type ClassDecl struct {
	Base
	Mods        *Modifiers
	Name        string
	Interface   bool
	TypeParams  []*TypeParam
	Super       *TypeRef
	Implements  []*TypeRef // 接口声明时为 extends 列表
	Body        []Member
	Unsupported string // enum/record/annotation 等不支持的声明种类
}

type FieldDecl struct {
	Base
	Mods *Modifiers
	Type *TypeRef
	Vars []*VarDeclarator
}

type VarDeclarator struct {
	Base
	Name string
	Dims int
	Init Expr
}

type Param struct {
	Base
	Mods    *Modifiers
	Type    *TypeRef
	Name    string
	Varargs bool
}

type MethodDecl struct {
	Base
	Mods       *Modifiers
	TypeParams []*TypeParam
	Result     *TypeRef // void 时 Name == "void"
	Name       string
	Params     []*Param
	Throws     []*TypeRef
	Body       *Block // 抽象方法为 nil
}

type ConstructorDecl struct {
	Base
	Mods       *Modifiers
	TypeParams []*TypeParam
	Name       string
	Params     []*Param
	Throws     []*TypeRef
	Body       *Block
}

// InitializerBlock 实例或静态初始化块
type InitializerBlock struct {
	Base
	Static bool
	Body   *Block
}

func (*ClassDecl) memberNode()        {}
func (*FieldDecl) memberNode()        {}
func (*MethodDecl) memberNode()       {}
func (*ConstructorDecl) memberNode()  {}
func (*InitializerBlock) memberNode() {}
