package model

import "strings"

// ClassSymbol 类或接口的符号。身份由 QualifiedName 决定 (嵌套类用 '$' 连接)。
type ClassSymbol struct {
	QualifiedName string
	SimpleName    string // 相对外部类的名字: "Inner", "1" (匿名), "1Local" (局部)
	Package       string
	Modifiers     Modifiers
	TypeParams    []string

	Super      Symbol // 只有 java.lang.Object 与接口为 nil
	Interfaces []Symbol
	Fields     []*VariableSymbol
	Methods    []*MethodSymbol
	Nested     []*ClassSymbol
	Outer      *ClassSymbol

	IsInterface  bool
	IsLocal      bool
	IsAnonymous  bool
	External     bool // 内置库类 (不是由源码定义)
	MembersKnown bool // External 为 true 时, 成员表是否完整
	Level        LanguageLevel
	File         string
	Decl         Node
	Scope        *LocalScope // 局部类与匿名类: 声明处可见的局部类

	methodIndex map[string][]*MethodSymbol
	fieldIndex  map[string]*VariableSymbol
	nestedIndex map[string]*ClassSymbol
	localSeq    int
	anonSeq     int
}

func NewClassSymbol(qualifiedName, simpleName, pkg string) *ClassSymbol {
	return &ClassSymbol{
		QualifiedName: qualifiedName,
		SimpleName:    simpleName,
		Package:       pkg,
		MembersKnown:  true,
		methodIndex:   make(map[string][]*MethodSymbol),
		fieldIndex:    make(map[string]*VariableSymbol),
		nestedIndex:   make(map[string]*ClassSymbol),
	}
}

func (c *ClassSymbol) Name() string { return c.QualifiedName }

func (c *ClassSymbol) Kind() SymbolKind {
	if c.IsInterface {
		return KindInterface
	}
	return KindClass
}

func (c *ClassSymbol) symbol() {}

// DisplayName 去掉包前缀的名字, 例如 "Outer$Inner"
func (c *ClassSymbol) DisplayName() string {
	if c.Package != "" && strings.HasPrefix(c.QualifiedName, c.Package+".") {
		return c.QualifiedName[len(c.Package)+1:]
	}
	return c.QualifiedName
}

// ==========================================
// 1. 成员注册 (Members)
// ==========================================

// AddField 注册字段; 同名字段已存在时返回已有的字段且不做修改
func (c *ClassSymbol) AddField(v *VariableSymbol) *VariableSymbol {
	if prev, ok := c.fieldIndex[v.Name]; ok {
		return prev
	}
	v.Class = c
	v.Field = true
	c.Fields = append(c.Fields, v)
	c.fieldIndex[v.Name] = v
	return nil
}

// Field 按名字查找本类声明的字段 (不含继承)
func (c *ClassSymbol) Field(name string) *VariableSymbol {
	return c.fieldIndex[name]
}

// AddMethod 注册方法; 名字与参数类型都相同的方法已存在时返回冲突的方法且不做修改
func (c *ClassSymbol) AddMethod(m *MethodSymbol) *MethodSymbol {
	if prev := c.FindMethod(m.Name, m.ParamTypes()); prev != nil {
		return prev
	}
	m.Owner = c
	c.Methods = append(c.Methods, m)
	c.methodIndex[m.Name] = append(c.methodIndex[m.Name], m)
	return nil
}

// MethodsNamed 按名字返回本类声明的方法 (构造函数统一以 CtorName 命名)
func (c *ClassSymbol) MethodsNamed(name string) []*MethodSymbol {
	return c.methodIndex[name]
}

// FindMethod 名字 + 参数类型 (同一性比较) 精确匹配
func (c *ClassSymbol) FindMethod(name string, params []Symbol) *MethodSymbol {
	for _, m := range c.methodIndex[name] {
		if m.SameParams(params) {
			return m
		}
	}
	return nil
}

// Constructor 按参数类型精确查找构造函数
func (c *ClassSymbol) Constructor(params []Symbol) *MethodSymbol {
	return c.FindMethod(CtorName, params)
}

// Constructors 返回所有构造函数 (包括生成的)
func (c *ClassSymbol) Constructors() []*MethodSymbol {
	var ctors []*MethodSymbol
	for _, m := range c.Methods {
		if m.Constructor {
			ctors = append(ctors, m)
		}
	}
	return ctors
}

// GeneratedMethods / UserMethods 供代码生成器区分需要合成的方法
func (c *ClassSymbol) GeneratedMethods() []*MethodSymbol {
	var out []*MethodSymbol
	for _, m := range c.Methods {
		if m.Generated {
			out = append(out, m)
		}
	}
	return out
}

func (c *ClassSymbol) UserMethods() []*MethodSymbol {
	var out []*MethodSymbol
	for _, m := range c.Methods {
		if !m.Generated {
			out = append(out, m)
		}
	}
	return out
}

// AddNested 注册嵌套类型, 幂等
func (c *ClassSymbol) AddNested(n *ClassSymbol) {
	if _, ok := c.nestedIndex[n.SimpleName]; ok {
		return
	}
	c.nestedIndex[n.SimpleName] = n
	c.Nested = append(c.Nested, n)
}

// NestedNamed 按相对名查找直接嵌套的类型
func (c *ClassSymbol) NestedNamed(simple string) *ClassSymbol {
	return c.nestedIndex[simple]
}

// NextLocalIndex 局部类的序号, 按源码顺序单调递增
func (c *ClassSymbol) NextLocalIndex() int {
	c.localSeq++
	return c.localSeq
}

// NextAnonymousIndex 匿名类的序号, 与局部类分开计数
func (c *ClassSymbol) NextAnonymousIndex() int {
	c.anonSeq++
	return c.anonSeq
}

// ==========================================
// 2. 层级关系 (Hierarchy)
// ==========================================

// SuperClass 已解析的父类; 未解析或不存在时返回 nil
func (c *ClassSymbol) SuperClass() *ClassSymbol {
	if sc, ok := c.Super.(*ClassSymbol); ok {
		return sc
	}
	return nil
}

// Supertypes 已解析的直接父类型 (父类在前, 接口在后)
func (c *ClassSymbol) Supertypes() []*ClassSymbol {
	var out []*ClassSymbol
	if sc := c.SuperClass(); sc != nil {
		out = append(out, sc)
	}
	for _, i := range c.Interfaces {
		if ic, ok := i.(*ClassSymbol); ok {
			out = append(out, ic)
		}
	}
	return out
}

// IsSubtypeOf 自反传递的子类型关系, 对继承环安全
func (c *ClassSymbol) IsSubtypeOf(other *ClassSymbol) bool {
	seen := make(map[*ClassSymbol]bool)
	var walk func(*ClassSymbol) bool
	walk = func(cur *ClassSymbol) bool {
		if cur == nil || seen[cur] {
			return false
		}
		if cur == other {
			return true
		}
		seen[cur] = true
		for _, s := range cur.Supertypes() {
			if walk(s) {
				return true
			}
		}
		return false
	}
	return walk(c)
}

// Outermost 最外层的顶层类
func (c *ClassSymbol) Outermost() *ClassSymbol {
	cur := c
	for cur.Outer != nil {
		cur = cur.Outer
	}
	return cur
}

// IsInner 非静态的内部类 (需要外部实例才能构造)
func (c *ClassSymbol) IsInner() bool {
	if c.Outer == nil || c.IsInterface || c.Outer.IsInterface {
		return false
	}
	return !c.Modifiers.Has(Static)
}

// IsAbstract 抽象类或接口
func (c *ClassSymbol) IsAbstract() bool {
	return c.IsInterface || c.Modifiers.Has(Abstract)
}

// EnclosedBy 报告 c 是否在词法上位于 outer 内 (含自身)
func (c *ClassSymbol) EnclosedBy(outer *ClassSymbol) bool {
	for cur := c; cur != nil; cur = cur.Outer {
		if cur == outer {
			return true
		}
	}
	return false
}
