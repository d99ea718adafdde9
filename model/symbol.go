package model

import "strings"

// Symbol 是类型符号的和类型 (sum type):
// *ClassSymbol, *ArraySymbol, *PrimitiveSymbol, *Unresolved。
// 访问类的成员必须先做类型断言，未解析的占位符号没有任何成员可读。
type Symbol interface {
	Name() string
	Kind() SymbolKind
	symbol()
}

// ==========================================
// 1. 基本类型 (Primitive)
// ==========================================

type PrimitiveSymbol struct {
	name string
	rank int // 数值拓宽顺序, 0 表示非数值类型
}

var (
	Boolean = &PrimitiveSymbol{name: "boolean"}
	Byte    = &PrimitiveSymbol{name: "byte", rank: 1}
	Short   = &PrimitiveSymbol{name: "short", rank: 2}
	Char    = &PrimitiveSymbol{name: "char", rank: 2}
	Int     = &PrimitiveSymbol{name: "int", rank: 3}
	Long    = &PrimitiveSymbol{name: "long", rank: 4}
	Float   = &PrimitiveSymbol{name: "float", rank: 5}
	Double  = &PrimitiveSymbol{name: "double", rank: 6}
	Void    = &PrimitiveSymbol{name: "void"}
	Null    = &PrimitiveSymbol{name: "null"}
)

var primitives = map[string]*PrimitiveSymbol{
	"boolean": Boolean, "byte": Byte, "short": Short, "char": Char,
	"int": Int, "long": Long, "float": Float, "double": Double, "void": Void,
}

// PrimitiveByName 查找基本类型 (不包含 null 类型)
func PrimitiveByName(name string) (*PrimitiveSymbol, bool) {
	p, ok := primitives[name]
	return p, ok
}

func (p *PrimitiveSymbol) Name() string     { return p.name }
func (p *PrimitiveSymbol) Kind() SymbolKind { return KindPrimitive }
func (p *PrimitiveSymbol) symbol()          {}

func (p *PrimitiveSymbol) IsNumeric() bool  { return p.rank > 0 }
func (p *PrimitiveSymbol) IsIntegral() bool { return p.rank > 0 && p.rank <= 4 }

// WidensTo 报告 p 是否可以通过基本类型拓宽转换为 to
func (p *PrimitiveSymbol) WidensTo(to *PrimitiveSymbol) bool {
	if p == to {
		return true
	}
	if !p.IsNumeric() || !to.IsNumeric() {
		return false
	}
	// char 不能拓宽为 short, byte/short 不能拓宽为 char
	if p == Char && to == Short || to == Char {
		return false
	}
	return p.rank < to.rank
}

// ==========================================
// 2. 数组类型 (Array)
// ==========================================

type ArraySymbol struct {
	Elem Symbol
	name string
}

// NewArraySymbol 构造数组类型; 多维数组递归包装
func NewArraySymbol(elem Symbol) *ArraySymbol {
	return &ArraySymbol{Elem: elem, name: elem.Name() + "[]"}
}

func (a *ArraySymbol) Name() string     { return a.name }
func (a *ArraySymbol) Kind() SymbolKind { return KindArray }
func (a *ArraySymbol) symbol()          {}

// ==========================================
// 3. 未解析占位 (Unresolved / continuation stub)
// ==========================================

// Unresolved 表示一个在定义被处理之前就被引用的类型名。
// 它只携带名字, 直到 Linker 把引用处替换成真实的 ClassSymbol。
type Unresolved struct {
	name string
}

func NewUnresolved(name string) *Unresolved { return &Unresolved{name: name} }

func (u *Unresolved) Name() string     { return u.name }
func (u *Unresolved) Kind() SymbolKind { return KindUnresolved }
func (u *Unresolved) symbol()          {}

// ==========================================
// 4. 工具函数
// ==========================================

// SameType 类型同一性: 同一实例, 或结构相同的数组
func SameType(a, b Symbol) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	aa, ok1 := a.(*ArraySymbol)
	ba, ok2 := b.(*ArraySymbol)
	if ok1 && ok2 {
		return SameType(aa.Elem, ba.Elem)
	}
	return false
}

// IsResolved 报告类型中是否不含未解析占位
func IsResolved(s Symbol) bool {
	switch t := s.(type) {
	case nil:
		return false
	case *Unresolved:
		return false
	case *ArraySymbol:
		return IsResolved(t.Elem)
	}
	return true
}

// IsReference 引用类型: 类、接口、数组、null
func IsReference(s Symbol) bool {
	switch t := s.(type) {
	case *ClassSymbol, *ArraySymbol:
		return true
	case *PrimitiveSymbol:
		return t == Null
	}
	return false
}

// TypeName 用于诊断信息的类型显示名 (去掉包名)
func TypeName(s Symbol) string {
	switch t := s.(type) {
	case nil:
		return "void"
	case *ClassSymbol:
		return t.DisplayName()
	case *ArraySymbol:
		return TypeName(t.Elem) + "[]"
	}
	return s.Name()
}

// SimpleName 返回限定名的最后一段 (以 '.' 或 '$' 分隔)
func SimpleName(qn string) string {
	if i := strings.LastIndexAny(qn, ".$"); i >= 0 {
		return qn[i+1:]
	}
	return qn
}
