package model

import "strings"

// CtorName 构造函数在方法表中的名字
const CtorName = "<init>"

// MethodSymbol 方法或构造函数。Return 为 nil 当且仅当返回 void。
type MethodSymbol struct {
	Name        string
	Modifiers   Modifiers
	TypeParams  []string
	Return      Symbol
	Params      []*VariableSymbol
	Throws      []Symbol
	Owner       *ClassSymbol
	Generated   bool // 由分析器合成 (访问器、默认构造函数等)
	Constructor bool
	Varargs     bool
	Decl        Node // 合成方法为 nil
}

func (m *MethodSymbol) Kind() SymbolKind {
	if m.Constructor {
		return KindConstructor
	}
	return KindMethod
}

func (m *MethodSymbol) ParamTypes() []Symbol {
	types := make([]Symbol, len(m.Params))
	for i, p := range m.Params {
		types[i] = p.Type
	}
	return types
}

// SameParams 参数类型逐个同一性比较
func (m *MethodSymbol) SameParams(types []Symbol) bool {
	if len(types) != len(m.Params) {
		return false
	}
	for i, p := range m.Params {
		if !SameType(p.Type, types[i]) {
			if p.Type == nil || types[i] == nil || p.Type.Name() != types[i].Name() {
				return false
			}
		}
	}
	return true
}

// IsVoid 构造函数按 void 处理
func (m *MethodSymbol) IsVoid() bool { return m.Return == nil || m.Return == Void }

// Signature 诊断用签名, 例如 "Super(int, String)"; 构造函数使用类名
func (m *MethodSymbol) Signature() string {
	name := m.Name
	if m.Constructor && m.Owner != nil {
		name = m.Owner.DisplayName()
	}
	return FormatSignature(name, m.ParamTypes())
}

// FormatSignature 名字 + 参数类型列表
func FormatSignature(name string, types []Symbol) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = TypeName(t)
	}
	return name + "(" + strings.Join(names, ", ") + ")"
}
