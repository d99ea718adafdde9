package model

// VariableSymbol 字段、形参或局部变量
type VariableSymbol struct {
	Name           string
	Modifiers      Modifiers
	Type           Symbol
	HasValue       bool // 是否已被赋值 (字段在构造函数检查之后回填)
	HasInitializer bool
	Field          bool
	Param          bool
	Class          *ClassSymbol  // 字段的所属类
	Method         *MethodSymbol // 形参的所属方法
	Decl           Node
}

func (v *VariableSymbol) Kind() SymbolKind {
	if v.Field {
		return KindField
	}
	return KindVariable
}

func (v *VariableSymbol) IsFinal() bool  { return v.Modifiers.Has(Final) }
func (v *VariableSymbol) IsStatic() bool { return v.Modifiers.Has(Static) }

// IsBlankFinal 没有初始化表达式的 final 变量, 需要在之后恰好赋值一次
func (v *VariableSymbol) IsBlankFinal() bool {
	return v.IsFinal() && !v.HasInitializer && !v.Param
}
