package java

import (
	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

// typeRules 类型之间的转换规则 (赋值、方法调用、强制转换、数值提升)
type typeRules struct {
	s *core.Session
}

var boxes = map[*model.PrimitiveSymbol]string{
	model.Boolean: "java.lang.Boolean",
	model.Byte:    "java.lang.Byte",
	model.Short:   "java.lang.Short",
	model.Char:    "java.lang.Character",
	model.Int:     "java.lang.Integer",
	model.Long:    "java.lang.Long",
	model.Float:   "java.lang.Float",
	model.Double:  "java.lang.Double",
}

// ==========================================
// 1. 装箱与拆箱 (Boxing)
// ==========================================

func (r typeRules) box(p *model.PrimitiveSymbol) *model.ClassSymbol {
	if qn, ok := boxes[p]; ok {
		return optClass(r.s, qn)
	}
	return nil
}

// unbox 包装类对应的基本类型; 基本类型原样返回, 其它返回 nil
func (r typeRules) unbox(t model.Symbol) *model.PrimitiveSymbol {
	switch x := t.(type) {
	case *model.PrimitiveSymbol:
		return x
	case *model.ClassSymbol:
		for p, qn := range boxes {
			if x.QualifiedName == qn {
				return p
			}
		}
	}
	return nil
}

// boxed 基本类型换成对应的包装类, 其它类型原样返回
func (r typeRules) boxed(t model.Symbol) model.Symbol {
	if p, ok := t.(*model.PrimitiveSymbol); ok {
		if c := r.box(p); c != nil {
			return c
		}
	}
	return t
}

func (r typeRules) isString(t model.Symbol) bool {
	c, ok := t.(*model.ClassSymbol)
	return ok && c.QualifiedName == stringQN
}

// ==========================================
// 2. 子类型与赋值 (Subtyping & assignment)
// ==========================================

// strict 恒等、基本类型拓宽、引用类型拓宽; 未知类型总是成立
func (r typeRules) strict(from, to model.Symbol) bool {
	if !known(from) || !known(to) || model.SameType(from, to) {
		return true
	}
	if from == model.Null {
		return model.IsReference(to)
	}
	switch f := from.(type) {
	case *model.PrimitiveSymbol:
		p, ok := to.(*model.PrimitiveSymbol)
		return ok && f.WidensTo(p)
	case *model.ClassSymbol:
		t, ok := to.(*model.ClassSymbol)
		if !ok {
			return false
		}
		return t.QualifiedName == objectQN || f.IsSubtypeOf(t) || !hierarchyKnown(f)
	case *model.ArraySymbol:
		switch t := to.(type) {
		case *model.ClassSymbol:
			switch t.QualifiedName {
			case objectQN, "java.lang.Cloneable", "java.io.Serializable":
				return true
			}
		case *model.ArraySymbol:
			if _, prim := f.Elem.(*model.PrimitiveSymbol); prim {
				return model.SameType(f.Elem, t.Elem)
			}
			if _, prim := t.Elem.(*model.PrimitiveSymbol); prim {
				return false
			}
			return r.strict(f.Elem, t.Elem)
		}
	}
	return false
}

// loose 在 strict 之上允许装箱与拆箱
func (r typeRules) loose(from, to model.Symbol) bool {
	if r.strict(from, to) {
		return true
	}
	if p, ok := from.(*model.PrimitiveSymbol); ok && p != model.Null {
		if b := r.box(p); b != nil {
			return r.strict(b, to)
		}
		return false
	}
	if _, ok := from.(*model.ClassSymbol); ok {
		if p := r.unbox(from); p != nil {
			if tp, ok := to.(*model.PrimitiveSymbol); ok {
				return p.WidensTo(tp)
			}
		}
	}
	return false
}

// assignable 赋值上下文: loose 转换, 再加上整型常量向 byte/short/char 的收窄
func (r typeRules) assignable(from, to model.Symbol, e ast.Expr) bool {
	if r.loose(from, to) {
		return true
	}
	if !isIntConstant(e) {
		return false
	}
	switch to {
	case model.Byte, model.Short, model.Char:
		return true
	}
	if c, ok := to.(*model.ClassSymbol); ok {
		switch c.QualifiedName {
		case "java.lang.Byte", "java.lang.Short", "java.lang.Character":
			return true
		}
	}
	return false
}

// castable 强制转换是否可能成功
func (r typeRules) castable(from, to model.Symbol) bool {
	if !known(from) || !known(to) || r.loose(from, to) || r.loose(to, from) {
		return true
	}
	fp, fok := from.(*model.PrimitiveSymbol)
	tp, tok := to.(*model.PrimitiveSymbol)
	if fok && tok {
		return fp.IsNumeric() && tp.IsNumeric()
	}
	if fok || tok {
		return false
	}
	fc, fcls := from.(*model.ClassSymbol)
	tc, tcls := to.(*model.ClassSymbol)
	if fcls && tcls {
		if fc.IsInterface && !tc.Modifiers.Has(model.Final) {
			return true
		}
		if tc.IsInterface && !fc.Modifiers.Has(model.Final) {
			return true
		}
		return false
	}
	fa, farr := from.(*model.ArraySymbol)
	ta, tarr := to.(*model.ArraySymbol)
	if farr && tarr {
		if _, prim := fa.Elem.(*model.PrimitiveSymbol); prim {
			return model.SameType(fa.Elem, ta.Elem)
		}
		return r.castable(fa.Elem, ta.Elem)
	}
	return false
}

// ==========================================
// 3. 数值提升 (Numeric promotion)
// ==========================================

// unaryPromote byte/short/char 提升为 int; 非数值类型返回 nil
func (r typeRules) unaryPromote(t model.Symbol) *model.PrimitiveSymbol {
	p := r.unbox(t)
	if p == nil || !p.IsNumeric() {
		return nil
	}
	if p.WidensTo(model.Int) {
		return model.Int
	}
	return p
}

func (r typeRules) binaryPromote(a, b model.Symbol) *model.PrimitiveSymbol {
	pa, pb := r.unaryPromote(a), r.unaryPromote(b)
	if pa == nil || pb == nil {
		return nil
	}
	for _, p := range []*model.PrimitiveSymbol{model.Double, model.Float, model.Long} {
		if pa == p || pb == p {
			return p
		}
	}
	return model.Int
}

func (r typeRules) isIntegral(t model.Symbol) bool {
	p := r.unbox(t)
	return p != nil && p.IsIntegral()
}

func (r typeRules) isBoolean(t model.Symbol) bool {
	return r.unbox(t) == model.Boolean
}

// prim 避免把 nil 的 *PrimitiveSymbol 装进非 nil 的接口值
func prim(p *model.PrimitiveSymbol) model.Symbol {
	if p == nil {
		return nil
	}
	return p
}

// isIntConstant 整型或字符常量 (允许括号与正负号)
func isIntConstant(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.Literal:
		return x.Kind == ast.LitInt || x.Kind == ast.LitChar
	case *ast.Paren:
		return isIntConstant(x.X)
	case *ast.Unary:
		return (x.Op == "-" || x.Op == "+") && isIntConstant(x.X)
	}
	return false
}

// isTrue 常量 true (while(true) 之类的循环只能通过 break 退出)
func isTrue(e ast.Expr) bool {
	switch x := e.(type) {
	case nil:
		return true
	case *ast.Literal:
		return x.Kind == ast.LitBool && x.Value == "true"
	case *ast.Paren:
		return isTrue(x.X)
	}
	return false
}
