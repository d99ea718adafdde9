package java

import (
	"github.com/CodMac/level-lens/model"
)

// AccessChecker 按 public/protected/package/private 规则判断可见性
type AccessChecker struct{}

// CanAccessMember from 中的代码能否访问 owner 声明的、修饰符为 mods 的成员
func (a AccessChecker) CanAccessMember(from, owner *model.ClassSymbol, mods model.Modifiers) bool {
	if from == nil || owner == nil {
		return true
	}
	switch {
	case mods.Has(model.Public):
		return true
	case mods.Has(model.Private):
		return from.Outermost() == owner.Outermost()
	case from.Package == owner.Package:
		return true
	case mods.Has(model.Protected):
		for cls := from; cls != nil; cls = cls.Outer {
			if cls.IsSubtypeOf(owner) {
				return true
			}
		}
	}
	return false
}

// CanAccessType 嵌套类型需要沿外部类链逐级可见;
// private 嵌套类型只在其直接外部类 (含其内部) 中可见
func (a AccessChecker) CanAccessType(from, target *model.ClassSymbol) bool {
	if from == nil || target == nil {
		return true
	}
	for t := target; t != nil; t = t.Outer {
		if t.Outer == nil {
			if !t.Modifiers.Has(model.Public) && from.Package != t.Package {
				return false
			}
			continue
		}
		if t.Modifiers.Has(model.Private) {
			if !from.EnclosedBy(t.Outer) {
				return false
			}
			continue
		}
		if !a.CanAccessMember(from, t.Outer, t.Modifiers) {
			return false
		}
	}
	return true
}
