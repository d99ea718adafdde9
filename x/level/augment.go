package level

import (
	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

// ImplicitModifiers 增强级别 (Elementary / Intermediate) 的隐式修饰符:
// 字段为 private final, 没写可见性的方法和顶层类为 public。
// Advanced 与 FullJava 不补任何修饰符。
func (p *Policy) ImplicitModifiers(bc core.BodyContext, n ast.Node) model.Modifiers {
	if !p.level.Augments() {
		return 0
	}

	switch x := n.(type) {
	case *ast.FieldDecl:
		if bc != core.ClassBody {
			return 0
		}
		mods := model.Final
		if !x.Mods.Flags().Has(model.Visibility) {
			mods |= model.Private
		}
		return mods
	case *ast.MethodDecl:
		if bc == core.ClassBody && !x.Mods.Flags().Has(model.Visibility) {
			return model.Public
		}
	case *ast.ClassDecl:
		if bc == core.TopLevel && !x.Mods.Flags().Has(model.Visibility) {
			return model.Public
		}
	}
	return 0
}
