// Package level 实现各语言级别的结构策略。
// 四个级别允许的结构是单调递增的: 低级别允许的结构高级别一定允许,
// 所以一个按级别参数化的 Policy 就能覆盖 Elementary / Intermediate / Advanced;
// FullJava 接受一切 (标准编译器已经校验过它)。
package level

import (
	"fmt"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

const (
	MsgNotAllowed         = "%s cannot be used at the %s level"
	MsgModifierNotAllowed = "The keyword %s cannot be used at the %s level"
	MsgDeclNotAllowed     = "%s declarations cannot be used at the %s level"
)

// feature 一种受级别限制的语言结构, since 为最早允许它的级别
type feature struct {
	name  string
	since model.LanguageLevel
}

var (
	packages      = feature{"Package statements", model.Intermediate}
	interfaces    = feature{"Interfaces", model.Intermediate}
	abstracts     = feature{"abstract", model.Intermediate}
	visibility    = feature{"Visibility modifiers", model.Intermediate}
	fieldVis      = feature{"Visibility modifiers on fields", model.Advanced}
	statics       = feature{"static", model.Advanced}
	finals        = feature{"final", model.Advanced}
	anonymous     = feature{"Anonymous classes", model.Intermediate}
	nested        = feature{"Nested classes", model.Advanced}
	locals        = feature{"Local classes", model.Advanced}
	constructors  = feature{"Constructors", model.Advanced}
	arrays        = feature{"Arrays", model.Advanced}
	loops         = feature{"Loops", model.Advanced}
	switches      = feature{"Switch statements", model.Advanced}
	jumps         = feature{"break and continue statements", model.Advanced}
	labels        = feature{"Labeled statements", model.FullJava}
	exceptions    = feature{"Exceptions", model.Intermediate}
	initializers  = feature{"Initializer blocks", model.FullJava}
	conditionals  = feature{"The conditional operator ?:", model.Intermediate}
	instanceOfs   = feature{"instanceof", model.Intermediate}
	casts         = feature{"Casts", model.Intermediate}
	generics      = feature{"Generic types", model.FullJava}
	staticImports = feature{"Static imports", model.Advanced}
)

// Policy 单个语言级别的结构策略
type Policy struct {
	level model.LanguageLevel
}

func NewPolicy(level model.LanguageLevel) *Policy {
	return &Policy{level: level}
}

func init() {
	for _, lvl := range []model.LanguageLevel{model.Elementary, model.Intermediate, model.Advanced, model.FullJava} {
		core.RegisterPolicy(NewPolicy(lvl))
	}
}

func (p *Policy) Level() model.LanguageLevel {
	return p.level
}

func (p *Policy) allows(f feature) bool {
	return p.level >= f.since
}

// verdict 收集一个节点上的全部违规; 任一违规要求剪枝则整体剪枝
type verdict struct {
	p    *Policy
	v    core.Verdict
	msgs []string
}

func (vd *verdict) require(f feature, prune bool) {
	if vd.p.allows(f) {
		return
	}
	vd.report(fmt.Sprintf(MsgNotAllowed, f.name, vd.p.level), prune)
}

func (vd *verdict) report(msg string, prune bool) {
	vd.msgs = append(vd.msgs, msg)
	switch {
	case prune:
		vd.v = core.Prune
	case vd.v == core.Accept:
		vd.v = core.Recover
	}
}

// ==========================================
// 1. 裁决 (Admit)
// ==========================================

// Admit 声明上的非法修饰符与非法声明种类剪枝; 方法体内的非法语句与表达式只报告, 继续遍历
func (p *Policy) Admit(bc core.BodyContext, n ast.Node) (core.Verdict, []string) {
	if p.level == model.FullJava {
		return core.Accept, nil
	}
	vd := &verdict{p: p}

	switch x := n.(type) {
	// --- 顶层 ---
	case *ast.PackageDecl:
		vd.require(packages, true)
	case *ast.Import:
		if x.Static {
			vd.require(staticImports, true)
		}

	// --- 声明 ---
	case *ast.ClassDecl:
		p.classDecl(vd, bc, x)
	case *ast.FieldDecl:
		vd.modifiers(x.Mods, p.allowedModifiers(true), true)
		for _, d := range x.Vars {
			if d.Dims > 0 {
				vd.require(arrays, false)
			}
		}
	case *ast.MethodDecl:
		vd.modifiers(x.Mods, p.allowedModifiers(false), true)
		p.signature(vd, x.TypeParams, x.Params, x.Throws)
	case *ast.ConstructorDecl:
		vd.require(constructors, true)
		vd.modifiers(x.Mods, p.allowedModifiers(false), true)
		p.signature(vd, x.TypeParams, x.Params, x.Throws)
	case *ast.InitializerBlock:
		vd.require(initializers, true)
		if x.Static {
			vd.require(statics, true)
		}
	case *ast.TypeRef:
		p.typeRef(vd, x)

	// --- 语句 ---
	case *ast.LocalVarDecl:
		vd.modifiers(x.Mods, p.allowedModifiers(false)&model.Final, false)
		p.typeRef(vd, x.Type)
	case *ast.VarDeclarator:
		if x.Dims > 0 {
			vd.require(arrays, false)
		}
	case *ast.WhileStmt, *ast.DoStmt, *ast.ForStmt:
		vd.require(loops, false)
	case *ast.ForEachStmt:
		vd.require(loops, false)
		vd.modifiers(x.Mods, p.allowedModifiers(false)&model.Final, false)
		p.typeRef(vd, x.Type)
	case *ast.SwitchStmt:
		vd.require(switches, false)
	case *ast.BreakStmt, *ast.ContinueStmt:
		vd.require(jumps, false)
	case *ast.LabeledStmt:
		vd.require(labels, false)
	case *ast.TryStmt, *ast.ThrowStmt:
		vd.require(exceptions, false)
	case *ast.CatchClause:
		if x.Param != nil {
			vd.modifiers(x.Param.Mods, p.allowedModifiers(false)&model.Final, false)
		}
	case *ast.UnsupportedStmt:
		vd.report(fmt.Sprintf(MsgNotAllowed, capitalize(x.What)+"s", p.level), false)

	// --- 表达式 ---
	case *ast.NewObject:
		if x.Body != nil {
			vd.require(anonymous, true)
		}
		if x.Outer != nil {
			vd.require(nested, false)
		}
		p.typeRef(vd, x.Type)
	case *ast.NewArray, *ast.ArrayInit, *ast.Index:
		vd.require(arrays, false)
	case *ast.Conditional:
		vd.require(conditionals, false)
	case *ast.InstanceOf:
		vd.require(instanceOfs, false)
	case *ast.Cast:
		vd.require(casts, false)
		p.typeRef(vd, x.Type)
	case *ast.ThisExpr:
		if x.Qualifier != "" {
			vd.require(nested, false)
		}
	case *ast.UnsupportedExpr:
		vd.report(fmt.Sprintf(MsgNotAllowed, capitalize(x.What)+"s", p.level), false)
	}
	return vd.v, vd.msgs
}

// classDecl 声明种类不合法 (接口、嵌套类、局部类、enum 等) 一律剪枝
func (p *Policy) classDecl(vd *verdict, bc core.BodyContext, decl *ast.ClassDecl) {
	if decl.Unsupported != "" {
		vd.report(fmt.Sprintf(MsgDeclNotAllowed, capitalize(decl.Unsupported), p.level), true)
		return
	}
	if decl.Interface {
		vd.require(interfaces, true)
	}
	switch bc {
	case core.ClassBody, core.InterfaceBody:
		vd.require(nested, true)
	case core.MethodBody:
		vd.require(locals, true)
	}
	vd.modifiers(decl.Mods, p.allowedModifiers(false), true)
	if len(decl.TypeParams) > 0 {
		vd.require(generics, false)
	}
}

func (p *Policy) signature(vd *verdict, typeParams []*ast.TypeParam, params []*ast.Param, throws []*ast.TypeRef) {
	if len(typeParams) > 0 {
		vd.require(generics, false)
	}
	for _, param := range params {
		vd.modifiers(param.Mods, p.allowedModifiers(false)&model.Final, false)
		if param.Varargs {
			vd.require(arrays, false)
		}
	}
	if len(throws) > 0 {
		vd.require(exceptions, false)
	}
}

// typeRef 数组类型与类型实参; 类型本身仍然照常解析
func (p *Policy) typeRef(vd *verdict, ref *ast.TypeRef) {
	if ref == nil {
		return
	}
	if ref.Dims > 0 {
		vd.require(arrays, false)
	}
	if len(ref.TypeArgs) > 0 {
		vd.require(generics, false)
	}
}

// allowedModifiers 当前级别在声明上允许显式写出的修饰符;
// native/synchronized/transient/volatile/strictfp/default 只有 FullJava 允许
func (p *Policy) allowedModifiers(field bool) model.Modifiers {
	var allowed model.Modifiers
	if (!field && p.allows(visibility)) || p.allows(fieldVis) {
		allowed |= model.Visibility
	}
	if !field && p.allows(abstracts) {
		allowed |= model.Abstract
	}
	if p.allows(statics) {
		allowed |= model.Static
	}
	if p.allows(finals) {
		allowed |= model.Final
	}
	return allowed
}

// modifiers 每个不允许的关键字一条诊断
func (vd *verdict) modifiers(mods *ast.Modifiers, allowed model.Modifiers, prune bool) {
	if mods == nil {
		return
	}
	for _, name := range mods.Names {
		flag := model.ParseModifier(name)
		if flag == 0 || flag&allowed != 0 {
			continue
		}
		vd.report(fmt.Sprintf(MsgModifierNotAllowed, name, vd.p.level), prune)
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
