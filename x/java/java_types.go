package java

import (
	"slices"
	"strings"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

// =============================================================================
// 1. 符号表中的固定类型
// =============================================================================

// mustClass 取内置类; 内置库未装载属于分析器自身的错误
func mustClass(s *core.Session, qn string) *model.ClassSymbol {
	c, ok := s.Table.Lookup(qn)
	if !ok {
		core.Fatalf(nil, "builtin class %s is not loaded", qn)
	}
	return c
}

func optClass(s *core.Session, qn string) *model.ClassSymbol {
	c, _ := s.Table.Lookup(qn)
	return c
}

// =============================================================================
// 2. 类型变量 (擦除为 Object)
// =============================================================================

// isTypeVar 名字是否是外围方法或外围类链上声明的类型参数
func isTypeVar(name string, cls *model.ClassSymbol, method *model.MethodSymbol) bool {
	if strings.Contains(name, ".") {
		return false
	}
	if method != nil && slices.Contains(method.TypeParams, name) {
		return true
	}
	for c := cls; c != nil; c = c.Outer {
		if slices.Contains(c.TypeParams, name) {
			return true
		}
	}
	return false
}

func typeParamNames(params []*ast.TypeParam) []string {
	var names []string
	for _, p := range params {
		names = append(names, p.Name)
	}
	return names
}

// refName 类型引用的完整名字, 额外的维度来自变量声明符 (int a[])
func refName(ref *ast.TypeRef, extraDims int) string {
	return ref.Name + strings.Repeat("[]", ref.Dims+extraDims)
}

// =============================================================================
// 3. 类型关系
// =============================================================================

// known 类型是否可用于检查; 未知或未解析的类型不再产生级联诊断
func known(t model.Symbol) bool {
	return t != nil && model.IsResolved(t)
}

// hierarchyKnown 类的父类型链是否全部解析
func hierarchyKnown(c *model.ClassSymbol) bool {
	seen := make(map[*model.ClassSymbol]bool)
	var walk func(*model.ClassSymbol) bool
	walk = func(cur *model.ClassSymbol) bool {
		if cur == nil || seen[cur] {
			return true
		}
		seen[cur] = true
		if cur.Super != nil && !model.IsResolved(cur.Super) {
			return false
		}
		for _, i := range cur.Interfaces {
			if !model.IsResolved(i) {
				return false
			}
		}
		for _, sup := range cur.Supertypes() {
			if !walk(sup) {
				return false
			}
		}
		return true
	}
	return walk(c)
}

func isThrowable(s *core.Session, c *model.ClassSymbol) bool {
	t := optClass(s, throwableQN)
	return t != nil && c.IsSubtypeOf(t)
}

// isChecked 受检异常: Throwable 的子类, 但不是 RuntimeException 或 Error 的子类
func isChecked(s *core.Session, c *model.ClassSymbol) bool {
	if !isThrowable(s, c) {
		return false
	}
	if rt := optClass(s, runtimeQN); rt != nil && c.IsSubtypeOf(rt) {
		return false
	}
	if e := optClass(s, errorQN); e != nil && c.IsSubtypeOf(e) {
		return false
	}
	return true
}

// isTestFixture 父类链中包含已解析的 junit.framework.TestCase
func isTestFixture(s *core.Session, c *model.ClassSymbol) bool {
	tc := optClass(s, testCaseQN)
	return tc != nil && c != tc && c.IsSubtypeOf(tc)
}
