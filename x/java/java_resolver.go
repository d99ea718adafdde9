package java

import (
	"strings"

	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

type SymbolResolver struct{}

func NewJavaSymbolResolver() *SymbolResolver {
	return &SymbolResolver{}
}

// =============================================================================
// 1. 基础接口实现 (Basic Interface)
// =============================================================================

func (j *SymbolResolver) BuildQualifiedName(parentQN, name string, nested bool) string {
	if parentQN == "" {
		return name
	}
	if nested {
		return parentQN + "$" + name
	}
	return parentQN + "." + name
}

// ResolveType 为外部统一入口: 找不到时返回占位符号并登记 continuation
func (j *SymbolResolver) ResolveType(s *core.Session, fc *core.FileContext, scope *model.ClassSymbol, locals *model.LocalScope, name string, node model.Node, resume func(model.Symbol)) model.Symbol {
	if sym := j.LookupType(s, fc, scope, locals, name); sym != nil {
		return sym
	}

	elem, dims := splitDims(name)
	stub := s.Continuations.Stub(elem)
	if resume != nil {
		s.Continuations.Register(&core.Continuation{
			Name:   elem,
			File:   fc,
			Scope:  scope,
			Locals: locals,
			Node:   node,
			Stub:   stub,
			Resume: func(sym model.Symbol) {
				resume(wrapDims(s, sym, dims))
			},
		})
	}
	return wrapDims(s, stub, dims)
}

// LookupType 只查找, 不登记。返回 nil 表示当前还找不到 (名字可能稍后才被定义)。
func (j *SymbolResolver) LookupType(s *core.Session, fc *core.FileContext, scope *model.ClassSymbol, locals *model.LocalScope, name string) model.Symbol {
	elem, dims := splitDims(name)
	if elem == "" {
		return nil
	}

	// 1. 基本类型
	if p, ok := model.PrimitiveByName(elem); ok {
		return wrapDims(s, p, dims)
	}

	c, deferred := j.lookupClass(s, fc, scope, locals, elem)
	if c == nil || deferred {
		return nil
	}
	return wrapDims(s, c, dims)
}

// =============================================================================
// 2. 核心查找流程 (Core Resolution Flow)
// =============================================================================

// lookupClass 按顺序查找: 块内局部类 -> 外围类链 -> 单类型导入 -> 按需导入 -> 同包 -> 全限定名。
// deferred 为 true 表示名字指向一个已知但尚未处理的类型, 必须等待链接阶段。
func (j *SymbolResolver) lookupClass(s *core.Session, fc *core.FileContext, scope *model.ClassSymbol, locals *model.LocalScope, name string) (*model.ClassSymbol, bool) {
	first, rest := name, ""
	if i := strings.Index(name, "."); i >= 0 {
		first, rest = name[:i], name[i+1:]
	}

	if local := locals.Lookup(first); local != nil {
		return j.walkNested(local, rest)
	}

	// 2. 外围类链: 每一层先找嵌套类型 (含继承来的), 局部类与匿名类再找声明处的块, 然后向外
	uncertain := false
	for cls := scope; cls != nil; cls = cls.Outer {
		found, unsure := j.memberType(cls, first, make(map[*model.ClassSymbol]bool))
		if found != nil {
			return j.walkNested(found, rest)
		}
		uncertain = uncertain || unsure
		if local := cls.Scope.Lookup(first); local != nil {
			return j.walkNested(local, rest)
		}
	}

	// 3. 单类型导入
	if fc != nil {
		if imp, ok := fc.SingleImport(first); ok {
			if c, deferred := j.lookupQualified(s, joinName(imp.RawImportPath, rest)); c != nil || deferred {
				return c, deferred
			}
		}

		// 4. 按需导入 (含隐式的 java.lang)
		for _, pkg := range fc.OnDemandPackages() {
			if c, deferred := j.lookupQualified(s, pkg+"."+name); c != nil || deferred {
				return c, deferred
			}
		}

		// 5. 同包
		if fc.PackageName != "" {
			if c, deferred := j.lookupQualified(s, fc.PackageName+"."+name); c != nil || deferred {
				return c, deferred
			}
		}
	}

	// 6. 按给出的全限定名 (默认包中的类也走这里)
	if c, deferred := j.lookupQualified(s, name); c != nil || deferred {
		return c, deferred
	}
	return nil, uncertain
}

// memberType 在类及其父类型中查找直接嵌套的类型。
// unsure 表示查找途中遇到了尚未解析的父类型。
func (j *SymbolResolver) memberType(cls *model.ClassSymbol, name string, seen map[*model.ClassSymbol]bool) (*model.ClassSymbol, bool) {
	if cls == nil || seen[cls] {
		return nil, false
	}
	seen[cls] = true

	if n := cls.NestedNamed(name); n != nil {
		cls.AddNested(n)
		return n, false
	}

	unsure := false
	supers := append([]model.Symbol{cls.Super}, cls.Interfaces...)
	for _, sup := range supers {
		switch t := sup.(type) {
		case *model.ClassSymbol:
			found, u := j.memberType(t, name, seen)
			if found != nil {
				return found, false
			}
			unsure = unsure || u
		case *model.Unresolved:
			unsure = true
		}
	}
	return nil, unsure
}

// walkNested 沿 A.B.C 的剩余部分逐级进入嵌套类型
func (j *SymbolResolver) walkNested(c *model.ClassSymbol, rest string) (*model.ClassSymbol, bool) {
	if rest == "" {
		return c, false
	}
	for _, part := range strings.Split(rest, ".") {
		next, unsure := j.memberType(c, part, make(map[*model.ClassSymbol]bool))
		if next == nil {
			return nil, unsure
		}
		c = next
	}
	return c, false
}

// lookupQualified 点分名字: 最长的已定义前缀作为顶层类, 其余部分作为嵌套类型
func (j *SymbolResolver) lookupQualified(s *core.Session, dotted string) (*model.ClassSymbol, bool) {
	parts := strings.Split(dotted, ".")
	for i := len(parts); i >= 1; i-- {
		head := strings.Join(parts[:i], ".")
		if c, ok := s.Table.Lookup(head); ok {
			return j.walkNested(c, strings.Join(parts[i:], "."))
		}
		if s.IsPending(head) {
			return nil, true
		}
	}
	return nil, false
}

// =============================================================================
// 3. 校验与底层工具 (Utilities)
// =============================================================================

func splitDims(name string) (string, int) {
	name = strings.TrimSpace(name)
	dims := 0
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSpace(strings.TrimSuffix(name, "[]"))
		dims++
	}
	if i := strings.Index(name, "<"); i >= 0 {
		name = name[:i]
	}
	return name, dims
}

func wrapDims(s *core.Session, t model.Symbol, dims int) model.Symbol {
	for i := 0; i < dims; i++ {
		t = s.Table.ArrayOf(t)
	}
	return t
}

func joinName(prefix, rest string) string {
	if rest == "" {
		return prefix
	}
	return prefix + "." + rest
}
