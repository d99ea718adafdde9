package java

import (
	"fmt"
	"strconv"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

type Collector struct {
	resolver core.SymbolResolver
}

func NewJavaCollector() *Collector {
	resolver, err := core.GetSymbolResolver(core.LangJava)
	if err != nil {
		panic(err)
	}
	return &Collector{resolver: resolver}
}

// collectWalk 单个文件的一次结构遍历
type collectWalk struct {
	*Collector
	s      *core.Session
	fc     *core.FileContext
	policy core.Policy
}

// ==========================================
// 1. 核心生命周期 (Core Workflow)
// ==========================================

func (c *Collector) CollectDefinitions(s *core.Session, fc *core.FileContext) error {
	policy, err := core.GetPolicy(fc.Level)
	if err != nil {
		return fmt.Errorf("collect %s: %w", fc.FilePath, err)
	}
	if fc.Unit == nil {
		return fmt.Errorf("collect %s: file has no syntax tree", fc.FilePath)
	}
	w := &collectWalk{Collector: c, s: s, fc: fc, policy: policy}

	// 语法错误照常报告, 结构遍历继续处理转换出来的部分
	for _, se := range fc.Unit.SyntaxErrors {
		msg := fmt.Sprintf(MsgSyntaxError, se.Text)
		if se.Missing {
			msg = fmt.Sprintf(MsgSyntaxMissing, se.Text)
		}
		s.Diagnostics.Add(msg, se)
	}

	// 第一步: 包声明与导入
	if fc.Unit.Package != nil {
		w.admit(core.TopLevel, fc.Unit.Package)
	}
	for _, imp := range fc.Unit.Imports {
		w.admit(core.TopLevel, imp)
	}

	// 第二步: 顶层类型按源码顺序处理
	for _, decl := range fc.Unit.Types {
		qn := c.resolver.BuildQualifiedName(fc.PackageName, decl.Name, false)
		if w.admit(core.TopLevel, decl) != core.Prune {
			if cls := w.declareMember(core.TopLevel, decl, nil); cls != nil {
				w.completeClass(cls, decl)
			}
		}
		s.ClearPending(qn)
	}
	return nil
}

// admit 询问级别策略; Prune 时节点被标记, 之后针对它的诊断 (以及类型检查) 都会跳过
func (w *collectWalk) admit(bc core.BodyContext, n ast.Node) core.Verdict {
	verdict, msgs := w.policy.Admit(bc, n)
	for i, msg := range msgs {
		if verdict == core.Prune && i == len(msgs)-1 {
			w.s.Diagnostics.AddAndIgnore(msg, n)
			continue
		}
		w.s.Diagnostics.Add(msg, n)
	}
	return verdict
}

// ==========================================
// 2. 类与接口 (Classes)
// ==========================================

// declareMember 创建顶层类或成员类的符号并登记到符号表; 重复定义时返回 nil
func (w *collectWalk) declareMember(bc core.BodyContext, decl *ast.ClassDecl, outer *model.ClassSymbol) *model.ClassSymbol {
	var cls *model.ClassSymbol
	if outer == nil {
		qn := w.resolver.BuildQualifiedName(w.fc.PackageName, decl.Name, false)
		cls = model.NewClassSymbol(qn, decl.Name, w.fc.PackageName)
	} else {
		qn := w.resolver.BuildQualifiedName(outer.QualifiedName, decl.Name, true)
		cls = model.NewClassSymbol(qn, decl.Name, outer.Package)
		cls.Outer = outer
	}

	cls.Modifiers = decl.Mods.Flags() | w.policy.ImplicitModifiers(bc, decl)
	if outer != nil && outer.IsInterface {
		cls.Modifiers |= model.Public | model.Static
	}
	if outer != nil && decl.Interface {
		cls.Modifiers |= model.Static
	}
	return w.define(cls, decl)
}

// declareLocal 方法体中的局部类: Outer$<序号><名字>, 从声明处起在所在块中可见
func (w *collectWalk) declareLocal(decl *ast.ClassDecl, outer *model.ClassSymbol, locals *model.LocalScope) *model.ClassSymbol {
	simple := strconv.Itoa(outer.NextLocalIndex()) + decl.Name
	cls := model.NewClassSymbol(outer.QualifiedName+"$"+simple, simple, outer.Package)
	cls.Outer = outer
	cls.IsLocal = true
	cls.Scope = locals
	cls.Modifiers = decl.Mods.Flags() | w.policy.ImplicitModifiers(core.MethodBody, decl)
	locals.Declare(decl.Name, cls)
	return w.define(cls, decl)
}

// declareAnonymous 匿名类: Outer$<序号>
func (w *collectWalk) declareAnonymous(body *ast.ClassDecl, outer *model.ClassSymbol, locals *model.LocalScope) *model.ClassSymbol {
	simple := strconv.Itoa(outer.NextAnonymousIndex())
	cls := model.NewClassSymbol(outer.QualifiedName+"$"+simple, simple, outer.Package)
	cls.Outer = outer
	cls.IsAnonymous = true
	cls.Scope = locals
	cls.Modifiers = model.Final
	return w.define(cls, body)
}

func (w *collectWalk) define(cls *model.ClassSymbol, decl *ast.ClassDecl) *model.ClassSymbol {
	cls.IsInterface = decl.Interface
	if cls.IsInterface {
		cls.Modifiers |= model.Abstract
	}
	cls.Level = w.fc.Level
	cls.File = w.fc.FilePath
	cls.Decl = decl

	if prev := w.s.Table.Define(cls); prev != nil {
		w.s.Diagnostics.AddAndIgnore(fmt.Sprintf(MsgDuplicateClass, prev.DisplayName()), decl)
		return nil
	}
	if cls.Outer != nil && !cls.IsLocal && !cls.IsAnonymous {
		cls.Outer.AddNested(cls)
	}
	w.s.BindClass(decl, cls)
	w.fc.AddClass(cls)
	return cls
}

// completeClass 类型参数 -> 父类 -> 接口 -> 类体 -> 合成构造函数。顺序不可调换。
func (w *collectWalk) completeClass(cls *model.ClassSymbol, decl *ast.ClassDecl) {
	cls.TypeParams = typeParamNames(decl.TypeParams)
	scope := cls.Outer

	switch decl.Unsupported {
	case "enum":
		cls.Super = mustClass(w.s, enumQN)
	case "record":
		cls.Super = mustClass(w.s, recordQN)
	}
	if decl.Unsupported != "" {
		// 不建模的声明种类只登记名字, 成员未知
		cls.MembersKnown = false
		cls.Modifiers |= model.Final
		if decl.Unsupported == "annotation type" {
			cls.IsInterface = true
		}
		w.resolveInterfaces(cls, scope, decl)
		return
	}

	if decl.Super != nil {
		cls.Super = w.resolveRef(scope, cls.Scope, nil, decl.Super, 0, func(sym model.Symbol) { cls.Super = sym })
	} else if !cls.IsInterface && cls.QualifiedName != objectQN {
		cls.Super = mustClass(w.s, objectQN)
	}
	w.resolveInterfaces(cls, scope, decl)

	w.classBody(cls, decl)
	w.synthesizeConstructor(cls)
}

func (w *collectWalk) resolveInterfaces(cls *model.ClassSymbol, scope *model.ClassSymbol, decl *ast.ClassDecl) {
	cls.Interfaces = make([]model.Symbol, len(decl.Implements))
	for i, ref := range decl.Implements {
		cls.Interfaces[i] = w.resolveRef(scope, cls.Scope, nil, ref, 0, func(sym model.Symbol) { cls.Interfaces[i] = sym })
	}
}

// resolveRef 解析一个类型引用; 类型变量擦除为 Object, 找不到时返回占位并登记 continuation
func (w *collectWalk) resolveRef(scope *model.ClassSymbol, locals *model.LocalScope, method *model.MethodSymbol, ref *ast.TypeRef, extraDims int, resume func(model.Symbol)) model.Symbol {
	if ref == nil || (ref.Name == "void" && ref.Dims == 0) {
		return nil
	}
	w.admit(core.ClassBody, ref)
	if isTypeVar(ref.Name, scope, method) {
		var t model.Symbol = mustClass(w.s, objectQN)
		for i := 0; i < ref.Dims+extraDims; i++ {
			t = w.s.Table.ArrayOf(t)
		}
		return t
	}
	return w.resolver.ResolveType(w.s, w.fc, scope, locals, refName(ref, extraDims), ref, resume)
}

// ==========================================
// 3. 类体成员 (Members)
// ==========================================

func (w *collectWalk) classBody(cls *model.ClassSymbol, decl *ast.ClassDecl) {
	bc := core.ClassBody
	if cls.IsInterface {
		bc = core.InterfaceBody
	}

	// 先登记所有成员类, 使类体中任意位置都能引用它们
	members := make(map[*ast.ClassDecl]*model.ClassSymbol)
	for _, m := range decl.Body {
		if nested, ok := m.(*ast.ClassDecl); ok && w.admit(bc, nested) != core.Prune {
			members[nested] = w.declareMember(bc, nested, cls)
		}
	}

	for _, m := range decl.Body {
		switch x := m.(type) {
		case *ast.ClassDecl:
			if nested := members[x]; nested != nil {
				w.completeClass(nested, x)
			}
		case *ast.FieldDecl:
			if w.admit(bc, x) != core.Prune {
				w.field(bc, cls, x)
			}
		case *ast.MethodDecl:
			if w.admit(bc, x) != core.Prune {
				w.method(bc, cls, x)
			}
		case *ast.ConstructorDecl:
			if w.admit(bc, x) != core.Prune {
				w.constructor(bc, cls, x)
			}
		case *ast.InitializerBlock:
			if w.admit(bc, x) != core.Prune {
				w.walkBody(cls, nil, x.Body)
			}
		}
	}
}

func (w *collectWalk) field(bc core.BodyContext, cls *model.ClassSymbol, decl *ast.FieldDecl) {
	mods := decl.Mods.Flags() | w.policy.ImplicitModifiers(bc, decl)
	if cls.IsInterface {
		mods |= model.Public | model.Static | model.Final
	}
	for _, d := range decl.Vars {
		v := &model.VariableSymbol{
			Name:           d.Name,
			Modifiers:      mods,
			HasInitializer: d.Init != nil,
			HasValue:       d.Init != nil,
			Decl:           d,
		}
		v.Type = w.resolveRef(cls, nil, nil, decl.Type, d.Dims, func(sym model.Symbol) { v.Type = sym })
		if prev := cls.AddField(v); prev != nil {
			w.s.Diagnostics.AddAndIgnore(fmt.Sprintf(MsgDuplicateField, d.Name, cls.DisplayName()), d)
			continue
		}
		if d.Init != nil {
			w.walkBody(cls, nil, d.Init)
		}
	}
}

func (w *collectWalk) method(bc core.BodyContext, cls *model.ClassSymbol, decl *ast.MethodDecl) {
	m := &model.MethodSymbol{
		Name:       decl.Name,
		Modifiers:  decl.Mods.Flags() | w.policy.ImplicitModifiers(bc, decl),
		TypeParams: typeParamNames(decl.TypeParams),
		Decl:       decl,
	}
	if cls.IsInterface {
		m.Modifiers |= model.Public
		if decl.Body == nil {
			m.Modifiers |= model.Abstract
		}
	}
	m.Return = w.resolveRef(cls, nil, m, decl.Result, 0, func(sym model.Symbol) { m.Return = sym })
	w.signature(cls, m, decl.Params, decl.Throws)

	switch {
	case cls.IsInterface && decl.Body != nil && !m.Modifiers.Has(model.Static|model.Default|model.Private):
		w.s.Diagnostics.Add(fmt.Sprintf(MsgInterfaceMethodBody, m.Signature()), decl)
	case !cls.IsInterface && decl.Body == nil && !m.Modifiers.Has(model.Abstract|model.Native):
		w.s.Diagnostics.Add(fmt.Sprintf(MsgMissingBody, m.Signature()), decl)
	case !cls.IsInterface && m.Modifiers.Has(model.Abstract) && !cls.Modifiers.Has(model.Abstract):
		w.s.Diagnostics.Add(fmt.Sprintf(MsgAbstractInConcrete, cls.DisplayName(), m.Signature()), decl)
	}

	if prev := cls.AddMethod(m); prev != nil {
		w.s.Diagnostics.AddAndIgnore(fmt.Sprintf(MsgDuplicateMethod, m.Signature(), cls.DisplayName()), decl)
		return
	}
	w.s.BindMethod(decl, m)
	if decl.Body != nil {
		w.walkBody(cls, nil, decl.Body)
	}
}

func (w *collectWalk) constructor(bc core.BodyContext, cls *model.ClassSymbol, decl *ast.ConstructorDecl) {
	if cls.IsInterface {
		w.s.Diagnostics.AddAndIgnore(MsgInterfaceConstructor, decl)
		return
	}
	if decl.Name != cls.SimpleName {
		w.s.Diagnostics.AddAndIgnore(fmt.Sprintf(MsgCtorNameMismatch, decl.Name), decl)
		return
	}
	m := &model.MethodSymbol{
		Name:        model.CtorName,
		Modifiers:   decl.Mods.Flags() | w.policy.ImplicitModifiers(bc, decl),
		TypeParams:  typeParamNames(decl.TypeParams),
		Constructor: true,
		Decl:        decl,
	}
	w.signature(cls, m, decl.Params, decl.Throws)

	if prev := cls.AddMethod(m); prev != nil {
		w.s.Diagnostics.AddAndIgnore(fmt.Sprintf(MsgDuplicateMethod, m.Signature(), cls.DisplayName()), decl)
		return
	}
	w.s.BindMethod(decl, m)
	w.walkBody(cls, nil, decl.Body)
}

// signature 形参与 throws 子句; 同名形参只报告一次
func (w *collectWalk) signature(cls *model.ClassSymbol, m *model.MethodSymbol, params []*ast.Param, throws []*ast.TypeRef) {
	seen := make(map[string]bool)
	for _, p := range params {
		if seen[p.Name] {
			w.s.Diagnostics.Add(MsgDuplicateParam, p)
		}
		seen[p.Name] = true

		v := &model.VariableSymbol{
			Name:      p.Name,
			Modifiers: p.Mods.Flags(),
			Param:     true,
			HasValue:  true,
			Method:    m,
			Decl:      p,
		}
		v.Type = w.resolveRef(cls, nil, m, p.Type, 0, func(sym model.Symbol) { v.Type = sym })
		m.Params = append(m.Params, v)
		m.Varargs = m.Varargs || p.Varargs
	}

	m.Throws = make([]model.Symbol, len(throws))
	for i, ref := range throws {
		m.Throws[i] = w.resolveRef(cls, nil, m, ref, 0, func(sym model.Symbol) { m.Throws[i] = sym })
	}
}

// ==========================================
// 4. 方法体: 级别检查与局部类/匿名类
// ==========================================

// walkBody 方法体与初始化表达式中的每个语句和表达式都要经过策略裁决;
// 局部类与匿名类按源码顺序编号, 每个块与 switch 开一层局部类作用域
func (w *collectWalk) walkBody(scope *model.ClassSymbol, locals *model.LocalScope, n ast.Node) {
	if blk, ok := n.(*ast.Block); n == nil || ok && blk == nil {
		return
	}
	switch x := n.(type) {
	case *ast.LocalClassDecl:
		if w.admit(core.MethodBody, x.Decl) == core.Prune {
			return
		}
		if locals == nil {
			locals = locals.Push()
		}
		if cls := w.declareLocal(x.Decl, scope, locals); cls != nil {
			w.completeClass(cls, x.Decl)
		}
		return
	case *ast.NewObject:
		if x.Body == nil {
			break
		}
		if w.admit(core.MethodBody, x) == core.Prune {
			return
		}
		w.walkBody(scope, locals, x.Outer)
		for _, arg := range x.Args {
			w.walkBody(scope, locals, arg)
		}
		if cls := w.declareAnonymous(x.Body, scope, locals); cls != nil {
			w.completeAnonymous(cls, x)
		}
		return
	case *ast.Block, *ast.SwitchStmt:
		if w.admit(core.MethodBody, n) == core.Prune {
			return
		}
		inner := locals.Push()
		for _, c := range ast.Children(n) {
			w.walkBody(scope, inner, c)
		}
		return
	}
	if w.admit(core.MethodBody, n) == core.Prune {
		return
	}
	for _, c := range ast.Children(n) {
		w.walkBody(scope, locals, c)
	}
}

// completeAnonymous new T() {...}: T 是接口时父类为 Object 并实现 T, 否则 T 为父类
func (w *collectWalk) completeAnonymous(cls *model.ClassSymbol, expr *ast.NewObject) {
	object := mustClass(w.s, objectQN)
	apply := func(sym model.Symbol) {
		if target, ok := sym.(*model.ClassSymbol); ok && target.IsInterface {
			cls.Super = object
			cls.Interfaces = []model.Symbol{target}
			return
		}
		cls.Super = sym
	}
	apply(w.resolveRef(cls.Outer, cls.Scope, nil, expr.Type, 0, apply))

	w.classBody(cls, expr.Body)
	w.synthesizeConstructor(cls)
}

// ==========================================
// 5. 合成构造函数 (Synthesis)
// ==========================================

// synthesizeConstructor 没有任何构造函数时补一个:
// 非增强级别为 public 无参构造函数, 增强级别每个未初始化的实例字段对应一个形参
func (w *collectWalk) synthesizeConstructor(cls *model.ClassSymbol) {
	if cls.IsInterface || len(cls.Constructors()) > 0 {
		return
	}
	ctor := &model.MethodSymbol{
		Name:        model.CtorName,
		Modifiers:   model.Public,
		Constructor: true,
		Generated:   true,
	}
	if cls.Level.Augments() && !cls.IsAnonymous {
		for _, f := range cls.Fields {
			if f.IsStatic() || f.HasInitializer {
				continue
			}
			ctor.Params = append(ctor.Params, &model.VariableSymbol{
				Name:     f.Name,
				Type:     f.Type,
				Param:    true,
				HasValue: true,
				Method:   ctor,
			})
		}
	}
	cls.AddMethod(ctor)
}
