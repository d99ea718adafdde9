package java

import (
	"fmt"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

type Checker struct {
	resolver core.SymbolResolver
	access   AccessChecker
}

func NewJavaChecker() *Checker {
	resolver, err := core.GetSymbolResolver(core.LangJava)
	if err != nil {
		panic(err)
	}
	return &Checker{resolver: resolver}
}

// classChecker 一个类体的检查状态
type classChecker struct {
	*Checker
	typeRules
	fc       *core.FileContext
	cls      *model.ClassSymbol
	decl     *ast.ClassDecl
	captured *scope // 局部类/匿名类可见的外围方法变量

	seen      map[*model.VariableSymbol]bool              // 初始化表达式中已声明的字段 (前向引用检查)
	thisCalls map[*model.MethodSymbol]*model.MethodSymbol // 构造函数 -> this(...) 调用的目标
}

// ==========================================
// 1. 核心生命周期 (Core Workflow)
// ==========================================

func (c *Checker) CheckFile(s *core.Session, fc *core.FileContext) error {
	if fc.Unit == nil {
		return fmt.Errorf("check %s: file has no syntax tree", fc.FilePath)
	}
	for _, decl := range fc.Unit.Types {
		c.checkDecl(s, fc, decl, nil)
	}
	return nil
}

func (c *Checker) checkDecl(s *core.Session, fc *core.FileContext, decl *ast.ClassDecl, captured *scope) {
	cls := s.ClassFor(decl)
	if cls == nil {
		if s.Diagnostics.Ignored(decl) {
			return
		}
		core.Fatalf(decl, "class symbol not found for declaration %s", decl.Name)
	}
	if decl.Unsupported != "" {
		return
	}
	cc := &classChecker{
		Checker:   c,
		typeRules: typeRules{s: s},
		fc:        fc,
		cls:       cls,
		decl:      decl,
		captured:  captured,
		seen:      make(map[*model.VariableSymbol]bool),
		thisCalls: make(map[*model.MethodSymbol]*model.MethodSymbol),
	}
	cc.check()
}

func (cc *classChecker) check() {
	cc.checkOverrides()
	cc.checkAbstracts()

	instance, static := cc.checkInitializers()
	cc.checkStaticFinals(static)

	for _, m := range cc.decl.Body {
		switch x := m.(type) {
		case *ast.ClassDecl:
			cc.checkDecl(cc.s, cc.fc, x, cc.captured)
		case *ast.MethodDecl:
			cc.checkMethod(x)
		case *ast.ConstructorDecl:
			cc.checkConstructor(x, instance)
		}
	}
	cc.checkGeneratedConstructor(instance)
	cc.checkConstructorCycles()

	// 构造函数检查完成后, 字段都视为已有值
	for _, f := range cc.cls.Fields {
		f.HasValue = true
	}
}

func (cc *classChecker) newBody(m *model.MethodSymbol, static, ctor bool) *bodyChecker {
	return &bodyChecker{
		classChecker: cc,
		method:       m,
		static:       static,
		ctor:         ctor,
		scope:        newScope(cc.captured, true),
		own:          make(map[*model.VariableSymbol]bool),
	}
}

// ==========================================
// 2. 字段初始化与初始化块 (Initializers)
// ==========================================

// checkInitializers 按源码顺序检查字段初始化表达式与初始化块,
// 返回实例与静态两条 flow (初始化块中赋值的空白 final 字段)
func (cc *classChecker) checkInitializers() (flow, flow) {
	inst := cc.newBody(nil, false, false)
	inst.initializer = true
	static := cc.newBody(nil, true, false)
	static.initializer = true
	pick := func(isStatic bool) *bodyChecker {
		if isStatic {
			return static
		}
		return inst
	}

	for _, m := range cc.decl.Body {
		switch x := m.(type) {
		case *ast.FieldDecl:
			for _, d := range x.Vars {
				f := cc.cls.Field(d.Name)
				if f == nil || f.Decl != model.Node(d) {
					continue
				}
				if d.Init != nil {
					b := pick(f.IsStatic())
					b.checkInit(d.Init, f.Type)
					b.flushThrows()
				}
				cc.seen[f] = true
			}
		case *ast.InitializerBlock:
			if cc.s.Diagnostics.Ignored(x) || x.Body == nil {
				continue
			}
			pick(x.Static).block(x.Body)
		}
	}
	return inst.flow, static.flow
}

func (cc *classChecker) checkStaticFinals(static flow) {
	for _, f := range cc.cls.Fields {
		if f.IsStatic() && f.IsBlankFinal() && !static.has(f) {
			cc.s.Diagnostics.Add(fmt.Sprintf(MsgFinalNotInitialized, f.Name), f.Decl)
		}
	}
}

// ==========================================
// 3. 方法与构造函数 (Methods & constructors)
// ==========================================

func (cc *classChecker) methodFor(decl ast.Node) *model.MethodSymbol {
	m := cc.s.MethodFor(decl)
	if m == nil && !cc.s.Diagnostics.Ignored(decl) {
		core.Fatalf(decl, "method symbol not found for a declaration of %s", cc.cls.DisplayName())
	}
	return m
}

func (cc *classChecker) checkMethod(decl *ast.MethodDecl) {
	m := cc.methodFor(decl)
	if m == nil || decl.Body == nil {
		return
	}
	b := cc.newBody(m, m.Modifiers.Has(model.Static), false)
	b.declareParams(m)
	b.block(decl.Body)
	b.flushThrows()

	if !m.IsVoid() && !b.flow.dead {
		cc.s.Diagnostics.Add(fmt.Sprintf(MsgMissingReturn, m.Name, model.TypeName(m.Return)), decl)
	}
}

// checkConstructor 第一条语句可以是 this(...) / super(...); 否则视为隐式的 super()。
// 检查完后每个空白 final 实例字段都必须已被赋值。
func (cc *classChecker) checkConstructor(decl *ast.ConstructorDecl, instance flow) {
	m := cc.methodFor(decl)
	if m == nil {
		return
	}
	b := cc.newBody(m, false, true)
	b.flow = instance
	b.declareParams(m)

	var stmts []ast.Stmt
	if decl.Body != nil {
		stmts = decl.Body.Stmts
	}
	if len(stmts) > 0 {
		if call, ok := stmts[0].(*ast.ConstructorCall); ok {
			b.constructorCall(call)
			b.flushThrows()
			stmts = stmts[1:]
		} else {
			b.implicitSuper(decl)
		}
	} else {
		b.implicitSuper(decl)
	}
	b.flushThrows()

	b.scope = newScope(b.scope, false)
	b.stmts(stmts)
	b.flushThrows()

	end := join(append([]flow{b.flow}, b.returns...)...)
	if end.dead {
		return
	}
	for _, f := range cc.cls.Fields {
		if !f.IsStatic() && f.IsBlankFinal() && !end.has(f) {
			cc.s.Diagnostics.Add(fmt.Sprintf(MsgFinalNotInitialized, f.Name), decl)
		}
	}
}

// checkGeneratedConstructor 合成的构造函数没有源码, 只检查隐式 super() 与 final 字段
func (cc *classChecker) checkGeneratedConstructor(instance flow) {
	if cc.cls.IsAnonymous {
		return
	}
	for _, ctor := range cc.cls.Constructors() {
		if !ctor.Generated {
			continue
		}
		augmented := augmentedCtor(cc.cls) == ctor
		if sup := cc.cls.SuperClass(); sup != nil && !(augmented && augmentedCtor(sup) != nil) {
			b := cc.newBody(ctor, false, true)
			b.implicitSuper(cc.decl)
			b.flushThrows()
		}
		if augmented {
			continue
		}
		for _, f := range cc.cls.Fields {
			if !f.IsStatic() && f.IsBlankFinal() && !instance.has(f) {
				cc.s.Diagnostics.Add(fmt.Sprintf(MsgFinalNotInitialized, f.Name), f.Decl)
			}
		}
	}
}

// checkConstructorCycles this(...) 调用链不能回到自身
func (cc *classChecker) checkConstructorCycles() {
	reported := make(map[*model.MethodSymbol]bool)
	for _, ctor := range cc.cls.Constructors() {
		if reported[ctor] {
			continue
		}
		seen := map[*model.MethodSymbol]bool{ctor: true}
		for next := cc.thisCalls[ctor]; next != nil; next = cc.thisCalls[next] {
			if next == ctor {
				cc.s.Diagnostics.Add(fmt.Sprintf(MsgRecursiveCtor, ctor.Signature()), ctor.Decl)
				for k := range seen {
					reported[k] = true
				}
				break
			}
			if seen[next] {
				break
			}
			seen[next] = true
		}
	}
}

// ==========================================
// 4. 覆盖与抽象方法 (Overrides)
// ==========================================

func (cc *classChecker) checkOverrides() {
	for _, m := range cc.cls.UserMethods() {
		if m.Constructor || m.Modifiers.Has(model.Private) || m.Decl == nil {
			continue
		}
		for _, sup := range cc.overridden(m) {
			if msg := cc.overrideProblem(m, sup); msg != "" {
				cc.s.Diagnostics.Add(msg, m.Decl)
			}
		}
	}
}

// overridden 父类型中被 m 覆盖 (或隐藏) 的方法
func (cc *classChecker) overridden(m *model.MethodSymbol) []*model.MethodSymbol {
	var out []*model.MethodSymbol
	seen := map[*model.ClassSymbol]bool{cc.cls: true}
	queue := cc.cls.Supertypes()
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen[c] {
			continue
		}
		seen[c] = true
		if sup := c.FindMethod(m.Name, m.ParamTypes()); sup != nil && !sup.Constructor &&
			!sup.Modifiers.Has(model.Private) && cc.access.CanAccessMember(cc.cls, c, sup.Modifiers) {
			out = append(out, sup)
		}
		queue = append(queue, c.Supertypes()...)
	}
	if cc.cls.IsInterface {
		// 接口隐式声明了 Object 的 public 方法
		if sup := mustClass(cc.s, objectQN).FindMethod(m.Name, m.ParamTypes()); sup != nil && !seen[sup.Owner] {
			out = append(out, sup)
		}
	}
	return out
}

// overrideProblem 返回第一条不兼容的诊断; 兼容时返回 ""
func (cc *classChecker) overrideProblem(m, sup *model.MethodSymbol) string {
	format := ""
	switch {
	case m.Modifiers.Has(model.Static) != sup.Modifiers.Has(model.Static):
		format = MsgOverrideStatic
	case sup.Modifiers.Has(model.Final):
		format = MsgOverrideFinal
	case !cc.returnCompatible(m.Return, sup.Return):
		format = MsgOverrideReturnType
	case accessRank(m.Modifiers) < accessRank(sup.Modifiers):
		format = MsgOverrideWeaker
	}
	args := []any{m.Signature(), cc.cls.DisplayName(), sup.Signature(), sup.Owner.DisplayName()}
	if format != "" {
		return fmt.Sprintf(format, args...)
	}
	for _, t := range m.Throws {
		tc, ok := t.(*model.ClassSymbol)
		if ok && isChecked(cc.s, tc) && !throwsCovered(tc, sup.Throws) {
			return fmt.Sprintf(MsgOverrideThrows, append(args, tc.DisplayName())...)
		}
	}
	return ""
}

func (cc *classChecker) returnCompatible(ret, sup model.Symbol) bool {
	if ret == model.Void {
		ret = nil
	}
	if sup == model.Void {
		sup = nil
	}
	if ret == nil || sup == nil {
		return ret == nil && sup == nil
	}
	if _, ok := sup.(*model.PrimitiveSymbol); ok {
		return ret == sup || !known(ret)
	}
	if _, ok := ret.(*model.PrimitiveSymbol); ok {
		return false
	}
	return cc.strict(ret, sup)
}

func throwsCovered(t *model.ClassSymbol, declared []model.Symbol) bool {
	for _, d := range declared {
		dc, ok := d.(*model.ClassSymbol)
		if !ok || t.IsSubtypeOf(dc) {
			return true
		}
	}
	return false
}

func accessRank(m model.Modifiers) int {
	switch {
	case m.Has(model.Public):
		return 3
	case m.Has(model.Protected):
		return 2
	case m.Has(model.Private):
		return 0
	}
	return 1
}

// checkAbstracts 具体类必须实现源码父类型中声明的全部抽象方法
func (cc *classChecker) checkAbstracts() {
	cls := cc.cls
	if cls.IsAbstract() || !hierarchyKnown(cls) {
		return
	}
	reported := make(map[string]bool)
	seen := make(map[*model.ClassSymbol]bool)
	queue := cls.Supertypes()
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen[c] {
			continue
		}
		seen[c] = true
		queue = append(queue, c.Supertypes()...)
		if c.External {
			continue
		}
		for _, am := range c.Methods {
			if !am.Modifiers.Has(model.Abstract) || am.Modifiers.Has(model.Static) {
				continue
			}
			key := model.FormatSignature(am.Name, am.ParamTypes())
			if reported[key] || cc.implemented(am) {
				continue
			}
			reported[key] = true
			cc.s.Diagnostics.Add(fmt.Sprintf(MsgAbstractNotImpl, cls.DisplayName(), am.Signature(), c.DisplayName()), cc.decl)
		}
	}
}

// implemented 在本类及全部父类型中寻找同签名的非抽象方法
func (cc *classChecker) implemented(am *model.MethodSymbol) bool {
	seen := make(map[*model.ClassSymbol]bool)
	queue := []*model.ClassSymbol{cc.cls}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen[c] {
			continue
		}
		seen[c] = true
		if m := c.FindMethod(am.Name, am.ParamTypes()); m != nil && !m.Modifiers.Has(model.Abstract) {
			return true
		}
		queue = append(queue, c.Supertypes()...)
	}
	return false
}

// ==========================================
// 5. 外围实例 (Enclosing instances)
// ==========================================

// needsOuterInstance 成员内部类的构造需要外部实例; 局部类与匿名类由词法环境提供
func needsOuterInstance(c *model.ClassSymbol) bool {
	return c.IsInner() && !c.IsLocal && !c.IsAnonymous
}

// enclosingInstance 从 from 开始的词法外围链上是否有 outer (或其子类) 的实例可用
func enclosingInstance(from, outer *model.ClassSymbol, static bool) bool {
	if static {
		return false
	}
	for c := from; c != nil; c = c.Outer {
		if c.IsSubtypeOf(outer) {
			return true
		}
		if !c.IsInner() && !c.IsLocal && !c.IsAnonymous {
			return false
		}
	}
	return false
}
