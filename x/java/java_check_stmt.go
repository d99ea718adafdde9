package java

import (
	"fmt"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/model"
)

// bodyChecker 一个方法体、构造函数体或初始化器的检查状态
type bodyChecker struct {
	*classChecker
	method      *model.MethodSymbol // 初始化器为 nil
	static      bool
	ctor        bool
	initializer bool
	noThis      bool // 显式构造函数调用的实参中不能引用当前实例

	flow     flow
	scope    *scope
	own      map[*model.VariableSymbol]bool // 本方法体声明的局部变量与形参
	jumps    []*jumpTarget
	handlers [][]*model.ClassSymbol // 由内向外的 catch 类型
	pending  []pendingThrow
	returns  []flow
}

// pendingThrow 尚未被捕获或声明的受检异常
type pendingThrow struct {
	exc    *model.ClassSymbol
	node   model.Node
	callee *model.MethodSymbol // 由方法或构造函数调用抛出时的被调者
}

// ==========================================
// 1. 变量 (Variables)
// ==========================================

func (b *bodyChecker) declareParams(m *model.MethodSymbol) {
	for _, p := range m.Params {
		b.scope.vars[p.Name] = p
		b.own[p] = true
		b.flow = b.flow.assign(p)
	}
}

func (b *bodyChecker) declareLocal(v *model.VariableSymbol, node model.Node) {
	if b.scope.declared(v.Name) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgDuplicateLocal, v.Name), node)
	}
	b.scope.vars[v.Name] = v
	b.own[v] = true
	for _, t := range b.jumps {
		if t.loop && t.declared != nil {
			t.declared[v] = true
		}
	}
}

func (b *bodyChecker) push() { b.scope = newScope(b.scope, false) }

func (b *bodyChecker) pop() { b.scope = b.scope.parent }

// ==========================================
// 2. 异常 (Exceptions)
// ==========================================

// raise 登记一个可能抛出的异常; 被外层 catch 捕获或在 throws 中声明的受检异常不需要处理
func (b *bodyChecker) raise(exc model.Symbol, node model.Node, callee *model.MethodSymbol) {
	c, ok := exc.(*model.ClassSymbol)
	if !ok || !hierarchyKnown(c) || !isChecked(b.s, c) {
		return
	}
	for i := len(b.handlers) - 1; i >= 0; i-- {
		for _, h := range b.handlers[i] {
			if c.IsSubtypeOf(h) {
				return
			}
		}
	}
	if b.method != nil && throwsCovered(c, b.method.Throws) {
		return
	}
	b.pending = append(b.pending, pendingThrow{exc: c, node: node, callee: callee})
}

// flushThrows 每条语句之后报告未声明的受检异常, 报告后即视为已处理
func (b *bodyChecker) flushThrows() {
	for _, p := range b.pending {
		var msg string
		switch {
		case b.method == nil:
			msg = fmt.Sprintf(MsgInitializerThrow, p.exc.DisplayName())
		case p.callee != nil && p.callee.Constructor:
			msg = fmt.Sprintf(MsgUndeclaredThrowCtor, p.callee.Signature(), p.exc.DisplayName(), b.enclosingName())
		case p.callee != nil:
			msg = fmt.Sprintf(MsgUndeclaredThrow, p.callee.Signature(), p.exc.DisplayName(), b.enclosingName())
		default:
			msg = fmt.Sprintf(MsgUndeclaredThrowX, p.exc.DisplayName(), b.enclosingName())
		}
		b.s.Diagnostics.Add(msg, p.node)
	}
	b.pending = nil
}

func (b *bodyChecker) enclosingName() string {
	if b.method == nil || b.method.Constructor {
		return b.cls.DisplayName()
	}
	return b.method.Name
}

// ==========================================
// 3. 语句 (Statements)
// ==========================================

func (b *bodyChecker) block(blk *ast.Block) {
	if blk == nil {
		return
	}
	b.push()
	b.stmts(blk.Stmts)
	b.pop()
}

// stmts 不可达的语句只报告第一条, 之后按可达继续检查
func (b *bodyChecker) stmts(list []ast.Stmt) {
	reported := false
	for _, st := range list {
		if b.flow.dead {
			if _, empty := st.(*ast.EmptyStmt); !empty && !reported {
				b.s.Diagnostics.Add(MsgUnreachable, st)
				reported = true
			}
			b.flow.dead = false
		}
		b.stmt(st)
		b.flushThrows()
	}
}

// scoped 分支与循环体单独成一个作用域
func (b *bodyChecker) scoped(st ast.Stmt) {
	b.push()
	b.stmt(st)
	b.pop()
}

func (b *bodyChecker) stmt(st ast.Stmt) {
	switch x := st.(type) {
	case nil, *ast.EmptyStmt:
	case *ast.Block:
		b.block(x)
	case *ast.LocalVarDecl:
		b.localVars(x)
	case *ast.LocalClassDecl:
		if cls := b.s.ClassFor(x.Decl); cls != nil {
			b.scope.types.Declare(x.Decl.Name, cls)
		}
		b.checkDecl(b.s, b.fc, x.Decl, b.scope)
	case *ast.ExprStmt:
		switch e := x.X.(type) {
		case *ast.Assign, *ast.MethodCall, *ast.NewObject:
		case *ast.Unary:
			if e.Op != "++" && e.Op != "--" {
				b.s.Diagnostics.Add(MsgNotStatement, x)
			}
		case *ast.UnsupportedExpr:
		default:
			b.s.Diagnostics.Add(MsgNotStatement, x)
		}
		b.expr(x.X)
	case *ast.IfStmt:
		b.condition(x.Cond)
		saved := b.flow
		b.scoped(x.Then)
		then := b.flow
		b.flow = saved
		b.scoped(x.Else)
		b.flow = join(then, b.flow)
	case *ast.WhileStmt:
		b.condition(x.Cond)
		exit := b.flow
		t := b.enter(true, false)
		b.scoped(x.Body)
		b.leave(t, exit, isTrue(x.Cond))
	case *ast.DoStmt:
		t := b.enter(true, false)
		b.scoped(x.Body)
		b.condition(x.Cond)
		b.leave(t, b.flow, isTrue(x.Cond))
	case *ast.ForStmt:
		b.push()
		for _, init := range x.Init {
			b.stmt(init)
		}
		if x.Cond != nil {
			b.condition(x.Cond)
		}
		exit := b.flow
		t := b.enter(true, false)
		b.scoped(x.Body)
		for _, u := range x.Update {
			b.expr(u)
		}
		b.leave(t, exit, isTrue(x.Cond))
		b.pop()
	case *ast.ForEachStmt:
		b.forEach(x)
	case *ast.ReturnStmt:
		b.returnStmt(x)
	case *ast.ThrowStmt:
		b.throwStmt(x)
	case *ast.TryStmt:
		b.tryStmt(x)
	case *ast.SwitchStmt:
		b.switchStmt(x)
	case *ast.BreakStmt:
		if t := b.breakTarget(x.Label); t != nil {
			t.breaks = append(t.breaks, b.flow)
		} else {
			b.s.Diagnostics.Add(MsgBreakOutside, x)
		}
		b.flow = b.flow.kill()
	case *ast.ContinueStmt:
		if t := b.continueTarget(x.Label); t != nil {
			t.continues = append(t.continues, b.flow)
		} else {
			b.s.Diagnostics.Add(MsgContinueOutside, x)
		}
		b.flow = b.flow.kill()
	case *ast.LabeledStmt:
		t := &jumpTarget{label: x.Label, loop: isLoop(x.Body)}
		b.jumps = append(b.jumps, t)
		b.stmt(x.Body)
		b.jumps = b.jumps[:len(b.jumps)-1]
		b.flow = join(append([]flow{b.flow}, t.breaks...)...)
	case *ast.ConstructorCall:
		name := "this"
		if x.Super {
			name = "super"
		}
		if b.ctor {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgCtorCallNotFirst, name), x)
		} else {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgCtorCallOutside, name), x)
		}
		b.args(x.Args)
	case *ast.UnsupportedStmt:
		b.push()
		b.stmts(x.Body)
		b.pop()
	}
}

func isLoop(st ast.Stmt) bool {
	switch st.(type) {
	case *ast.WhileStmt, *ast.DoStmt, *ast.ForStmt, *ast.ForEachStmt:
		return true
	}
	return false
}

// enter / leave 循环与 switch 的跳转目标; 循环之后的状态是条件为假的出口与所有 break 的汇合
func (b *bodyChecker) enter(loop, swtch bool) *jumpTarget {
	t := &jumpTarget{loop: loop, swtch: swtch}
	if loop {
		t.declared = make(map[*model.VariableSymbol]bool)
	}
	b.jumps = append(b.jumps, t)
	return t
}

// leave 的当前 flow 是循环体 (及更新部分) 的结尾; 它与各 continue 汇合成回边
func (b *bodyChecker) leave(t *jumpTarget, exit flow, infinite bool) {
	b.jumps = b.jumps[:len(b.jumps)-1]
	if t.loop {
		back := join(append([]flow{b.flow}, t.continues...)...)
		for _, w := range t.writes {
			if !w.reported && !t.declared[w.v] && back.mayHave(w.v) {
				b.s.Diagnostics.Add(fmt.Sprintf(MsgFinalReassign, w.v.Name), w.node)
				w.reported = true
			}
		}
	}
	if infinite {
		exit = exit.kill()
	}
	b.flow = join(append([]flow{exit}, t.breaks...)...)
}

func (b *bodyChecker) breakTarget(label string) *jumpTarget {
	for i := len(b.jumps) - 1; i >= 0; i-- {
		t := b.jumps[i]
		if label == "" && t.label == "" && (t.loop || t.swtch) {
			return t
		}
		if label != "" && t.label == label {
			return t
		}
	}
	return nil
}

// continueTarget 带标号时返回标号内层循环自己的目标, 回边在那里汇合
func (b *bodyChecker) continueTarget(label string) *jumpTarget {
	for i := len(b.jumps) - 1; i >= 0; i-- {
		t := b.jumps[i]
		if t.loop && (label == "" || t.label == label) {
			if t.label != "" && i+1 < len(b.jumps) && b.jumps[i+1].loop {
				return b.jumps[i+1]
			}
			return t
		}
	}
	return nil
}

func (b *bodyChecker) localVars(x *ast.LocalVarDecl) {
	mods := x.Mods.Flags()
	for _, d := range x.Vars {
		var t model.Symbol
		if x.Type.Name == "var" && x.Type.Dims == 0 && d.Init != nil && b.resolver.LookupType(b.s, b.fc, b.cls, b.scope.types, "var") == nil {
			// 局部变量类型推断
			t = b.valueOf(d.Init)
		} else {
			t = b.resolveType(x.Type, d.Dims)
		}
		v := &model.VariableSymbol{Name: d.Name, Modifiers: mods, Type: t, HasInitializer: d.Init != nil, Decl: d}
		b.declareLocal(v, d)
		if d.Init != nil {
			if x.Type.Name != "var" {
				b.checkInit(d.Init, t)
			}
			b.flow = b.flow.assign(v)
		}
	}
}

func (b *bodyChecker) forEach(x *ast.ForEachStmt) {
	iter := b.valueOf(x.Iter)
	var elem model.Symbol
	switch t := iter.(type) {
	case *model.ArraySymbol:
		elem = t.Elem
	case *model.ClassSymbol:
		if it := optClass(b.s, iterableQN); it != nil && (t.IsSubtypeOf(it) || !hierarchyKnown(t)) {
			break
		}
		b.s.Diagnostics.Add(fmt.Sprintf(MsgForEachType, model.TypeName(t)), x.Iter)
	case nil, *model.Unresolved:
	default:
		b.s.Diagnostics.Add(fmt.Sprintf(MsgForEachType, model.TypeName(t)), x.Iter)
	}

	b.push()
	declared := elem
	if x.Type.Name != "var" || elem == nil {
		declared = b.resolveType(x.Type, 0)
		if elem != nil && !b.assignable(elem, declared, nil) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgNotAssignable, model.TypeName(elem), model.TypeName(declared)), x)
		}
	}
	v := &model.VariableSymbol{Name: x.Name, Modifiers: x.Mods.Flags(), Type: declared, HasInitializer: true, Decl: x}
	b.declareLocal(v, x)
	b.flow = b.flow.assign(v)

	exit := b.flow
	t := b.enter(true, false)
	b.scoped(x.Body)
	b.leave(t, exit, false)
	b.pop()
}

func (b *bodyChecker) returnStmt(x *ast.ReturnStmt) {
	switch {
	case b.method == nil:
		if x.Value != nil {
			b.expr(x.Value)
		}
	case b.ctor:
		if x.Value != nil {
			b.expr(x.Value)
			b.s.Diagnostics.Add(MsgCtorReturnValue, x)
		}
	case b.method.IsVoid():
		if x.Value != nil {
			b.expr(x.Value)
			b.s.Diagnostics.Add(fmt.Sprintf(MsgReturnInVoid, b.method.Name), x)
		}
	case x.Value == nil:
		b.s.Diagnostics.Add(fmt.Sprintf(MsgReturnMissingValue, b.method.Name, model.TypeName(b.method.Return)), x)
	default:
		if t := b.valueOf(x.Value); !b.assignable(t, b.method.Return, x.Value) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgBadReturnType, b.method.Name, model.TypeName(b.method.Return), model.TypeName(t)), x.Value)
		}
	}
	b.returns = append(b.returns, b.flow)
	b.flow = b.flow.kill()
}

func (b *bodyChecker) throwStmt(x *ast.ThrowStmt) {
	t := b.valueOf(x.X)
	if known(t) {
		c, ok := t.(*model.ClassSymbol)
		if !ok || (hierarchyKnown(c) && !isThrowable(b.s, c)) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgNotThrowable, model.TypeName(t)), x.X)
		} else {
			b.raise(c, x, nil)
		}
	}
	b.flow = b.flow.kill()
}

// tryStmt catch 块从 try 之前的状态开始 (try 体中任何位置都可能抛出);
// finally 中的赋值在所有出口上都成立
func (b *bodyChecker) tryStmt(x *ast.TryStmt) {
	var caught []*model.ClassSymbol
	catchTypes := make([][]model.Symbol, len(x.Catches))
	for i, c := range x.Catches {
		for _, ref := range c.Types {
			t := b.resolveType(ref, 0)
			catchTypes[i] = append(catchTypes[i], t)
			if tc, ok := t.(*model.ClassSymbol); ok {
				if hierarchyKnown(tc) && !isThrowable(b.s, tc) {
					b.s.Diagnostics.Add(fmt.Sprintf(MsgCatchNotThrowable, tc.DisplayName()), ref)
				}
				caught = append(caught, tc)
			}
		}
	}

	before := b.flow
	b.handlers = append(b.handlers, caught)
	b.block(x.Body)
	b.flushThrows()
	b.handlers = b.handlers[:len(b.handlers)-1]
	ends := []flow{b.flow}
	tried := b.flow

	for i, c := range x.Catches {
		b.flow = tried.restart(before)
		b.push()
		var t model.Symbol
		if len(catchTypes[i]) == 1 {
			t = catchTypes[i][0]
		} else {
			t = optClass(b.s, throwableQN)
		}
		v := &model.VariableSymbol{Name: c.Param.Name, Modifiers: c.Param.Mods.Flags(), Type: t, HasInitializer: true, Decl: c.Param}
		b.declareLocal(v, c.Param)
		b.flow = b.flow.assign(v)
		b.block(c.Body)
		b.pop()
		ends = append(ends, b.flow)
	}

	after := join(ends...)
	if x.Finally != nil {
		entered := tried
		for _, e := range ends {
			entered.maybe = entered.maybe.union(e.maybe)
		}
		b.flow = entered.restart(before)
		b.block(x.Finally)
		if b.flow.dead {
			after = b.flow
		} else {
			after.set = after.set.union(b.flow.set)
			after.maybe = after.maybe.union(b.flow.maybe)
		}
	}
	b.flow = after
}

func (b *bodyChecker) switchStmt(x *ast.SwitchStmt) {
	tag := b.valueOf(x.Tag)
	if known(tag) && !b.switchable(tag) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgSwitchType, model.TypeName(tag)), x.Tag)
	}
	entry := b.flow
	hasDefault := false

	b.push()
	t := b.enter(false, true)
	b.flow = b.flow.kill()
	for _, c := range x.Cases {
		hasDefault = hasDefault || c.Default
		for _, label := range c.Labels {
			if _, ok := label.(*ast.Ident); ok && b.isEnum(tag) {
				// 枚举常量不在符号表中
				continue
			}
			lt := b.valueOf(label)
			if known(tag) && !b.assignable(lt, tag, label) {
				b.s.Diagnostics.Add(fmt.Sprintf(MsgNotAssignable, model.TypeName(lt), model.TypeName(tag)), label)
			}
		}
		// 每个 case 既可以从 switch 入口进入, 也可以从上一个 case 贯穿进入
		b.flow = join(entry, b.flow)
		b.stmts(c.Body)
	}
	exits := append([]flow{b.flow}, t.breaks...)
	if !hasDefault {
		exits = append(exits, entry)
	}
	b.jumps = b.jumps[:len(b.jumps)-1]
	b.flow = join(exits...)
	b.pop()
}

func (b *bodyChecker) switchable(t model.Symbol) bool {
	if b.isString(t) || b.isEnum(t) {
		return true
	}
	p := b.unbox(t)
	return p != nil && p.IsIntegral() && p != model.Long
}

func (b *bodyChecker) isEnum(t model.Symbol) bool {
	c, ok := t.(*model.ClassSymbol)
	e := optClass(b.s, enumQN)
	return ok && e != nil && c != e && c.IsSubtypeOf(e)
}
