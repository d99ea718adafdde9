package java

import (
	"fmt"
	"strings"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/model"
)

// value 表达式的求值结果
type value struct {
	typ    model.Symbol
	isType bool                  // 表达式是一个类型名
	pkg    string                // 表达式是一个包名前缀
	v      *model.VariableSymbol // 表达式指向的变量
	simple bool                  // 以简单名字或 this.x 访问
	lvalue bool
	call   string // void 方法调用的方法名
}

// ==========================================
// 1. 入口 (Entry points)
// ==========================================

// valueOf 作为值使用的表达式类型; 类型名、包名与 void 调用在这里报告
func (b *bodyChecker) valueOf(e ast.Expr) model.Symbol {
	v := b.operand(e)
	switch {
	case v.isType:
		b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownVariable, model.TypeName(v.typ)), e)
		return nil
	case v.pkg != "":
		b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownVariable, v.pkg), e)
		return nil
	case v.typ == model.Void:
		b.s.Diagnostics.Add(fmt.Sprintf(MsgVoidValue, v.call), e)
		return nil
	}
	return v.typ
}

// operand 求值并检查变量读取
func (b *bodyChecker) operand(e ast.Expr) value {
	v := b.eval(e)
	if v.v != nil {
		b.readCheck(v, e)
	}
	return v
}

func (b *bodyChecker) expr(e ast.Expr) {
	if e != nil {
		b.operand(e)
	}
}

func (b *bodyChecker) args(list []ast.Expr) []model.Symbol {
	types := make([]model.Symbol, len(list))
	for i, a := range list {
		types[i] = b.valueOf(a)
	}
	return types
}

func (b *bodyChecker) condition(e ast.Expr) {
	if t := b.valueOf(e); known(t) && !b.isBoolean(t) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgConditionType, model.TypeName(t)), e)
	}
}

// checkInit 变量初始化与赋值: 数组初始化器按目标类型逐个检查元素
func (b *bodyChecker) checkInit(e ast.Expr, t model.Symbol) {
	if ai, ok := e.(*ast.ArrayInit); ok {
		b.arrayInit(ai, t)
		return
	}
	vt := b.valueOf(e)
	if !b.assignable(vt, t, e) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgNotAssignable, model.TypeName(vt), model.TypeName(t)), e)
	}
}

func (b *bodyChecker) arrayInit(ai *ast.ArrayInit, t model.Symbol) {
	arr, ok := t.(*model.ArraySymbol)
	if !ok && known(t) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgNotAssignable, "array initializer", model.TypeName(t)), ai)
	}
	for _, e := range ai.Elems {
		if arr != nil {
			b.checkInit(e, arr.Elem)
		} else if nested, ok := e.(*ast.ArrayInit); ok {
			b.arrayInit(nested, nil)
		} else {
			b.expr(e)
		}
	}
}

// resolveType 方法体中的类型引用; 此时所有源码类型都已定义, 找不到即报告
func (b *bodyChecker) resolveType(ref *ast.TypeRef, extraDims int) model.Symbol {
	if ref == nil {
		return nil
	}
	elem, _ := splitDims(ref.Name)
	if isTypeVar(elem, b.cls, b.method) {
		return wrapDims(b.s, mustClass(b.s, objectQN), ref.Dims+extraDims)
	}
	t := b.resolver.LookupType(b.s, b.fc, b.cls, b.scope.types, refName(ref, extraDims))
	if t == nil {
		if !b.s.Diagnostics.Ignored(ref) {
			b.s.Diagnostics.AddAndIgnore(fmt.Sprintf(MsgCannotResolve, ref.Name), ref)
		}
		return nil
	}
	base := t
	for {
		arr, ok := base.(*model.ArraySymbol)
		if !ok {
			break
		}
		base = arr.Elem
	}
	if c, ok := base.(*model.ClassSymbol); ok && !b.access.CanAccessType(b.cls, c) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgTypeNotAccessible, c.DisplayName(), b.cls.DisplayName()), ref)
	}
	return t
}

// lookupType 表达式位置上的名字作为类型查找, 不报告
func (b *bodyChecker) lookupType(name string) *model.ClassSymbol {
	if isTypeVar(name, b.cls, b.method) {
		return mustClass(b.s, objectQN)
	}
	c, _ := b.resolver.LookupType(b.s, b.fc, b.cls, b.scope.types, name).(*model.ClassSymbol)
	return c
}

// ==========================================
// 2. 求值 (Evaluation)
// ==========================================

func (b *bodyChecker) eval(e ast.Expr) value {
	switch x := e.(type) {
	case nil:
		return value{}
	case *ast.Literal:
		return value{typ: b.literal(x)}
	case *ast.Paren:
		return b.eval(x.X)
	case *ast.Ident:
		return b.ident(x)
	case *ast.FieldAccess:
		return b.fieldAccess(x)
	case *ast.MethodCall:
		return b.call(x)
	case *ast.ThisExpr:
		return b.thisValue(x)
	case *ast.SuperExpr:
		if b.static || b.noThis {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgThisInStatic, "super"), x)
			return value{}
		}
		if sup := b.cls.SuperClass(); sup != nil {
			return value{typ: sup}
		}
		return value{}
	case *ast.NewObject:
		return b.newObject(x)
	case *ast.NewArray:
		return b.newArray(x)
	case *ast.ArrayInit:
		b.arrayInit(x, nil)
		return value{}
	case *ast.Index:
		return b.index(x)
	case *ast.Assign:
		return b.assign(x)
	case *ast.Binary:
		return b.binary(x)
	case *ast.Unary:
		return b.unary(x)
	case *ast.Cast:
		t := b.resolveType(x.Type, 0)
		from := b.valueOf(x.X)
		if !b.castable(from, t) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgBadCast, model.TypeName(from), model.TypeName(t)), x)
		}
		return value{typ: t}
	case *ast.InstanceOf:
		from := b.valueOf(x.X)
		t := b.resolveType(x.Type, 0)
		if known(from) && known(t) && (!model.IsReference(from) || !model.IsReference(t) || !b.castable(from, t)) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgBadInstanceOf, model.TypeName(from), model.TypeName(t)), x)
		}
		return value{typ: model.Boolean}
	case *ast.Conditional:
		b.condition(x.Cond)
		saved := b.flow
		then := b.valueOf(x.Then)
		afterThen := b.flow
		b.flow = saved
		els := b.valueOf(x.Else)
		b.flow = join(afterThen, b.flow)
		return value{typ: b.conditionalType(then, els)}
	case *ast.ClassLit:
		b.resolveType(x.Type, 0)
		if c := optClass(b.s, "java.lang.Class"); c != nil {
			return value{typ: c}
		}
	}
	return value{}
}

func (b *bodyChecker) literal(x *ast.Literal) model.Symbol {
	switch x.Kind {
	case ast.LitInt:
		return model.Int
	case ast.LitLong:
		return model.Long
	case ast.LitFloat:
		return model.Float
	case ast.LitDouble:
		return model.Double
	case ast.LitChar:
		return model.Char
	case ast.LitBool:
		return model.Boolean
	case ast.LitNull:
		return model.Null
	case ast.LitString:
		return mustClass(b.s, stringQN)
	}
	return nil
}

func (b *bodyChecker) conditionalType(x, y model.Symbol) model.Symbol {
	switch {
	case !known(x) || !known(y):
		return nil
	case model.SameType(x, y):
		return x
	case b.isBoolean(x) && b.isBoolean(y):
		return model.Boolean
	}
	if p := b.binaryPromote(x, y); p != nil {
		return p
	}
	if x == model.Null {
		return b.boxed(y)
	}
	if y == model.Null {
		return b.boxed(x)
	}
	bx, by := b.boxed(x), b.boxed(y)
	if b.strict(bx, by) {
		return by
	}
	if b.strict(by, bx) {
		return bx
	}
	return mustClass(b.s, objectQN)
}

// ==========================================
// 3. 名字 (Names)
// ==========================================

// ident 按词法顺序查找: 本方法的局部变量, 本类 (含继承) 的字段,
// 外围方法被捕获的局部变量, 外围类的字段; 然后是类型名与包名
func (b *bodyChecker) ident(x *ast.Ident) value {
	name := x.Name
	v, next := b.scope.segment(name)
	if v != nil {
		return value{typ: v.Type, v: v, simple: true, lvalue: true}
	}

	uncertain := false
	for c := b.cls; c != nil; c = c.Outer {
		f, unsure := b.findField(c, name)
		if f != nil {
			b.checkFieldUse(f, c, x)
			return value{typ: f.Type, v: f, simple: true, lvalue: true}
		}
		uncertain = uncertain || unsure
		if (c.IsLocal || c.IsAnonymous) && next != nil {
			if v, next = next.segment(name); v != nil {
				return value{typ: v.Type, v: v, simple: true, lvalue: true}
			}
		}
	}

	if c := b.lookupType(name); c != nil {
		return value{typ: c, isType: true}
	}
	if b.s.Table.HasPackage(name) {
		return value{pkg: name}
	}
	if !uncertain {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownVariable, name), x)
	}
	return value{}
}

func (b *bodyChecker) fieldAccess(x *ast.FieldAccess) value {
	switch q := x.X.(type) {
	case *ast.SuperExpr:
		if b.static || b.noThis {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgThisInStatic, "super"), q)
			return value{}
		}
		if sup := b.cls.SuperClass(); sup != nil {
			return b.member(sup, x)
		}
		return value{}
	case *ast.ThisExpr:
		tv := b.thisValue(q)
		c, ok := tv.typ.(*model.ClassSymbol)
		if !ok {
			return value{}
		}
		v := b.member(c, x)
		v.simple = q.Qualifier == ""
		return v
	}

	recv := b.operand(x.X)
	switch {
	case recv.pkg != "":
		qn := recv.pkg + "." + x.Name
		if c := b.lookupType(qn); c != nil {
			return value{typ: c, isType: true}
		}
		if b.s.Table.HasPackage(qn) {
			return value{pkg: qn}
		}
		b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownVariable, qn), x)
		return value{}
	case recv.isType:
		c, ok := recv.typ.(*model.ClassSymbol)
		if !ok {
			return value{}
		}
		return b.staticMember(c, x)
	case recv.typ == model.Void:
		b.s.Diagnostics.Add(fmt.Sprintf(MsgVoidValue, recv.call), x.X)
		return value{}
	}

	switch t := recv.typ.(type) {
	case *model.ClassSymbol:
		return b.member(t, x)
	case *model.ArraySymbol:
		if x.Name == "length" {
			return value{typ: model.Int}
		}
		b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownField, x.Name, model.TypeName(t)), x)
	case *model.PrimitiveSymbol:
		b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownField, x.Name, model.TypeName(t)), x)
	}
	return value{}
}

// member 通过实例访问字段 (静态字段也允许)
func (b *bodyChecker) member(c *model.ClassSymbol, x *ast.FieldAccess) value {
	f, unsure := b.findField(c, x.Name)
	if f == nil {
		if !unsure {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownField, x.Name, c.DisplayName()), x)
		}
		return value{}
	}
	b.checkAccess(f.Name, f.Class, f.Modifiers, x)
	return value{typ: f.Type, v: f, lvalue: true}
}

// staticMember Type.name: 静态字段或嵌套类型
func (b *bodyChecker) staticMember(c *model.ClassSymbol, x *ast.FieldAccess) value {
	f, unsure := b.findField(c, x.Name)
	if f != nil {
		if !f.IsStatic() {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgStaticRefInstance, "field", f.Name), x)
		}
		b.checkAccess(f.Name, f.Class, f.Modifiers, x)
		return value{typ: f.Type, v: f, lvalue: true}
	}
	if n := nestedType(c, x.Name); n != nil {
		if !b.access.CanAccessType(b.cls, n) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgTypeNotAccessible, n.DisplayName(), b.cls.DisplayName()), x)
		}
		return value{typ: n, isType: true}
	}
	if !unsure {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownField, x.Name, c.DisplayName()), x)
	}
	return value{}
}

func (b *bodyChecker) thisValue(x *ast.ThisExpr) value {
	if x.Qualifier == "" {
		if b.static || b.noThis {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgThisInStatic, "this"), x)
			return value{}
		}
		return value{typ: b.cls}
	}
	c := b.lookupType(x.Qualifier)
	switch {
	case c == nil:
		b.s.Diagnostics.Add(fmt.Sprintf(MsgCannotResolve, x.Qualifier), x)
		return value{}
	case c == b.cls:
		return b.thisValue(&ast.ThisExpr{Base: x.Base})
	case !b.cls.EnclosedBy(c):
		b.s.Diagnostics.Add(fmt.Sprintf(MsgNotEnclosingClass, c.DisplayName()), x)
		return value{}
	case !enclosingInstance(b.cls, c, b.static):
		b.s.Diagnostics.Add(fmt.Sprintf(MsgThisInStatic, c.DisplayName()+".this"), x)
		return value{}
	}
	return value{typ: c}
}

// ==========================================
// 4. 字段与变量的读写 (Reads & writes)
// ==========================================

// findField 在类及其父类型中按名字查找字段; unsure 表示父类型链不完整, 找不到时不应报告
func (b *bodyChecker) findField(c *model.ClassSymbol, name string) (*model.VariableSymbol, bool) {
	unsure := false
	seen := make(map[*model.ClassSymbol]bool)
	queue := []*model.ClassSymbol{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if f := cur.Field(name); f != nil {
			return f, false
		}
		unsure = unsure || !membersKnown(cur)
		queue = append(queue, cur.Supertypes()...)
	}
	return nil, unsure
}

// membersKnown 类的成员表完整且直接父类型都已解析
func membersKnown(c *model.ClassSymbol) bool {
	if c.External && !c.MembersKnown {
		return false
	}
	if c.Super != nil && !model.IsResolved(c.Super) {
		return false
	}
	for _, i := range c.Interfaces {
		if !model.IsResolved(i) {
			return false
		}
	}
	return true
}

func nestedType(c *model.ClassSymbol, name string) *model.ClassSymbol {
	seen := make(map[*model.ClassSymbol]bool)
	queue := []*model.ClassSymbol{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if n := cur.NestedNamed(name); n != nil {
			return n
		}
		queue = append(queue, cur.Supertypes()...)
	}
	return nil
}

// instanceOf 当前位置是否有 c 的实例可用 (c 为本类或词法外围类)
func (b *bodyChecker) instanceOf(c *model.ClassSymbol) bool {
	if c == b.cls {
		return !b.static && !b.noThis
	}
	return enclosingInstance(b.cls, c, b.static)
}

// checkFieldUse 以简单名字引用的字段: 实例字段需要实例, 并检查可见性
func (b *bodyChecker) checkFieldUse(f *model.VariableSymbol, via *model.ClassSymbol, node model.Node) {
	if !f.IsStatic() && !b.instanceOf(via) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgStaticRefInstance, "field", f.Name), node)
	}
	b.checkAccess(f.Name, f.Class, f.Modifiers, node)
}

func (b *bodyChecker) checkAccess(name string, owner *model.ClassSymbol, mods model.Modifiers, node model.Node) {
	if !b.access.CanAccessMember(b.cls, owner, mods) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgNotAccessible, name, owner.DisplayName(), b.cls.DisplayName()), node)
	}
}

// readCheck 读取前必须确定已赋值: 本方法的局部变量, 以及构造函数与初始化器中本类的空白 final 字段。
// 初始化器中以简单名字读取后声明的字段是前向引用。
func (b *bodyChecker) readCheck(val value, node model.Node) {
	v := val.v
	if !v.Field {
		if b.own[v] && !b.flow.has(v) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgMayNotHaveValue, v.Name), node)
		}
		return
	}
	if !val.simple || v.Class != b.cls || v.IsStatic() != b.static {
		return
	}
	if b.initializer && !b.seen[v] {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgForwardReference, v.Name), node)
		return
	}
	if (b.ctor || b.initializer) && v.IsBlankFinal() && !b.flow.has(v) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgMayNotHaveValue, v.Name), node)
	}
}

// write 赋值: final 局部变量在同一路径上只能赋值一次;
// 空白 final 字段只能在本类的构造函数或同级初始化器中以简单名字赋值
func (b *bodyChecker) write(val value, node model.Node) {
	v := val.v
	if !v.IsFinal() {
		b.flow = b.flow.assign(v)
		return
	}
	if !v.Field {
		switch {
		case !b.own[v]:
			b.s.Diagnostics.Add(fmt.Sprintf(MsgFinalAssignOutside, v.Name), node)
		case v.HasInitializer || b.flow.has(v) || b.flow.mayHave(v):
			b.s.Diagnostics.Add(fmt.Sprintf(MsgFinalReassign, v.Name), node)
		default:
			b.loopWrite(v, node)
		}
		b.flow = b.flow.assign(v)
		return
	}

	inInit := val.simple && v.Class == b.cls && v.IsBlankFinal() &&
		(b.ctor || b.initializer) && v.IsStatic() == b.static
	switch {
	case !inInit:
		b.s.Diagnostics.Add(fmt.Sprintf(MsgFinalAssignOutside, v.Name), node)
	case b.flow.has(v) || b.flow.mayHave(v):
		b.s.Diagnostics.Add(fmt.Sprintf(MsgFinalReassign, v.Name), node)
	default:
		b.loopWrite(v, node)
	}
	b.flow = b.flow.assign(v)
}

// loopWrite 记录循环中对 final 变量的首次赋值, 由 leave 对照回边检查
func (b *bodyChecker) loopWrite(v *model.VariableSymbol, node model.Node) {
	var w *finalWrite
	for _, t := range b.jumps {
		if !t.loop {
			continue
		}
		if w == nil {
			w = &finalWrite{v: v, node: node}
		}
		t.writes = append(t.writes, w)
	}
}

// target 赋值左侧必须是变量或数组元素
func (b *bodyChecker) target(v value, node model.Node) bool {
	if v.isType || v.pkg != "" || (!v.lvalue && known(v.typ)) {
		b.s.Diagnostics.Add(MsgNotAVariable, node)
		return false
	}
	return v.lvalue
}

// ==========================================
// 5. 运算符 (Operators)
// ==========================================

func (b *bodyChecker) assign(x *ast.Assign) value {
	lhs := b.eval(x.LHS)
	if x.Op != "=" && lhs.v != nil {
		b.readCheck(lhs, x.LHS)
	}
	ok := b.target(lhs, x.LHS)

	if x.Op == "=" {
		if ok {
			b.checkInit(x.RHS, lhs.typ)
		} else {
			b.expr(x.RHS)
		}
	} else {
		rt := b.valueOf(x.RHS)
		op := strings.TrimSuffix(x.Op, "=")
		if ok && known(lhs.typ) && known(rt) && !(op == "+" && b.isString(lhs.typ)) && b.binaryType(op, lhs.typ, rt) == nil {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgBadOperands, model.TypeName(lhs.typ), model.TypeName(rt), x.Op), x)
		}
	}

	if ok && lhs.v != nil {
		b.write(lhs, x.LHS)
	}
	return value{typ: lhs.typ}
}

func (b *bodyChecker) binary(x *ast.Binary) value {
	l := b.valueOf(x.X)
	var r model.Symbol
	if x.Op == "&&" || x.Op == "||" {
		// 右侧不一定执行, 其中的赋值不算确定赋值
		saved := b.flow
		r = b.valueOf(x.Y)
		b.flow = saved
	} else {
		r = b.valueOf(x.Y)
	}

	relational := false
	switch x.Op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		relational = true
	}
	if !known(l) || !known(r) {
		if relational {
			return value{typ: model.Boolean}
		}
		return value{}
	}
	t := b.binaryType(x.Op, l, r)
	if t == nil {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgBadOperands, model.TypeName(l), model.TypeName(r), x.Op), x)
		if relational {
			return value{typ: model.Boolean}
		}
	}
	return value{typ: t}
}

// binaryType 二元运算的结果类型; 操作数类型不合法时返回 nil
func (b *bodyChecker) binaryType(op string, l, r model.Symbol) model.Symbol {
	switch op {
	case "+":
		if b.isString(l) || b.isString(r) {
			return mustClass(b.s, stringQN)
		}
		return prim(b.binaryPromote(l, r))
	case "-", "*", "/", "%":
		return prim(b.binaryPromote(l, r))
	case "<<", ">>", ">>>":
		pl, pr := b.unaryPromote(l), b.unaryPromote(r)
		if pl != nil && pr != nil && pl.IsIntegral() && pr.IsIntegral() {
			return pl
		}
	case "<", ">", "<=", ">=":
		if b.binaryPromote(l, r) != nil {
			return model.Boolean
		}
	case "==", "!=":
		if b.binaryPromote(l, r) != nil || (b.isBoolean(l) && b.isBoolean(r)) {
			return model.Boolean
		}
		if model.IsReference(l) && model.IsReference(r) && b.castable(l, r) {
			return model.Boolean
		}
	case "&", "|", "^":
		if b.isBoolean(l) && b.isBoolean(r) {
			return model.Boolean
		}
		if p := b.binaryPromote(l, r); p != nil && p.IsIntegral() {
			return p
		}
	case "&&", "||":
		if b.isBoolean(l) && b.isBoolean(r) {
			return model.Boolean
		}
	}
	return nil
}

func (b *bodyChecker) unary(x *ast.Unary) value {
	switch x.Op {
	case "++", "--":
		v := b.operand(x.X)
		ok := b.target(v, x.X)
		if known(v.typ) && b.unaryPromote(v.typ) == nil {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgBadOperand, model.TypeName(v.typ), x.Op), x)
		}
		if ok && v.v != nil {
			b.write(v, x.X)
		}
		return value{typ: v.typ}
	case "!":
		t := b.valueOf(x.X)
		if known(t) && !b.isBoolean(t) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgBadOperand, model.TypeName(t), x.Op), x)
		}
		return value{typ: model.Boolean}
	case "~", "+", "-":
		t := b.valueOf(x.X)
		if !known(t) {
			return value{}
		}
		p := b.unaryPromote(t)
		if p == nil || (x.Op == "~" && !p.IsIntegral()) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgBadOperand, model.TypeName(t), x.Op), x)
			return value{}
		}
		return value{typ: p}
	}
	b.expr(x.X)
	return value{}
}

// ==========================================
// 6. 数组 (Arrays)
// ==========================================

func (b *bodyChecker) index(x *ast.Index) value {
	at := b.valueOf(x.X)
	it := b.valueOf(x.Index)
	if known(it) && b.unaryPromote(it) != model.Int {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgArrayIndexType, model.TypeName(it)), x.Index)
	}
	arr, ok := at.(*model.ArraySymbol)
	if !ok {
		if known(at) {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgNotArray, model.TypeName(at)), x.X)
		}
		return value{lvalue: true}
	}
	return value{typ: arr.Elem, lvalue: true}
}

func (b *bodyChecker) newArray(x *ast.NewArray) value {
	elem := b.resolveType(x.Elem, 0)
	for _, d := range x.DimExprs {
		if t := b.valueOf(d); known(t) && b.unaryPromote(t) != model.Int {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgArrayDimType, model.TypeName(t)), d)
		}
	}
	if elem == nil {
		if x.Init != nil {
			b.arrayInit(x.Init, nil)
		}
		return value{}
	}
	t := wrapDims(b.s, elem, len(x.DimExprs)+x.ExtraDims)
	if x.Init != nil {
		b.arrayInit(x.Init, t)
	}
	return value{typ: t}
}

// ==========================================
// 7. 方法调用 (Method invocation)
// ==========================================

func (b *bodyChecker) call(x *ast.MethodCall) value {
	args := b.args(x.Args)

	var (
		target   *model.ClassSymbol
		cands    []*model.MethodSymbol
		unsure   bool
		instance bool // 接收者实例是否可用
	)
	switch r := x.Recv.(type) {
	case nil:
		// 沿词法外围链找到第一个声明了该名字方法的类
		for c := b.cls; c != nil; c = c.Outer {
			ms, u := b.candidates(c, x.Name)
			unsure = unsure || u
			if len(ms) > 0 {
				target, cands, instance = c, ms, b.instanceOf(c)
				break
			}
		}
		if target == nil {
			target = b.cls
		}
	case *ast.SuperExpr:
		if b.static || b.noThis {
			b.s.Diagnostics.Add(fmt.Sprintf(MsgThisInStatic, "super"), r)
			return value{}
		}
		if target = b.cls.SuperClass(); target == nil {
			return value{}
		}
		cands, unsure = b.candidates(target, x.Name)
		instance = true
	default:
		recv := b.operand(r)
		switch {
		case recv.pkg != "":
			b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownVariable, recv.pkg), r)
			return value{}
		case recv.typ == model.Void:
			b.s.Diagnostics.Add(fmt.Sprintf(MsgVoidValue, recv.call), r)
			return value{}
		}
		switch t := recv.typ.(type) {
		case *model.ClassSymbol:
			target = t
		case *model.ArraySymbol:
			target = mustClass(b.s, objectQN)
		case *model.PrimitiveSymbol:
			b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownMethod, model.TypeName(t), model.FormatSignature(x.Name, args)), x)
			return value{}
		default:
			return value{}
		}
		cands, unsure = b.candidates(target, x.Name)
		instance = !recv.isType
	}

	unsure = unsure || !allKnown(args)
	m, ambiguous := b.selectMethod(cands, args)
	if m == nil {
		switch {
		case unsure:
		case ambiguous:
			b.s.Diagnostics.Add(fmt.Sprintf(MsgAmbiguousMethod, x.Name, target.DisplayName()), x)
		default:
			b.s.Diagnostics.Add(fmt.Sprintf(MsgUnknownMethod, target.DisplayName(), model.FormatSignature(x.Name, args)), x)
		}
		return value{}
	}

	if !m.Modifiers.Has(model.Static) && !instance {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgStaticRefInstance, "method", m.Signature()), x)
	}
	b.checkAccess(m.Signature(), m.Owner, m.Modifiers, x)
	for _, t := range m.Throws {
		b.raise(t, x, m)
	}
	if m.IsVoid() {
		return value{typ: model.Void, call: x.Name}
	}
	return value{typ: m.Return}
}

// candidates c 及其父类型中名为 name 的方法; 同签名的只保留最下层的一个。接口同样拥有 Object 的方法。
func (b *bodyChecker) candidates(c *model.ClassSymbol, name string) ([]*model.MethodSymbol, bool) {
	var out []*model.MethodSymbol
	unsure := false
	sigs := make(map[string]bool)
	seen := make(map[*model.ClassSymbol]bool)
	queue := []*model.ClassSymbol{c}
	if c.IsInterface {
		queue = append(queue, mustClass(b.s, objectQN))
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		unsure = unsure || !membersKnown(cur)
		for _, m := range cur.MethodsNamed(name) {
			key := model.FormatSignature(m.Name, m.ParamTypes())
			if sigs[key] {
				continue
			}
			sigs[key] = true
			out = append(out, m)
		}
		queue = append(queue, cur.Supertypes()...)
	}
	return out, unsure
}

// selectMethod 三个阶段依次尝试: 严格转换, 宽松转换 (装箱), 可变参数; 在第一个有候选的阶段取最具体的方法
func (b *bodyChecker) selectMethod(cands []*model.MethodSymbol, args []model.Symbol) (*model.MethodSymbol, bool) {
	phases := []func(*model.MethodSymbol) bool{
		func(m *model.MethodSymbol) bool { return b.applicable(m, args, b.strict) },
		func(m *model.MethodSymbol) bool { return b.applicable(m, args, b.loose) },
		func(m *model.MethodSymbol) bool { return b.applicableVarargs(m, args) },
	}
	for _, ok := range phases {
		var app []*model.MethodSymbol
		for _, m := range cands {
			if ok(m) {
				app = append(app, m)
			}
		}
		if len(app) > 0 {
			best := b.mostSpecific(app)
			return best, best == nil
		}
	}
	return nil, false
}

func (b *bodyChecker) applicable(m *model.MethodSymbol, args []model.Symbol, conv func(from, to model.Symbol) bool) bool {
	if len(m.Params) != len(args) {
		return false
	}
	for i, a := range args {
		if !conv(a, m.Params[i].Type) {
			return false
		}
	}
	return true
}

func (b *bodyChecker) applicableVarargs(m *model.MethodSymbol, args []model.Symbol) bool {
	n := len(m.Params) - 1
	if !m.Varargs || n < 0 || len(args) < n {
		return false
	}
	arr, ok := m.Params[n].Type.(*model.ArraySymbol)
	if !ok {
		return false
	}
	for i := 0; i < n; i++ {
		if !b.loose(args[i], m.Params[i].Type) {
			return false
		}
	}
	for _, a := range args[n:] {
		if !b.loose(a, arr.Elem) {
			return false
		}
	}
	return true
}

// mostSpecific 唯一的最具体方法; 不存在时返回 nil (调用有歧义)
func (b *bodyChecker) mostSpecific(app []*model.MethodSymbol) *model.MethodSymbol {
	var best []*model.MethodSymbol
	for _, m := range app {
		maximal := true
		for _, o := range app {
			if o != m && b.moreSpecific(o, m) && !b.moreSpecific(m, o) {
				maximal = false
				break
			}
		}
		if maximal {
			best = append(best, m)
		}
	}
	if len(best) == 0 {
		return nil
	}
	for _, m := range best[1:] {
		if !m.SameParams(best[0].ParamTypes()) {
			return nil
		}
	}
	return best[0]
}

func (b *bodyChecker) moreSpecific(m, o *model.MethodSymbol) bool {
	if len(m.Params) != len(o.Params) {
		return false
	}
	for i, p := range m.Params {
		if !b.strict(p.Type, o.Params[i].Type) {
			return false
		}
	}
	return true
}

func allKnown(types []model.Symbol) bool {
	for _, t := range types {
		if !known(t) {
			return false
		}
	}
	return true
}

// ==========================================
// 8. 对象创建与构造函数调用 (Instance creation)
// ==========================================

func (b *bodyChecker) newObject(x *ast.NewObject) value {
	if b.s.Diagnostics.Ignored(x) {
		return value{}
	}
	var outer model.Symbol
	if x.Outer != nil {
		outer = b.valueOf(x.Outer)
	}
	args := b.args(x.Args)

	var t model.Symbol
	if x.Outer != nil {
		// outer.new Inner(): Inner 在 outer 的类型中查找
		if oc, ok := outer.(*model.ClassSymbol); ok {
			if n := nestedType(oc, x.Type.Name); n != nil {
				t = n
			} else {
				b.s.Diagnostics.Add(fmt.Sprintf(MsgCannotResolve, x.Type.Name), x.Type)
			}
		}
	} else {
		t = b.resolveType(x.Type, 0)
	}

	c, ok := t.(*model.ClassSymbol)
	if ok && needsOuterInstance(c) && x.Outer == nil && !enclosingInstance(b.cls, c.Outer, b.static || b.noThis) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgInnerNeedsOuter, c.Outer.DisplayName(), c.DisplayName()), x)
	}

	if x.Body != nil {
		if ok {
			if c.IsInterface {
				if len(args) > 0 {
					disp := c.DisplayName()
					b.s.Diagnostics.Add(fmt.Sprintf(MsgNoConstructor, disp, model.FormatSignature(disp, args)), x)
				}
			} else {
				b.resolveCtor(c, args, x)
			}
		}
		b.checkDecl(b.s, b.fc, x.Body, b.scope)
		if anon := b.s.ClassFor(x.Body); anon != nil {
			return value{typ: anon}
		}
		return value{typ: t}
	}

	if !ok {
		return value{}
	}
	if c.IsAbstract() {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgInstantiateAbstract, c.DisplayName()), x)
		return value{typ: c}
	}
	b.resolveCtor(c, args, x)
	return value{typ: c}
}

// resolveCtor 按方法重载规则选择构造函数, 并登记其声明的异常
func (b *bodyChecker) resolveCtor(c *model.ClassSymbol, args []model.Symbol, node model.Node) *model.MethodSymbol {
	m, ambiguous := b.selectMethod(c.Constructors(), args)
	if m == nil {
		unsure := (c.External && !c.MembersKnown) || !allKnown(args)
		disp := c.DisplayName()
		switch {
		case unsure:
		case ambiguous:
			b.s.Diagnostics.Add(fmt.Sprintf(MsgAmbiguousMethod, disp, disp), node)
		default:
			b.s.Diagnostics.Add(fmt.Sprintf(MsgNoConstructor, disp, model.FormatSignature(disp, args)), node)
		}
		return nil
	}
	b.checkAccess(m.Signature(), c, m.Modifiers, node)
	for _, t := range m.Throws {
		b.raise(t, node, m)
	}
	return m
}

// constructorCall 构造函数第一条语句 this(...) / super(...)
func (b *bodyChecker) constructorCall(call *ast.ConstructorCall) {
	b.noThis = true
	var qual value
	if call.Qualifier != nil {
		qual = b.operand(call.Qualifier)
	}
	args := b.args(call.Args)
	b.noThis = false

	if !call.Super {
		m := b.resolveCtor(b.cls, args, call)
		if m == nil {
			return
		}
		b.thisCalls[b.method] = m
		// 被调用的构造函数负责初始化全部 final 字段
		for _, f := range b.cls.Fields {
			if !f.IsStatic() && f.IsBlankFinal() {
				b.flow = b.flow.assign(f)
			}
		}
		return
	}

	sup := b.cls.SuperClass()
	if sup == nil {
		return
	}
	if call.Qualifier != nil {
		switch {
		case !needsOuterInstance(sup):
			b.s.Diagnostics.Add(fmt.Sprintf(MsgQualifiedSuperStatic, sup.DisplayName()), call.Qualifier)
		case qual.isType:
			b.s.Diagnostics.Add(fmt.Sprintf(MsgQualifiedSuperNotVal, model.TypeName(qual.typ)), call.Qualifier)
		case known(qual.typ) && qual.typ != model.Symbol(sup.Outer):
			b.s.Diagnostics.Add(fmt.Sprintf(MsgQualifiedSuperType, sup.Outer.DisplayName(), model.TypeName(qual.typ)), call.Qualifier)
		}
	} else if needsOuterInstance(sup) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgInnerSuperImplicit, b.cls.DisplayName(), sup.Outer.DisplayName(), sup.DisplayName()), call)
		return
	}
	b.resolveCtor(sup, args, call)
}

// implicitSuper 没有显式构造函数调用时的 super()
func (b *bodyChecker) implicitSuper(node model.Node) {
	sup := b.cls.SuperClass()
	if sup == nil {
		return
	}
	// 成员内部类作父类时外部实例必须显式给出, 即使词法上存在外围实例
	if needsOuterInstance(sup) {
		b.s.Diagnostics.Add(fmt.Sprintf(MsgInnerSuperImplicit, b.cls.DisplayName(), sup.Outer.DisplayName(), sup.DisplayName()), node)
		return
	}
	b.resolveCtor(sup, nil, node)
}
