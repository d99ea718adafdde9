package java

import (
	"fmt"
	"strings"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

type Binder struct {
	access AccessChecker
}

func NewJavaBinder() *Binder {
	return &Binder{}
}

// BindSymbols 链接完成后执行, 顺序固定:
// 1. 继承关系校验 (环、extends/implements 的种类、final 父类、可见性), 保证类型检查前父类链无环
// 2. 用已解析的字段类型刷新合成的构造函数
// 3. 增强级别: 合成访问器与 toString/equals/hashCode, 检查测试类的 test 方法
// 4. 增强级别: 构造函数参数前缀上父类生成构造函数的参数 (父类在前)
func (b *Binder) BindSymbols(s *core.Session) {
	classes := s.Table.SourceClasses()

	for _, cls := range classes {
		b.checkHierarchy(s, cls)
	}
	for _, cls := range classes {
		b.refreshGenerated(cls)
	}
	for _, cls := range classes {
		if cls.Level.Augments() && !cls.IsInterface {
			b.augment(s, cls)
		}
	}

	done := make(map[*model.ClassSymbol]bool)
	for _, cls := range classes {
		b.prefixSuperParams(cls, done)
	}
}

// ==========================================
// 1. 继承关系 (Hierarchy)
// ==========================================

func (b *Binder) checkHierarchy(s *core.Session, cls *model.ClassSymbol) {
	decl, _ := cls.Decl.(*ast.ClassDecl)
	superNode, ifaceNode := b.headerNodes(cls, decl)
	object := mustClass(s, objectQN)

	if b.inCycle(cls) {
		s.Diagnostics.AddAndIgnore(fmt.Sprintf(MsgCyclicInheritance, cls.DisplayName()), superNode)
		// 断开环, 之后的各遍可以安全地沿父类链行走
		if cls.IsInterface {
			cls.Interfaces = nil
		} else {
			cls.Super = object
			cls.Interfaces = nil
		}
		return
	}

	if sup, ok := cls.Super.(*model.ClassSymbol); ok && !cls.IsInterface {
		switch {
		case sup.IsInterface && !cls.IsAnonymous:
			s.Diagnostics.Add(fmt.Sprintf(MsgExtendsInterface, cls.DisplayName(), sup.DisplayName()), superNode)
			cls.Super = object
		case sup.Modifiers.Has(model.Final):
			s.Diagnostics.Add(fmt.Sprintf(MsgExtendsFinal, cls.DisplayName(), sup.DisplayName()), superNode)
		case !b.access.CanAccessType(cls, sup):
			s.Diagnostics.Add(fmt.Sprintf(MsgTypeNotAccessible, sup.DisplayName(), cls.DisplayName()), superNode)
		}
	}

	for i, iface := range cls.Interfaces {
		ic, ok := iface.(*model.ClassSymbol)
		if !ok {
			continue
		}
		node := ifaceNode(i)
		switch {
		case !ic.IsInterface && cls.IsInterface:
			s.Diagnostics.Add(fmt.Sprintf(MsgInterfaceExtends, cls.DisplayName(), ic.DisplayName()), node)
		case !ic.IsInterface:
			s.Diagnostics.Add(fmt.Sprintf(MsgImplementsClass, cls.DisplayName(), ic.DisplayName()), node)
		case !b.access.CanAccessType(cls, ic):
			s.Diagnostics.Add(fmt.Sprintf(MsgTypeNotAccessible, ic.DisplayName(), cls.DisplayName()), node)
		}
	}
}

// headerNodes 诊断挂在 extends / implements 的类型引用上, 没有时挂在类声明上
func (b *Binder) headerNodes(cls *model.ClassSymbol, decl *ast.ClassDecl) (model.Node, func(int) model.Node) {
	var superNode model.Node = cls.Decl
	if decl != nil && decl.Super != nil {
		superNode = decl.Super
	}
	return superNode, func(i int) model.Node {
		if decl != nil && i < len(decl.Implements) {
			return decl.Implements[i]
		}
		return cls.Decl
	}
}

// inCycle cls 能否沿父类型回到自身
func (b *Binder) inCycle(cls *model.ClassSymbol) bool {
	seen := make(map[*model.ClassSymbol]bool)
	var walk func(*model.ClassSymbol) bool
	walk = func(cur *model.ClassSymbol) bool {
		for _, sup := range cur.Supertypes() {
			if sup == cls {
				return true
			}
			if seen[sup] {
				continue
			}
			seen[sup] = true
			if walk(sup) {
				return true
			}
		}
		return false
	}
	return walk(cls)
}

// ==========================================
// 2. 合成成员 (Generated members)
// ==========================================

// refreshGenerated 合成构造函数的形参与字段同名, 类型以链接后的字段类型为准
func (b *Binder) refreshGenerated(cls *model.ClassSymbol) {
	for _, ctor := range cls.Constructors() {
		if !ctor.Generated {
			continue
		}
		for _, p := range ctor.Params {
			if f := cls.Field(p.Name); f != nil {
				p.Type = f.Type
			}
		}
	}
}

func (b *Binder) augment(s *core.Session, cls *model.ClassSymbol) {
	// 访问器: 与字段同名、无参、返回字段类型
	for _, f := range cls.Fields {
		if f.IsStatic() || cls.FindMethod(f.Name, nil) != nil {
			continue
		}
		cls.AddMethod(&model.MethodSymbol{Name: f.Name, Modifiers: model.Public, Return: f.Type, Generated: true})
	}

	if cls.IsAnonymous || cls.IsLocal {
		return
	}
	if isTestFixture(s, cls) {
		b.checkTestMethods(s, cls)
		return
	}

	object := mustClass(s, objectQN)
	generated := []*model.MethodSymbol{
		{Name: "toString", Return: mustClass(s, stringQN)},
		{Name: "equals", Return: model.Boolean, Params: []*model.VariableSymbol{{Name: "o", Type: object, Param: true, HasValue: true}}},
		{Name: "hashCode", Return: model.Int},
	}
	for _, m := range generated {
		if cls.FindMethod(m.Name, m.ParamTypes()) != nil {
			continue
		}
		m.Modifiers = model.Public
		m.Generated = true
		for _, p := range m.Params {
			p.Method = m
		}
		cls.AddMethod(m)
	}
}

// checkTestMethods 测试类中以 test 开头的方法必须是 public void 且无参
func (b *Binder) checkTestMethods(s *core.Session, cls *model.ClassSymbol) {
	for _, m := range cls.UserMethods() {
		if m.Constructor || !strings.HasPrefix(m.Name, "test") {
			continue
		}
		if !m.Modifiers.Has(model.Public) || !m.IsVoid() || len(m.Params) > 0 {
			s.Diagnostics.Add(fmt.Sprintf(MsgTestMethodSig, m.Signature()), m.Decl)
		}
	}
}

// prefixSuperParams 增强级别的生成构造函数需要同时初始化父类的字段
func (b *Binder) prefixSuperParams(cls *model.ClassSymbol, done map[*model.ClassSymbol]bool) {
	if done[cls] {
		return
	}
	done[cls] = true

	ctor := augmentedCtor(cls)
	sup := cls.SuperClass()
	if ctor == nil || sup == nil {
		return
	}
	b.prefixSuperParams(sup, done)
	superCtor := augmentedCtor(sup)
	if superCtor == nil || len(superCtor.Params) == 0 {
		return
	}

	params := make([]*model.VariableSymbol, 0, len(superCtor.Params)+len(ctor.Params))
	for _, p := range superCtor.Params {
		params = append(params, &model.VariableSymbol{Name: p.Name, Type: p.Type, Param: true, HasValue: true, Method: ctor})
	}
	ctor.Params = append(params, ctor.Params...)
}

// augmentedCtor 增强级别源码类的唯一生成构造函数
func augmentedCtor(cls *model.ClassSymbol) *model.MethodSymbol {
	if cls.External || !cls.Level.Augments() {
		return nil
	}
	ctors := cls.Constructors()
	if len(ctors) != 1 || !ctors[0].Generated {
		return nil
	}
	return ctors[0]
}
