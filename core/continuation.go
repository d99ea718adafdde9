package core

import (
	"github.com/CodMac/level-lens/model"
)

// Continuation 一条待解析记录: 某处引用了 Name, 但其定义尚未处理。
// Resume 在名字解析成功后被调用, 把真实符号回填到引用处。
type Continuation struct {
	Name   string
	File   *FileContext
	Scope  *model.ClassSymbol // 引用发生时的词法外围类, 顶层位置为 nil
	Locals *model.LocalScope  // 引用处可见的局部类
	Node   model.Node
	Stub   *model.Unresolved
	Resume func(model.Symbol)
}

// Continuations continuation 登记表。同一个名字共享同一个占位符号。
type Continuations struct {
	items []*Continuation
	stubs map[string]*model.Unresolved
}

func NewContinuations() *Continuations {
	return &Continuations{stubs: make(map[string]*model.Unresolved)}
}

// Stub 返回名字对应的占位符号 (同名复用同一实例)
func (c *Continuations) Stub(name string) *model.Unresolved {
	if u, ok := c.stubs[name]; ok {
		return u
	}
	u := model.NewUnresolved(name)
	c.stubs[name] = u
	return u
}

func (c *Continuations) Register(k *Continuation) {
	if k.Stub == nil {
		k.Stub = c.Stub(k.Name)
	}
	c.items = append(c.items, k)
}

// Pending 按登记顺序返回尚未解析的记录
func (c *Continuations) Pending() []*Continuation {
	out := make([]*Continuation, len(c.items))
	copy(out, c.items)
	return out
}

// Retain 用仍未解析的记录替换登记表
func (c *Continuations) Retain(keep []*Continuation) {
	c.items = keep
}

func (c *Continuations) Len() int { return len(c.items) }
