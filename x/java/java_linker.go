package java

import (
	"fmt"

	"github.com/CodMac/level-lens/core"
)

type Linker struct {
	resolver core.SymbolResolver
}

func NewJavaLinker() *Linker {
	resolver, err := core.GetSymbolResolver(core.LangJava)
	if err != nil {
		panic(err)
	}
	return &Linker{resolver: resolver}
}

// Link 以不动点方式消解 continuation:
// 1. 每一轮按登记顺序重新查找所有待定名字, 找到的通过 Resume 回填引用处
// 2. 某一轮没有任何进展即停止 (每次成功都让待定集合严格变小, 必然终止)
// 3. 剩余的每一条记录报告为无法解析的符号
func (l *Linker) Link(s *core.Session) {
	for {
		progress := false
		var keep []*core.Continuation
		for _, k := range s.Continuations.Pending() {
			sym := l.resolver.LookupType(s, k.File, k.Scope, k.Locals, k.Name)
			if sym == nil {
				keep = append(keep, k)
				continue
			}
			k.Resume(sym)
			progress = true
		}
		s.Continuations.Retain(keep)
		if !progress {
			break
		}
	}

	for _, k := range s.Continuations.Pending() {
		s.Diagnostics.AddAndIgnore(fmt.Sprintf(MsgCannotResolve, k.Name), k.Node)
	}
}
