package model

// LocalScope 方法体中一个块内声明的局部类。
// 局部类从声明处起到所在块结束可见, 内层块遮蔽外层块。
type LocalScope struct {
	Parent  *LocalScope
	classes map[string]*ClassSymbol
}

// Push 进入一个新块; 对 nil 调用得到一个根块
func (ls *LocalScope) Push() *LocalScope {
	return &LocalScope{Parent: ls}
}

func (ls *LocalScope) Declare(name string, c *ClassSymbol) {
	if ls.classes == nil {
		ls.classes = make(map[string]*ClassSymbol)
	}
	ls.classes[name] = c
}

// Lookup 由内向外查找; nil 作用域中什么都找不到
func (ls *LocalScope) Lookup(name string) *ClassSymbol {
	for cur := ls; cur != nil; cur = cur.Parent {
		if c, ok := cur.classes[name]; ok {
			return c
		}
	}
	return nil
}
