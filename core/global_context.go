package core

import (
	"strings"
	"sync"

	"github.com/CodMac/level-lens/model"
)

// SymbolTable 整个编译过程范围内的符号表: 限定名 -> 类符号
type SymbolTable struct {
	classes  map[string]*model.ClassSymbol
	order    []*model.ClassSymbol
	arrays   map[string]*model.ArraySymbol
	packages map[string]bool
	mutex    sync.RWMutex
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		classes:  make(map[string]*model.ClassSymbol),
		arrays:   make(map[string]*model.ArraySymbol),
		packages: make(map[string]bool),
	}
}

// Define 登记一个类; 同名类已存在时返回已有的类且不覆盖
func (st *SymbolTable) Define(c *model.ClassSymbol) *model.ClassSymbol {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	if prev, ok := st.classes[c.QualifiedName]; ok {
		return prev
	}
	st.classes[c.QualifiedName] = c
	st.order = append(st.order, c)
	st.registerPackage(c.Package)
	return nil
}

func (st *SymbolTable) Lookup(qn string) (*model.ClassSymbol, bool) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	c, ok := st.classes[qn]
	return c, ok
}

// Classes 按定义顺序返回所有类
func (st *SymbolTable) Classes() []*model.ClassSymbol {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	out := make([]*model.ClassSymbol, len(st.order))
	copy(out, st.order)
	return out
}

// SourceClasses 由源码定义的类 (排除内置库类)
func (st *SymbolTable) SourceClasses() []*model.ClassSymbol {
	var out []*model.ClassSymbol
	for _, c := range st.Classes() {
		if !c.External {
			out = append(out, c)
		}
	}
	return out
}

// ArrayOf 数组类型按名字缓存, 保证同一元素类型得到同一个实例
func (st *SymbolTable) ArrayOf(elem model.Symbol) *model.ArraySymbol {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	key := elem.Name() + "[]"
	if a, ok := st.arrays[key]; ok && model.SameType(a.Elem, elem) {
		return a
	}
	a := model.NewArraySymbol(elem)
	if model.IsResolved(elem) {
		st.arrays[key] = a
	}
	return a
}

// HasPackage 报告是否有类定义在该包或其子包中
func (st *SymbolTable) HasPackage(name string) bool {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	return st.packages[name]
}

// registerPackage 把包名按点号拆分逐级注册 (com, com.example, ...)
func (st *SymbolTable) registerPackage(packageName string) {
	if packageName == "" {
		return
	}
	parts := strings.Split(packageName, ".")
	for i := range parts {
		st.packages[strings.Join(parts[:i+1], ".")] = true
	}
}

func (st *SymbolTable) RLock() { st.mutex.RLock() }

func (st *SymbolTable) RUnlock() { st.mutex.RUnlock() }
