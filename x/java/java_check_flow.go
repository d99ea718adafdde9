package java

import "github.com/CodMac/level-lens/model"

// ==========================================
// 1. 确定赋值集合 (Definite assignment)
// ==========================================

// assignedSet 已确定赋值的变量, 不可变的持久链表。
// 各分支在同一个前缀上各自延伸, 汇合处取交集, 不需要手动撤销。
type assignedSet struct {
	v    *model.VariableSymbol
	next *assignedSet
}

func (a *assignedSet) has(v *model.VariableSymbol) bool {
	for cur := a; cur != nil; cur = cur.next {
		if cur.v == v {
			return true
		}
	}
	return false
}

func (a *assignedSet) with(v *model.VariableSymbol) *assignedSet {
	if a.has(v) {
		return a
	}
	return &assignedSet{v: v, next: a}
}

func (a *assignedSet) intersect(b *assignedSet) *assignedSet {
	var out *assignedSet
	for cur := a; cur != nil; cur = cur.next {
		if b.has(cur.v) {
			out = out.with(cur.v)
		}
	}
	return out
}

func (a *assignedSet) union(b *assignedSet) *assignedSet {
	out := a
	for cur := b; cur != nil; cur = cur.next {
		out = out.with(cur.v)
	}
	return out
}

// flow 控制流状态。dead 表示当前位置不可达, 此时任何变量都视为已赋值。
// set 是确定已赋值的变量, maybe 是在某条到达当前位置的路径上赋过值的变量。
type flow struct {
	set   *assignedSet
	maybe *assignedSet
	dead  bool
}

func (f flow) has(v *model.VariableSymbol) bool {
	return f.dead || f.set.has(v)
}

// mayHave 是否可能已被赋值; 不可达位置不算
func (f flow) mayHave(v *model.VariableSymbol) bool {
	return !f.dead && f.maybe.has(v)
}

func (f flow) assign(v *model.VariableSymbol) flow {
	f.set = f.set.with(v)
	f.maybe = f.maybe.with(v)
	return f
}

// restart 从 from 的确定赋值集合重新开始, maybe 保留两者的并集 (catch 与 finally 的入口)
func (f flow) restart(from flow) flow {
	return flow{set: from.set, maybe: from.maybe.union(f.maybe)}
}

func (f flow) kill() flow {
	f.dead = true
	return f
}

// join 控制流汇合: 只合并可达的分支, set 取交集, maybe 取并集; 全部不可达时结果也不可达
func join(flows ...flow) flow {
	var out flow
	first := true
	for _, f := range flows {
		if f.dead {
			continue
		}
		if first {
			out, first = f, false
			continue
		}
		out.set = out.set.intersect(f.set)
		out.maybe = out.maybe.union(f.maybe)
	}
	if first {
		if len(flows) > 0 {
			return flows[0].kill()
		}
		return flow{dead: true}
	}
	return out
}

// ==========================================
// 2. 局部变量作用域 (Scopes)
// ==========================================

// scope 块作用域链。boundary 标记一个方法体的最外层;
// 越过 boundary 看到的是外围方法的变量 (被局部类或匿名类捕获)。
type scope struct {
	vars     map[string]*model.VariableSymbol
	types    *model.LocalScope // 本块声明的局部类; 方法体边界处重新开始
	parent   *scope
	boundary bool
}

func newScope(parent *scope, boundary bool) *scope {
	var outer *model.LocalScope
	if parent != nil && !boundary {
		outer = parent.types
	}
	return &scope{vars: make(map[string]*model.VariableSymbol), types: outer.Push(), parent: parent, boundary: boundary}
}

// segment 在一个方法体内 (到 boundary 为止) 查找变量;
// 找不到时返回下一段的起点, 即外围方法中被捕获的作用域
func (sc *scope) segment(name string) (*model.VariableSymbol, *scope) {
	for cur := sc; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, nil
		}
		if cur.boundary {
			return nil, cur.parent
		}
	}
	return nil, nil
}

// declared 同一方法体内是否已有同名变量 (不看被捕获的外层变量)
func (sc *scope) declared(name string) bool {
	for cur := sc; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			return true
		}
		if cur.boundary {
			break
		}
	}
	return false
}

// ==========================================
// 3. 跳转目标 (break / continue)
// ==========================================

type jumpTarget struct {
	label     string
	loop      bool
	swtch     bool
	breaks    []flow
	continues []flow

	// 循环体中对 final 变量的赋值; 回边上可能已赋值时是重复赋值
	writes   []*finalWrite
	declared map[*model.VariableSymbol]bool // 循环体中声明的变量, 每轮都是新的
}

type finalWrite struct {
	v        *model.VariableSymbol
	node     model.Node
	reported bool
}
