package core

import (
	"fmt"
	"sync"

	"github.com/CodMac/level-lens/model"
)

// Diagnostics 整个运行范围内按检测顺序追加的诊断列表。不去重。
type Diagnostics struct {
	items   []*model.Diagnostic
	ignored map[model.Node]bool
	mutex   sync.Mutex
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{ignored: make(map[model.Node]bool)}
}

// Add 记录一条诊断; 节点已被 AddAndIgnore 标记时不再记录
func (d *Diagnostics) Add(message string, node model.Node) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if node != nil && d.ignored[node] {
		return
	}
	d.items = append(d.items, newDiagnostic(message, node))
}

func (d *Diagnostics) Addf(node model.Node, format string, args ...any) {
	d.Add(fmt.Sprintf(format, args...), node)
}

// AddAndIgnore 记录诊断, 并抑制之后针对同一节点的级联诊断
func (d *Diagnostics) AddAndIgnore(message string, node model.Node) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if node != nil {
		if d.ignored[node] {
			return
		}
		d.ignored[node] = true
	}
	d.items = append(d.items, newDiagnostic(message, node))
}

func (d *Diagnostics) Ignored(node model.Node) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.ignored[node]
}

func (d *Diagnostics) Items() []*model.Diagnostic {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	out := make([]*model.Diagnostic, len(d.items))
	copy(out, d.items)
	return out
}

func (d *Diagnostics) Len() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.items)
}

// Messages 只返回消息文本, 测试中常用
func (d *Diagnostics) Messages() []string {
	items := d.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Message
	}
	return out
}

func newDiagnostic(message string, node model.Node) *model.Diagnostic {
	diag := &model.Diagnostic{Message: message, Node: node}
	if node != nil {
		diag.Location = node.Loc()
	}
	return diag
}
