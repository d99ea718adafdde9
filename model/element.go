package model

import "fmt"

// --- 符号类型 (Symbol Kinds) ---

// SymbolKind 是表示符号类别的字符串常量
type SymbolKind string

const (
	KindClass       SymbolKind = "CLASS"       // 类
	KindInterface   SymbolKind = "INTERFACE"   // 接口
	KindArray       SymbolKind = "ARRAY"       // 数组类型 (包装元素类型)
	KindPrimitive   SymbolKind = "PRIMITIVE"   // 基本类型 (int, boolean, void, null ...)
	KindUnresolved  SymbolKind = "UNRESOLVED"  // 尚未解析的类型名 (continuation 占位)
	KindMethod      SymbolKind = "METHOD"      // 方法
	KindConstructor SymbolKind = "CONSTRUCTOR" // 构造函数
	KindField       SymbolKind = "FIELD"       // 字段
	KindVariable    SymbolKind = "VARIABLE"    // 局部变量/形参
)

// Location 描述了符号或诊断在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

func (l *Location) String() string {
	if l == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.FilePath, l.StartLine, l.StartColumn+1)
}

// Node 是符号模型对 AST 节点的最小依赖：只需要位置。
// 具体的 AST 节点定义在 ast 包中。
type Node interface {
	Loc() *Location
}
