package core

import (
	"fmt"

	"github.com/CodMac/level-lens/model"
)

// --- 语言特有的符号解析接口 ---

type SymbolResolver interface {
	// BuildQualifiedName 根据外部类和相对名构建 QN
	// (顶层类用 "." 连接包名, 嵌套类用 "$" 连接外部类)
	BuildQualifiedName(parentQN, name string, nested bool) string

	// ResolveType 按查找顺序解析类型名; 找不到时创建占位并登记 continuation,
	// 解析成功后通过 resume 回填引用处。resume 为 nil 时不登记。
	// locals 是引用处所在块可见的局部类, 类体中的引用为 nil。
	ResolveType(s *Session, fc *FileContext, scope *model.ClassSymbol, locals *model.LocalScope, name string, node model.Node, resume func(model.Symbol)) model.Symbol

	// LookupType 与 ResolveType 顺序相同, 但只查找不登记, 找不到返回 nil
	LookupType(s *Session, fc *FileContext, scope *model.ClassSymbol, locals *model.LocalScope, name string) model.Symbol
}

var symbolResolverMap = make(map[Language]SymbolResolver)

// RegisterSymbolResolver 注册一个语言与其对应的 SymbolResolver。
func RegisterSymbolResolver(lang Language, resolver SymbolResolver) {
	symbolResolverMap[lang] = resolver
}

// GetSymbolResolver 根据语言类型获取对应的 SymbolResolver 实例。
func GetSymbolResolver(lang Language) (SymbolResolver, error) {
	resolver, ok := symbolResolverMap[lang]
	if !ok {
		return nil, fmt.Errorf("no SymbolResolver for language: %s", lang)
	}

	return resolver, nil
}
