package core

import "fmt"

// Linker 在所有文件结构遍历完成后, 以不动点方式消解 continuation。
type Linker interface {
	// Link 反复尝试解析待定引用, 直到某一轮没有任何进展; 剩余的报告为无法解析的符号
	Link(s *Session)
}

var linkerMap = make(map[Language]Linker)

// RegisterLinker 注册一个语言与其对应的 Linker
func RegisterLinker(lang Language, linker Linker) {
	linkerMap[lang] = linker
}

// GetLinker 根据语言类型获取对应的 Linker 实例。
func GetLinker(lang Language) (Linker, error) {
	linker, ok := linkerMap[lang]
	if !ok {
		return nil, fmt.Errorf("no linker registered for language: %s", lang)
	}

	return linker, nil
}
