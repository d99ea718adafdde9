package core

import "fmt"

// Checker 类型检查 (第二遍): 表达式类型、确定赋值、构造函数调用链、异常声明、覆盖兼容性。
type Checker interface {
	CheckFile(s *Session, fc *FileContext) error
}

var checkerMap = make(map[Language]Checker)

// RegisterChecker 注册一个语言与其对应的 Checker
func RegisterChecker(lang Language, checker Checker) {
	checkerMap[lang] = checker
}

// GetChecker 根据语言类型获取对应的 Checker 实例。
func GetChecker(lang Language) (Checker, error) {
	checker, ok := checkerMap[lang]
	if !ok {
		return nil, fmt.Errorf("no checker registered for language: %s", lang)
	}

	return checker, nil
}
