package core

import "fmt"

// Binder 在链接完成、父类链全部可用之后进行语义绑定:
// 继承关系校验 (环、extends/implements 种类) 以及依赖父类的构造函数合成。
type Binder interface {
	BindSymbols(s *Session)
}

var binderMap = make(map[Language]Binder)

// RegisterBinder 注册一个语言与其对应的 Binder
func RegisterBinder(lang Language, binder Binder) {
	binderMap[lang] = binder
}

// GetBinder 根据语言类型获取对应的 Binder 实例。
func GetBinder(lang Language) (Binder, error) {
	binder, ok := binderMap[lang]
	if !ok {
		return nil, fmt.Errorf("no binder registered for language: %s", lang)
	}

	return binder, nil
}
