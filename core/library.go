package core

import "fmt"

// Library 语言内置库: 在结构遍历开始前把内置类 (java.lang.Object 等) 装入符号表
type Library interface {
	Preload(s *Session)
}

var libraryMap = make(map[Language]Library)

func RegisterLibrary(lang Language, lib Library) {
	libraryMap[lang] = lib
}

func GetLibrary(lang Language) (Library, error) {
	lib, ok := libraryMap[lang]
	if !ok {
		return nil, fmt.Errorf("no library registered for language: %s", lang)
	}
	return lib, nil
}
