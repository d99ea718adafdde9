package model

import (
	"fmt"
	"strings"
)

// LanguageLevel 语言级别：每个级别对应一组允许使用的 Java 结构
type LanguageLevel int

const (
	Elementary LanguageLevel = iota
	Intermediate
	Advanced
	FullJava
)

var levelNames = map[LanguageLevel]string{
	Elementary:   "Elementary",
	Intermediate: "Intermediate",
	Advanced:     "Advanced",
	FullJava:     "FullJava",
}

func (l LanguageLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LanguageLevel(%d)", int(l))
}

// Augments 报告该级别是否需要自动生成构造函数、访问器、toString/equals/hashCode
func (l LanguageLevel) Augments() bool {
	return l == Elementary || l == Intermediate
}

// DefaultExtensions 默认的扩展名 -> 语言级别映射
var DefaultExtensions = map[string]LanguageLevel{
	".dj0":  Elementary,
	".dj1":  Intermediate,
	".dj2":  Advanced,
	".java": FullJava,
}

// ParseLevel 将配置中的级别名称转换为 LanguageLevel (大小写不敏感)
func ParseLevel(name string) (LanguageLevel, error) {
	for lvl, n := range levelNames {
		if strings.EqualFold(n, name) {
			return lvl, nil
		}
	}
	switch strings.ToLower(name) {
	case "full", "java":
		return FullJava, nil
	}
	return 0, fmt.Errorf("unknown language level: %q", name)
}
