package core

import "fmt"

// Collector 结构遍历 (第一遍): 校验级别限制, 建立符号表, 为未解析的类型名登记 continuation。
type Collector interface {
	// CollectDefinitions 遍历一个文件的语法树, 把类、接口、字段、方法注册进 Session
	CollectDefinitions(s *Session, fc *FileContext) error
}

var collectorMap = make(map[Language]Collector)

// RegisterCollector 注册一个语言与其对应的 Collector
func RegisterCollector(lang Language, collector Collector) {
	collectorMap[lang] = collector
}

// GetCollector 根据语言类型获取对应的 Collector 实例。
func GetCollector(lang Language) (Collector, error) {
	collector, ok := collectorMap[lang]
	if !ok {
		return nil, fmt.Errorf("no collector registered for language: %s", lang)
	}

	return collector, nil
}
