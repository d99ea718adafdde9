package core

import (
	"fmt"

	"github.com/CodMac/level-lens/model"
)

// Extractor 在全部检查完成后, 从符号表中提取类型层级关系, 供导出使用
type Extractor interface {
	// Extract 返回一个文件中定义的类型产生的关系
	Extract(s *Session, fc *FileContext) ([]*model.Relation, error)
}

var extractorMap = make(map[Language]Extractor)

// RegisterExtractor 注册一个语言与其对应的 Extractor
func RegisterExtractor(lang Language, extractor Extractor) {
	extractorMap[lang] = extractor
}

// GetExtractor 根据语言类型获取对应的 Extractor 实例。
func GetExtractor(lang Language) (Extractor, error) {
	extractor, ok := extractorMap[lang]
	if !ok {
		return nil, fmt.Errorf("no extractor registered for language: %s", lang)
	}

	return extractor, nil
}
