package core

import (
	"strings"
	"sync"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/model"
)

type ImportEntry struct {
	RawImportPath string          `json:"RawImportPath"`
	Alias         string          `json:"Alias"`
	IsWildcard    bool            `json:"IsWildcard"`
	IsStatic      bool            `json:"IsStatic"`
	Location      *model.Location `json:"Location,omitempty"`
}

// FileContext 单个源文件的分析上下文: 语法树、级别、包名与导入表
type FileContext struct {
	FilePath    string
	PackageName string
	Level       model.LanguageLevel
	Unit        *ast.CompilationUnit
	SourceBytes *[]byte
	Imports     map[string][]*ImportEntry // 单类型导入: 简单名 -> 条目; 按需导入: "*" -> 条目
	Classes     []*model.ClassSymbol      // 本文件定义的类 (按定义顺序)
	mutex       sync.RWMutex
}

func NewFileContext(filePath string, level model.LanguageLevel, unit *ast.CompilationUnit, sourceBytes *[]byte) *FileContext {
	fc := &FileContext{
		FilePath:    filePath,
		Level:       level,
		Unit:        unit,
		SourceBytes: sourceBytes,
		Imports:     make(map[string][]*ImportEntry),
	}
	if unit != nil {
		if unit.Package != nil {
			fc.PackageName = unit.Package.Name
		}
		for _, imp := range unit.Imports {
			fc.AddImport(imp)
		}
	}
	return fc
}

func (fc *FileContext) AddImport(imp *ast.Import) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()

	entry := &ImportEntry{
		RawImportPath: imp.Name,
		IsWildcard:    imp.OnDemand,
		IsStatic:      imp.Static,
		Location:      imp.Loc(),
	}
	alias := "*"
	if !imp.OnDemand {
		parts := strings.Split(imp.Name, ".")
		alias = parts[len(parts)-1]
	}
	entry.Alias = alias
	fc.Imports[alias] = append(fc.Imports[alias], entry)
}

// SingleImport 单类型导入 (非静态)
func (fc *FileContext) SingleImport(simple string) (*ImportEntry, bool) {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	for _, e := range fc.Imports[simple] {
		if !e.IsStatic {
			return e, true
		}
	}
	return nil, false
}

// OnDemandPackages 按需导入的包 (及类) 名, 末尾总是隐式的 java.lang
func (fc *FileContext) OnDemandPackages() []string {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	var pkgs []string
	for _, e := range fc.Imports["*"] {
		if !e.IsStatic {
			pkgs = append(pkgs, e.RawImportPath)
		}
	}
	return append(pkgs, "java.lang")
}

func (fc *FileContext) AddClass(c *model.ClassSymbol) {
	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.Classes = append(fc.Classes, c)
}
