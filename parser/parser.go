// Package parser 把 Java 源码经 tree-sitter 解析后转换为 ast 包的语法树。
package parser

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
)

// Parser 每个 worker 持有一个, 不可并发使用
type Parser interface {
	ParseFile(path string) (*ast.CompilationUnit, *[]byte, error)
	ParseSource(path string, source []byte) (*ast.CompilationUnit, error)
	DeclaredTypes(path string, source []byte) ([]string, error)
	Close()
}

type TreeSitterParser struct {
	lang     core.Language
	tsLang   *sitter.Language
	tsParser *sitter.Parser
	scan     *sitter.Query
}

// GetLanguage 返回语言对应的 tree-sitter 语法
func GetLanguage(lang core.Language) (*sitter.Language, error) {
	switch lang {
	case core.LangJava:
		return sitter.NewLanguage(tree_sitter_java.Language()), nil
	}
	return nil, fmt.Errorf("unsupported language: %s", lang)
}

func NewParser(lang core.Language) (*TreeSitterParser, error) {
	tsLang, err := GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	if err := p.SetLanguage(tsLang); err != nil {
		p.Close()
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}

	q, qErr := sitter.NewQuery(tsLang, DeclaredTypesQuery)
	if qErr != nil {
		p.Close()
		return nil, fmt.Errorf("query init error: %s", qErr.Message)
	}

	return &TreeSitterParser{lang: lang, tsLang: tsLang, tsParser: p, scan: q}, nil
}

func (p *TreeSitterParser) ParseFile(path string) (*ast.CompilationUnit, *[]byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	unit, err := p.ParseSource(path, source)
	if err != nil {
		return nil, nil, err
	}
	return unit, &source, nil
}

func (p *TreeSitterParser) ParseSource(path string, source []byte) (*ast.CompilationUnit, error) {
	tree := p.tsParser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: parser returned no tree", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	c := &converter{path: path, src: source}
	return c.compilationUnit(root), nil
}

// DeclaredTypes 只用查询预扫描顶层类型的限定名, 不做完整转换
func (p *TreeSitterParser) DeclaredTypes(path string, source []byte) ([]string, error) {
	tree := p.tsParser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: parser returned no tree", path)
	}
	defer tree.Close()

	return scanDeclaredTypes(p.scan, tree.RootNode(), source), nil
}

func (p *TreeSitterParser) Close() {
	if p.scan != nil {
		p.scan.Close()
	}
	p.tsParser.Close()
}
