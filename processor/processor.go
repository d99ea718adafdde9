package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
	"github.com/CodMac/level-lens/parser"
)

// Source 一个待分析的源文件; Content 为 nil 时从磁盘读取 Path
type Source struct {
	Path    string
	Content []byte
}

// Result 一次运行的产物
type Result struct {
	Session   *core.Session
	Relations []*model.Relation
}

// ParserFactory 每个解析 worker 独占一个 tree-sitter 解析器
type ParserFactory func() (*parser.TreeSitterParser, error)

type FileProcessor struct {
	Language    core.Language
	Concurrency int
	Extensions  map[string]model.LanguageLevel // 扩展名 -> 语言级别
}

func NewFileProcessor(lang core.Language, concurrency int, extensions map[string]model.LanguageLevel) *FileProcessor {
	if concurrency <= 0 {
		concurrency = 4
	}
	if extensions == nil {
		extensions = model.DefaultExtensions
	}
	return &FileProcessor{
		Language:    lang,
		Concurrency: concurrency,
		Extensions:  extensions,
	}
}

func (fp *FileProcessor) ProcessFiles(ctx context.Context, paths []string) (*Result, error) {
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = Source{Path: p}
	}
	return fp.ProcessSources(ctx, sources)
}

// ProcessSources 完整运行一次分析:
// 并行解析与预扫描 -> 内置库 -> 结构遍历 -> 链接 -> 绑定 -> 类型检查 -> 关系提取。
// 解析之后的各遍都是单线程的, 并按文件路径排序处理。
func (fp *FileProcessor) ProcessSources(ctx context.Context, sources []Source) (*Result, error) {
	injector := fp.newInjector()
	defer injector.Shutdown()

	ps, err := invokePasses(injector)
	if err != nil {
		return nil, err
	}
	s := ps.session

	// --- 阶段 1: 并行解析, 预扫描顶层类型 ---
	err = fp.runParallel(ctx, sources, ps.newParser, func(src Source, p *parser.TreeSitterParser) error {
		level, ok := fp.Extensions[filepath.Ext(src.Path)]
		if !ok {
			return fmt.Errorf("no language level for %s", src.Path)
		}

		var (
			unit *ast.CompilationUnit
			err  error
		)
		content := &src.Content
		if src.Content == nil {
			unit, content, err = p.ParseFile(src.Path)
		} else {
			unit, err = p.ParseSource(src.Path, src.Content)
		}
		if err != nil {
			return err
		}

		names, err := p.DeclaredTypes(src.Path, *content)
		if err != nil {
			return err
		}
		for _, qn := range names {
			s.MarkPending(qn)
		}
		s.AddFile(core.NewFileContext(src.Path, level, unit, content))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --- 阶段 2: 内置库与结构遍历 ---
	ps.library.Preload(s)
	for _, fc := range s.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := guard(fc.FilePath, func() error { return ps.collector.CollectDefinitions(s, fc) }); err != nil {
			return nil, err
		}
	}

	// --- 阶段 3: 不动点链接与语义绑定 ---
	if err := guard("", func() error { ps.linker.Link(s); return nil }); err != nil {
		return nil, err
	}
	if err := guard("", func() error { ps.binder.BindSymbols(s); return nil }); err != nil {
		return nil, err
	}

	// --- 阶段 4: 类型检查 ---
	for _, fc := range s.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := guard(fc.FilePath, func() error { return ps.checker.CheckFile(s, fc) }); err != nil {
			return nil, err
		}
	}

	// --- 阶段 5: 层级关系提取 ---
	var rels []*model.Relation
	for _, fc := range s.Files {
		fileRels, err := ps.extractor.Extract(s, fc)
		if err != nil {
			return nil, err
		}
		rels = append(rels, fileRels...)
	}

	return &Result{Session: s, Relations: rels}, nil
}

// guard 各遍内部以 panic 抛出的 InternalError 在这里转回 error
func guard(file string, fn func() error) (err error) {
	defer core.RecoverInternal(file, &err)
	return fn()
}

// runParallel 内部并发调度器
func (fp *FileProcessor) runParallel(ctx context.Context, sources []Source, newParser ParserFactory, task func(Source, *parser.TreeSitterParser) error) error {
	srcChan := make(chan Source, len(sources))
	for _, src := range sources {
		srcChan <- src
	}
	close(srcChan)

	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for i := 0; i < fp.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := newParser()
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			defer p.Close()

			for src := range srcChan {
				if err := ctx.Err(); err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
				if err := task(src, p); err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
			}
		}()
	}
	wg.Wait()
	return firstErr
}
