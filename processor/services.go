package processor

import (
	"fmt"

	"github.com/samber/do"

	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/parser"
)

// passes 一次运行用到的全部服务
type passes struct {
	session   *core.Session
	newParser ParserFactory
	library   core.Library
	collector core.Collector
	linker    core.Linker
	binder    core.Binder
	checker   core.Checker
	extractor core.Extractor
}

// newInjector 为一次运行装配服务; 每次运行一个新的 Session
func (fp *FileProcessor) newInjector() *do.Injector {
	injector := do.New()
	lang := fp.Language

	do.ProvideValue(injector, core.NewSession())
	do.Provide(injector, func(i *do.Injector) (ParserFactory, error) {
		return func() (*parser.TreeSitterParser, error) { return parser.NewParser(lang) }, nil
	})
	do.Provide(injector, func(i *do.Injector) (core.Library, error) { return core.GetLibrary(lang) })
	do.Provide(injector, func(i *do.Injector) (core.Collector, error) { return core.GetCollector(lang) })
	do.Provide(injector, func(i *do.Injector) (core.Linker, error) { return core.GetLinker(lang) })
	do.Provide(injector, func(i *do.Injector) (core.Binder, error) { return core.GetBinder(lang) })
	do.Provide(injector, func(i *do.Injector) (core.Checker, error) { return core.GetChecker(lang) })
	do.Provide(injector, func(i *do.Injector) (core.Extractor, error) { return core.GetExtractor(lang) })
	return injector
}

func invokePasses(injector *do.Injector) (*passes, error) {
	var (
		ps  passes
		err error
	)
	if ps.session, err = do.Invoke[*core.Session](injector); err != nil {
		return nil, fmt.Errorf("invoke session: %w", err)
	}
	if ps.newParser, err = do.Invoke[ParserFactory](injector); err != nil {
		return nil, fmt.Errorf("invoke parser factory: %w", err)
	}
	if ps.library, err = do.Invoke[core.Library](injector); err != nil {
		return nil, fmt.Errorf("invoke library: %w", err)
	}
	if ps.collector, err = do.Invoke[core.Collector](injector); err != nil {
		return nil, fmt.Errorf("invoke collector: %w", err)
	}
	if ps.linker, err = do.Invoke[core.Linker](injector); err != nil {
		return nil, fmt.Errorf("invoke linker: %w", err)
	}
	if ps.binder, err = do.Invoke[core.Binder](injector); err != nil {
		return nil, fmt.Errorf("invoke binder: %w", err)
	}
	if ps.checker, err = do.Invoke[core.Checker](injector); err != nil {
		return nil, fmt.Errorf("invoke checker: %w", err)
	}
	if ps.extractor, err = do.Invoke[core.Extractor](injector); err != nil {
		return nil, fmt.Errorf("invoke extractor: %w", err)
	}
	return &ps, nil
}
