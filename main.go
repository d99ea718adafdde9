package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/CodMac/level-lens/config"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/output"
	"github.com/CodMac/level-lens/processor"
	_ "github.com/CodMac/level-lens/x/java"
	_ "github.com/CodMac/level-lens/x/level"
)

func main() {
	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		exitWithError("读取配置失败", err)
	}
	if cfg == nil {
		return
	}
	startTime := time.Now()

	// 1. 扫描文件
	fmt.Fprintf(os.Stderr, "[1/4] 🔍 正在扫描目录: %s\n", cfg.Path)
	files, err := scanFiles(cfg.Path, cfg.Filter, cfg.SortedExtensions())
	if err != nil {
		exitWithError("扫描文件失败", err)
	}
	fmt.Fprintf(os.Stderr, "    找到 %d 个候选文件\n", len(files))

	// 2. 执行核心分析过程: 结构遍历 -> 链接 -> 类型检查
	fmt.Fprintf(os.Stderr, "[2/4] ⚙️  正在建立符号表并进行类型检查 (Jobs: %d)...\n", cfg.Jobs)
	extensions, err := cfg.Extensions()
	if err != nil {
		exitWithError("级别配置无效", err)
	}
	proc := processor.NewFileProcessor(core.LangJava, cfg.Jobs, extensions)
	result, err := proc.ProcessFiles(context.Background(), files)
	if err != nil {
		exitWithError("分析执行失败", err)
	}
	for _, d := range result.Session.Diagnostics.Items() {
		fmt.Fprintf(os.Stderr, "    %s\n", d)
	}

	// 3. 执行导出逻辑
	fmt.Fprintf(os.Stderr, "[3/4] 💾 正在写入结果文件...\n")
	exporter := output.NewExporter(cfg.OutDir, output.OutType(cfg.Format), cfg.SkipExternal)
	stats, err := exporter.Export(result.Session, result.Relations)
	if err != nil {
		exitWithError("导出失败", err)
	}
	if stats.Degraded {
		fmt.Fprintf(os.Stderr, "    ⚠️  规模过大，Mermaid 渲染可能失败，自动降级为 jsonl\n")
	}

	fmt.Fprintf(os.Stderr, "    ✅ 完成: 导出类型=%d, 关系=%d, 诊断=%d\n", stats.Symbols, stats.Relations, stats.Diagnostics)
	fmt.Fprintf(os.Stderr, "\n[4/4] ✨ 分析结束! 会话: %s, 总耗时: %v\n", result.Session.ID, time.Since(startTime).Round(time.Millisecond))
}

// loadConfig 先读配置文件, 再用显式给出的命令行参数覆盖; -init-config 写出默认配置后返回 nil
func loadConfig(fs *flag.FlagSet, args []string) (*config.Config, error) {
	def := config.Default()
	var (
		cfgPath    string
		initConfig bool
		flags      config.Config
	)
	fs.StringVar(&cfgPath, "config", config.FileName, "配置文件路径")
	fs.BoolVar(&initConfig, "init-config", false, "写出默认配置文件后退出")
	fs.StringVar(&flags.Path, "path", def.Path, "源码根路径")
	fs.StringVar(&flags.Filter, "filter", def.Filter, "文件过滤正则")
	fs.IntVar(&flags.Jobs, "jobs", def.Jobs, "并发数")
	fs.StringVar(&flags.OutDir, "out-dir", def.OutDir, "输出目录")
	fs.StringVar(&flags.Format, "format", def.Format, "格式: jsonl, mermaid")
	fs.BoolVar(&flags.SkipExternal, "skip-external", false, "不导出指向内置库类的关系")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if initConfig {
		if err := config.Save(cfgPath, def); err != nil {
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "已写出默认配置: %s\n", cfgPath)
		return nil, nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.Path = flags.Path
		case "filter":
			cfg.Filter = flags.Filter
		case "jobs":
			cfg.Jobs = flags.Jobs
		case "out-dir":
			cfg.OutDir = flags.OutDir
		case "format":
			cfg.Format = flags.Format
		case "skip-external":
			cfg.SkipExternal = flags.SkipExternal
		}
	})
	return cfg, cfg.Validate()
}

// scanFiles 没有给出过滤正则时按配置的扩展名选择文件
func scanFiles(root, filter string, exts []string) ([]string, error) {
	if filter == "" {
		quoted := make([]string, len(exts))
		for i, ext := range exts {
			quoted[i] = regexp.QuoteMeta(ext)
		}
		filter = fmt.Sprintf(`.*(%s)$`, strings.Join(quoted, "|"))
	}
	re, err := regexp.Compile(filter)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && re.MatchString(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func exitWithError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}
