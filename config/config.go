// Package config 实现 levellens.toml 的读取
// 命令行参数优先于配置文件; 配置文件不存在时使用默认值。
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/CodMac/level-lens/model"
)

const FileName = "levellens.toml"

// Config levellens.toml 文件结构
type Config struct {
	Path         string            `toml:"path"`          // 源码根路径
	Filter       string            `toml:"filter"`        // 文件过滤正则, 为空时按扩展名选择
	Jobs         int               `toml:"jobs"`          // 解析并发数
	OutDir       string            `toml:"out_dir"`       // 输出目录
	Format       string            `toml:"format"`        // jsonl 或 mermaid
	SkipExternal bool              `toml:"skip_external"` // 导出时丢弃指向内置库类的关系
	Levels       map[string]string `toml:"levels"`        // 扩展名 -> 级别名, 例如 ".dj0" = "Elementary"
}

// Default 默认配置; Levels 对应 model.DefaultExtensions
func Default() *Config {
	levels := make(map[string]string, len(model.DefaultExtensions))
	for ext, lvl := range model.DefaultExtensions {
		levels[ext] = lvl.String()
	}
	return &Config{
		Path:   ".",
		Jobs:   4,
		OutDir: "./output",
		Format: "jsonl",
		Levels: levels,
	}
}

// Load 读取配置文件并与默认值合并; 文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.merge(&file)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// merge 文件中写出的 (非零) 值覆盖默认值; levels 按扩展名逐项覆盖
func (c *Config) merge(o *Config) {
	if o.Path != "" {
		c.Path = o.Path
	}
	if o.Filter != "" {
		c.Filter = o.Filter
	}
	if o.Jobs != 0 {
		c.Jobs = o.Jobs
	}
	if o.OutDir != "" {
		c.OutDir = o.OutDir
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	c.SkipExternal = c.SkipExternal || o.SkipExternal
	for ext, lvl := range o.Levels {
		c.Levels[normalizeExt(ext)] = lvl
	}
}

func (c *Config) Validate() error {
	if c.Jobs <= 0 {
		return fmt.Errorf("jobs must be positive, got %d", c.Jobs)
	}
	switch c.Format {
	case "jsonl", "mermaid":
	default:
		return fmt.Errorf("unknown format %q (expected jsonl or mermaid)", c.Format)
	}
	_, err := c.Extensions()
	return err
}

// Extensions 把 levels 转换为扩展名 -> 语言级别
func (c *Config) Extensions() (map[string]model.LanguageLevel, error) {
	out := make(map[string]model.LanguageLevel, len(c.Levels))
	for ext, name := range c.Levels {
		lvl, err := model.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("levels[%s]: %w", ext, err)
		}
		out[normalizeExt(ext)] = lvl
	}
	return out, nil
}

// SortedExtensions 按字母序返回配置的扩展名, 用于扫描与日志
func (c *Config) SortedExtensions() []string {
	exts := make([]string, 0, len(c.Levels))
	for ext := range c.Levels {
		exts = append(exts, normalizeExt(ext))
	}
	sort.Strings(exts)
	return exts
}

// Save 写出配置文件 (用于生成示例配置)
func Save(path string, c *Config) error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func normalizeExt(ext string) string {
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}
