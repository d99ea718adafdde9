package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/level-lens/output"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "levellens.toml")
	writeFile(t, cfgPath, `
jobs = 2
format = "mermaid"
out_dir = "from-file"

[levels]
".dj0" = "Intermediate"
`)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := loadConfig(fs, []string{"-config", cfgPath, "-jobs", "8"})
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Jobs, "显式给出的参数覆盖配置文件")
	assert.Equal(t, "mermaid", cfg.Format, "未给出的参数保留配置文件中的值")
	assert.Equal(t, "from-file", cfg.OutDir)
	assert.Equal(t, "Intermediate", cfg.Levels[".dj0"])
}

func TestLoadConfig_InitConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "levellens.toml")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := loadConfig(fs, []string{"-config", cfgPath, "-init-config"})
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.FileExists(t, cfgPath)
}

func TestScanFiles_ByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "A.dj0"), "class A {}")
	writeFile(t, filepath.Join(dir, "b", "B.java"), "class B {}")
	writeFile(t, filepath.Join(dir, "README.md"), "# readme")

	files, err := scanFiles(dir, "", []string{".dj0", ".java"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a", "A.dj0"),
		filepath.Join(dir, "b", "B.java"),
	}, files)
}

func TestMain_Integration(t *testing.T) {
	// 1. 准备源码与临时输出目录
	src := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(src, "Shape.java"), `
public interface Shape {
    double area();
}
`)
	writeFile(t, filepath.Join(src, "Square.java"), `
public class Square implements Shape {
    private final double side;
    public Square(double side) { this.side = side; }
    public double area() { return side * side; }
}
`)

	// 2. 模拟命令行参数
	oldArgs, oldFlags := os.Args, flag.CommandLine
	defer func() { os.Args, flag.CommandLine = oldArgs, oldFlags }()
	flag.CommandLine = flag.NewFlagSet("cmd", flag.ExitOnError)
	os.Args = []string{
		"cmd",
		"-config=" + filepath.Join(src, "missing.toml"),
		"-path=" + src,
		"-out-dir=" + out,
		"-format=jsonl",
	}

	// 3. 执行 main 函数
	main()

	// 4. 验证生成结果
	symbols := readLines(t, filepath.Join(out, output.SymbolsFile))
	require.Len(t, symbols, 2)
	names := []string{symbols[0]["Name"].(string), symbols[1]["Name"].(string)}
	assert.ElementsMatch(t, []string{"Shape", "Square"}, names)

	assert.Empty(t, readLines(t, filepath.Join(out, output.DiagnosticsFile)))

	rels := readLines(t, filepath.Join(out, output.RelationsFile))
	require.Len(t, rels, 1)
	assert.Equal(t, "IMPLEMENT", rels[0]["Type"])
	assert.Equal(t, "Square", rels[0]["Source"])
	assert.Equal(t, "Shape", rels[0]["Target"])
}

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	require.NoError(t, sc.Err())
	return out
}
