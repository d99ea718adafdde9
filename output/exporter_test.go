package output_test

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
	"github.com/CodMac/level-lens/output"
)

// session 构造一个最小的会话: Base <- Leaf, Leaf implements java.lang.Runnable
func session(t *testing.T) (*core.Session, []*model.Relation) {
	t.Helper()
	s := core.NewSession()

	runnable := model.NewClassSymbol("java.lang.Runnable", "Runnable", "java.lang")
	runnable.IsInterface = true
	runnable.External = true
	require.Nil(t, s.Table.Define(runnable))

	base := model.NewClassSymbol("zoo.Base", "Base", "zoo")
	base.Modifiers = model.Public | model.Abstract
	base.File = "zoo/Base.java"
	base.Level = model.FullJava
	base.AddField(&model.VariableSymbol{Name: "name", Type: model.Int, Modifiers: model.Private})
	require.Nil(t, s.Table.Define(base))

	leaf := model.NewClassSymbol("zoo.Leaf", "Leaf", "zoo")
	leaf.Super = base
	leaf.Interfaces = []model.Symbol{runnable}
	leaf.File = "zoo/Leaf.dj0"
	leaf.Level = model.Elementary
	leaf.AddMethod(&model.MethodSymbol{Name: model.CtorName, Constructor: true, Generated: true, Modifiers: model.Public})
	leaf.AddMethod(&model.MethodSymbol{Name: "run", Modifiers: model.Public})
	require.Nil(t, s.Table.Define(leaf))

	s.Diagnostics.Add("Cannot resolve symbol Missing", nil)

	rels := []*model.Relation{
		model.NewRelation(model.Extend, leaf, base, nil),
		model.NewRelation(model.Implement, leaf, runnable, nil),
	}
	return s, rels
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
	return out
}

func TestExporter_JsonL(t *testing.T) {
	s, rels := session(t)
	dir := t.TempDir()

	stats, err := output.NewExporter(dir, output.JsonL, false).Export(s, rels)
	require.NoError(t, err)
	assert.Equal(t, output.Stats{Format: output.JsonL, Symbols: 2, Diagnostics: 1, Relations: 2}, stats)

	symbols := readLines(t, filepath.Join(dir, output.SymbolsFile))
	require.Len(t, symbols, 2)
	assert.Equal(t, "zoo.Base", symbols[0]["Name"])
	assert.Equal(t, []any{"public", "abstract"}, symbols[0]["Modifiers"])
	assert.Equal(t, s.ID, symbols[0]["Session"])

	leaf := symbols[1]
	assert.Equal(t, "zoo.Base", leaf["Super"])
	assert.Equal(t, []any{"java.lang.Runnable"}, leaf["Interfaces"])
	assert.Equal(t, "Elementary", leaf["Level"])
	methods := leaf["Methods"].([]any)
	require.Len(t, methods, 2)
	assert.Equal(t, true, methods[0].(map[string]any)["Generated"])
	assert.Equal(t, false, methods[1].(map[string]any)["Generated"])
	assert.Equal(t, "void", methods[1].(map[string]any)["Return"])

	diags := readLines(t, filepath.Join(dir, output.DiagnosticsFile))
	require.Len(t, diags, 1)
	assert.Equal(t, "Cannot resolve symbol Missing", diags[0]["Message"])
}

func TestExporter_SkipExternal(t *testing.T) {
	s, rels := session(t)
	dir := t.TempDir()

	stats, err := output.NewExporter(dir, output.JsonL, true).Export(s, rels)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Relations)

	lines := readLines(t, filepath.Join(dir, output.RelationsFile))
	require.Len(t, lines, 1)
	assert.Equal(t, "EXTEND", lines[0]["Type"])
}

func TestExporter_Mermaid(t *testing.T) {
	s, rels := session(t)
	s.AddFile(&core.FileContext{FilePath: "zoo/Leaf.dj0", Classes: []*model.ClassSymbol{
		mustLookup(t, s, "zoo.Leaf"),
	}})
	dir := t.TempDir()

	stats, err := output.NewExporter(dir, output.Mermaid, false).Export(s, rels)
	require.NoError(t, err)
	assert.Equal(t, output.Mermaid, stats.Format)
	assert.False(t, stats.Degraded)

	html, err := os.ReadFile(filepath.Join(dir, output.HierarchyFile))
	require.NoError(t, err)
	assert.Contains(t, string(html), "n_zoo_Leaf --> n_zoo_Base")
	assert.Contains(t, string(html), "n_zoo_Leaf -.-> n_java_lang_Runnable")
	assert.FileExists(t, filepath.Join(dir, output.DiagnosticsFile))
}

func TestExporter_MermaidDegrades(t *testing.T) {
	s := core.NewSession()
	for i := 0; i <= output.MaxMermaidNodes; i++ {
		require.Nil(t, s.Table.Define(model.NewClassSymbol(fmt.Sprintf("C%d", i), fmt.Sprintf("C%d", i), "")))
	}
	dir := t.TempDir()

	stats, err := output.NewExporter(dir, output.Mermaid, false).Export(s, nil)
	require.NoError(t, err)
	assert.True(t, stats.Degraded)
	assert.Equal(t, output.JsonL, stats.Format)
	assert.NoFileExists(t, filepath.Join(dir, output.HierarchyFile))
	assert.FileExists(t, filepath.Join(dir, output.SymbolsFile))
}

func TestExporter_UnknownFormat(t *testing.T) {
	s, rels := session(t)
	_, err := output.NewExporter(t.TempDir(), output.OutType("xml"), false).Export(s, rels)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown output format"))
}

func mustLookup(t *testing.T, s *core.Session, qn string) *model.ClassSymbol {
	t.Helper()
	c, ok := s.Table.Lookup(qn)
	require.True(t, ok)
	return c
}
