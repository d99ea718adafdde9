package processor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
	"github.com/CodMac/level-lens/processor"
	_ "github.com/CodMac/level-lens/x/java"
	_ "github.com/CodMac/level-lens/x/level"
)

func TestFileProcessor_ProcessFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"Zoo.java":   "class Zoo { Animal a; }",
		"Animal.dj2": "class Animal { }",
	}
	var paths []string
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		paths = append(paths, p)
	}

	proc := processor.NewFileProcessor(core.LangJava, 4, nil)
	result, err := proc.ProcessFiles(context.Background(), paths)
	require.NoError(t, err)

	s := result.Session
	assert.NotEmpty(t, s.ID)
	assert.Empty(t, s.Diagnostics.Messages())

	// 文件按路径排序, 级别由扩展名决定
	require.Len(t, s.Files, 2)
	assert.Equal(t, filepath.Join(dir, "Animal.dj2"), s.Files[0].FilePath)
	assert.Equal(t, model.Advanced, s.Files[0].Level)
	assert.Equal(t, model.FullJava, s.Files[1].Level)

	zoo, ok := s.Table.Lookup("Zoo")
	require.True(t, ok)
	animal, ok := s.Table.Lookup("Animal")
	require.True(t, ok)
	assert.Same(t, animal, zoo.Field("a").Type)
}

func TestFileProcessor_CustomExtensions(t *testing.T) {
	proc := processor.NewFileProcessor(core.LangJava, 1, map[string]model.LanguageLevel{".jj": model.Elementary})
	result, err := proc.ProcessSources(context.Background(), []processor.Source{
		{Path: "Point.jj", Content: []byte("class Point { int x; }")},
	})
	require.NoError(t, err)

	point, ok := result.Session.Table.Lookup("Point")
	require.True(t, ok)
	assert.Equal(t, model.Elementary, point.Level)
	assert.Len(t, point.GeneratedMethods(), 5, "构造函数, x(), toString(), equals(Object), hashCode()")
}

func TestFileProcessor_UnknownExtension(t *testing.T) {
	proc := processor.NewFileProcessor(core.LangJava, 1, nil)
	_, err := proc.ProcessSources(context.Background(), []processor.Source{
		{Path: "notes.txt", Content: []byte("hello")},
	})
	assert.ErrorContains(t, err, "no language level for notes.txt")
}

func TestFileProcessor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := processor.NewFileProcessor(core.LangJava, 1, nil)
	_, err := proc.ProcessSources(ctx, []processor.Source{
		{Path: "A.java", Content: []byte("class A {}")},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileProcessor_MissingFile(t *testing.T) {
	proc := processor.NewFileProcessor(core.LangJava, 1, nil)
	_, err := proc.ProcessFiles(context.Background(), []string{filepath.Join(t.TempDir(), "Gone.java")})
	assert.Error(t, err)
}
