package java_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
	"github.com/CodMac/level-lens/processor"
	_ "github.com/CodMac/level-lens/x/java"
	_ "github.com/CodMac/level-lens/x/level"
)

// analyze 用完整流水线分析内存中的源码; 扩展名决定语言级别
func analyze(t *testing.T, files ...processor.Source) *processor.Result {
	t.Helper()
	proc := processor.NewFileProcessor(core.LangJava, 2, nil)
	result, err := proc.ProcessSources(context.Background(), files)
	require.NoError(t, err)
	return result
}

func src(path, content string) processor.Source {
	return processor.Source{Path: path, Content: []byte(content)}
}

func class(t *testing.T, r *processor.Result, qn string) *model.ClassSymbol {
	t.Helper()
	c, ok := r.Session.Table.Lookup(qn)
	require.True(t, ok, "class %s not defined", qn)
	return c
}

func messages(r *processor.Result) []string {
	return r.Session.Diagnostics.Messages()
}

// count 诊断中恰好等于 msg 的条数
func count(r *processor.Result, msg string) int {
	n := 0
	for _, m := range messages(r) {
		if m == msg {
			n++
		}
	}
	return n
}
