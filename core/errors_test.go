package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runGuarded(file string, fn func()) (err error) {
	defer RecoverInternal(file, &err)
	fn()
	return nil
}

func TestRecoverInternal_ConvertsFatalf(t *testing.T) {
	err := runGuarded("A.java", func() {
		Fatalf(nil, "unexpected node %s", "Foo")
	})
	require.Error(t, err)

	var ie *InternalError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "A.java", ie.File, "没有节点位置时使用当前文件")
	assert.Equal(t, "internal error in A.java: unexpected node Foo", err.Error())
}

func TestRecoverInternal_NoPanic(t *testing.T) {
	assert.NoError(t, runGuarded("A.java", func() {}))
}

func TestRecoverInternal_OtherPanicPropagates(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_ = runGuarded("A.java", func() { panic("boom") })
	})
}

func TestVerdictRecoverIsDistinct(t *testing.T) {
	assert.NotEqual(t, Accept, Recover)
	assert.NotEqual(t, Prune, Recover)
}
