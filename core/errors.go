package core

import (
	"fmt"

	"github.com/CodMac/level-lens/model"
)

// InternalError 分析器自身的不变量被破坏 (缺陷, 而不是用户错误)。
// 各遍中以 panic 抛出, 由 processor 恢复并附上文件与节点位置后返回。
type InternalError struct {
	File     string
	Location *model.Location
	Message  string
}

func (e *InternalError) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("internal error at %s: %s", e.Location, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("internal error in %s: %s", e.File, e.Message)
	}
	return "internal error: " + e.Message
}

// Fatalf 中止本次运行
func Fatalf(node model.Node, format string, args ...any) {
	err := &InternalError{Message: fmt.Sprintf(format, args...)}
	if node != nil {
		err.Location = node.Loc()
		if err.Location != nil {
			err.File = err.Location.FilePath
		}
	}
	panic(err)
}

// RecoverInternal 在 defer 中把 InternalError 转回 error; 其它 panic 继续向上传播
func RecoverInternal(file string, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	ie, ok := r.(*InternalError)
	if !ok {
		panic(r)
	}
	if ie.File == "" {
		ie.File = file
	}
	*errp = ie
}
