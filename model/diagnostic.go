package model

import "fmt"

// Diagnostic 一条面向用户的错误: (消息, 出错的 AST 节点)
type Diagnostic struct {
	Message  string    `json:"Message"`
	Location *Location `json:"Location,omitempty"`
	Node     Node      `json:"-"`
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Location, d.Message)
}
