package core

import (
	"fmt"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/model"
)

// BodyContext 结构遍历当前所处的语法上下文
type BodyContext int

const (
	TopLevel BodyContext = iota
	ClassBody
	InterfaceBody
	MethodBody
)

func (bc BodyContext) String() string {
	switch bc {
	case TopLevel:
		return "top level"
	case ClassBody:
		return "class body"
	case InterfaceBody:
		return "interface body"
	case MethodBody:
		return "method body"
	}
	return fmt.Sprintf("BodyContext(%d)", int(bc))
}

// Verdict 级别策略对一个节点的裁决
type Verdict int

const (
	Accept  Verdict = iota // 合法, 正常处理
	Prune                  // 报告错误并跳过该子树
	Recover                // 报告错误但继续处理子节点
)

// Policy 一个语言级别允许哪些结构。同一个通用遍历器按注入的 Policy 工作。
type Policy interface {
	Level() model.LanguageLevel

	// Admit 在处理节点之前调用, 返回裁决以及需要报告的诊断消息
	Admit(bc BodyContext, n ast.Node) (Verdict, []string)

	// ImplicitModifiers 该级别为声明隐式补上的修饰符 (例如 Elementary 的 private final 字段)
	ImplicitModifiers(bc BodyContext, n ast.Node) model.Modifiers
}

var policyMap = make(map[model.LanguageLevel]Policy)

// RegisterPolicy 注册一个语言级别与其对应的 Policy
func RegisterPolicy(policy Policy) {
	policyMap[policy.Level()] = policy
}

// GetPolicy 根据语言级别获取对应的 Policy 实例。
func GetPolicy(level model.LanguageLevel) (Policy, error) {
	policy, ok := policyMap[level]
	if !ok {
		return nil, fmt.Errorf("no policy registered for language level: %s", level)
	}

	return policy, nil
}
