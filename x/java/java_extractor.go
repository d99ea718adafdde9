package java

import (
	"fmt"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

// Extractor 从完成检查的符号表中提取 EXTEND / IMPLEMENT / CONTAIN 关系
type Extractor struct{}

func NewJavaExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(s *core.Session, fc *core.FileContext) ([]*model.Relation, error) {
	if fc == nil {
		return nil, fmt.Errorf("extract: nil file context")
	}

	var rels []*model.Relation
	for _, cls := range fc.Classes {
		decl, _ := cls.Decl.(*ast.ClassDecl)

		// 1. 外部类包含嵌套类、局部类、匿名类
		if cls.Outer != nil {
			rels = append(rels, model.NewRelation(model.Contain, cls.Outer, cls, loc(cls.Decl)))
		}

		// 2. 父类 (隐式的 java.lang.Object 不输出)
		if sup := cls.SuperClass(); sup != nil && !(sup.QualifiedName == objectQN && (decl == nil || decl.Super == nil)) {
			var at model.Node = cls.Decl
			if decl != nil && decl.Super != nil {
				at = decl.Super
			}
			rels = append(rels, model.NewRelation(model.Extend, cls, sup, loc(at)))
		}

		// 3. 接口: 接口之间是继承, 类与接口之间是实现
		typ := model.Implement
		if cls.IsInterface {
			typ = model.Extend
		}
		for i, iface := range cls.Interfaces {
			ic, ok := iface.(*model.ClassSymbol)
			if !ok {
				continue
			}
			var at model.Node = cls.Decl
			if decl != nil && i < len(decl.Implements) {
				at = decl.Implements[i]
			}
			rels = append(rels, model.NewRelation(typ, cls, ic, loc(at)))
		}
	}
	return rels, nil
}

func loc(n model.Node) *model.Location {
	if n == nil {
		return nil
	}
	return n.Loc()
}
