package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/level-lens/ast"
)

// block 也用于 constructor_body; 其中的 explicit_constructor_invocation 转换为 *ast.ConstructorCall
func (c *converter) block(n *sitter.Node) *ast.Block {
	if n == nil {
		return nil
	}
	b := &ast.Block{Base: c.base(n)}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		if s := c.stmt(n.NamedChild(i)); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
	}
	return b
}

func (c *converter) stmt(n *sitter.Node) ast.Stmt {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "line_comment", "block_comment":
		return nil
	case "block":
		return c.block(n)
	case "explicit_constructor_invocation":
		return c.constructorCall(n)
	case "local_variable_declaration":
		return &ast.LocalVarDecl{
			Base: c.base(n),
			Mods: c.modifiers(n),
			Type: c.typeRef(n.ChildByFieldName("type")),
			Vars: c.declarators(n),
		}
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		return &ast.LocalClassDecl{Base: c.base(n), Decl: c.classDecl(n)}
	case "expression_statement":
		return &ast.ExprStmt{Base: c.base(n), X: c.expr(n.NamedChild(0))}
	case "if_statement":
		return &ast.IfStmt{
			Base: c.base(n),
			Cond: c.condition(n.ChildByFieldName("condition")),
			Then: c.stmt(n.ChildByFieldName("consequence")),
			Else: c.stmt(n.ChildByFieldName("alternative")),
		}
	case "while_statement":
		return &ast.WhileStmt{
			Base: c.base(n),
			Cond: c.condition(n.ChildByFieldName("condition")),
			Body: c.stmt(n.ChildByFieldName("body")),
		}
	case "do_statement":
		return &ast.DoStmt{
			Base: c.base(n),
			Body: c.stmt(n.ChildByFieldName("body")),
			Cond: c.condition(n.ChildByFieldName("condition")),
		}
	case "for_statement":
		return c.forStmt(n)
	case "enhanced_for_statement":
		s := &ast.ForEachStmt{
			Base: c.base(n),
			Mods: c.modifiers(n),
			Type: c.typeRef(n.ChildByFieldName("type")),
			Name: c.text(n.ChildByFieldName("name")),
			Iter: c.expr(n.ChildByFieldName("value")),
			Body: c.stmt(n.ChildByFieldName("body")),
		}
		if dims := c.countDims(n.ChildByFieldName("dimensions")); dims > 0 && s.Type != nil {
			s.Type.Dims += dims
		}
		return s
	case "return_statement":
		s := &ast.ReturnStmt{Base: c.base(n)}
		if n.NamedChildCount() > 0 {
			s.Value = c.expr(n.NamedChild(0))
		}
		return s
	case "throw_statement":
		return &ast.ThrowStmt{Base: c.base(n), X: c.expr(n.NamedChild(0))}
	case "try_statement":
		return c.tryStmt(n)
	case "switch_expression":
		return c.switchStmt(n)
	case "break_statement":
		s := &ast.BreakStmt{Base: c.base(n)}
		if label := c.findNamedChild(n, "identifier"); label != nil {
			s.Label = c.text(label)
		}
		return s
	case "continue_statement":
		s := &ast.ContinueStmt{Base: c.base(n)}
		if label := c.findNamedChild(n, "identifier"); label != nil {
			s.Label = c.text(label)
		}
		return s
	case "labeled_statement":
		s := &ast.LabeledStmt{Base: c.base(n)}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			if child.Kind() == "identifier" && s.Label == "" {
				s.Label = c.text(child)
				continue
			}
			s.Body = c.stmt(child)
		}
		return s
	case ";":
		return &ast.EmptyStmt{Base: c.base(n)}
	case "synchronized_statement":
		s := &ast.UnsupportedStmt{Base: c.base(n), What: "synchronized statement"}
		if body := n.ChildByFieldName("body"); body != nil {
			s.Body = c.block(body).Stmts
		}
		return s
	case "assert_statement":
		return &ast.UnsupportedStmt{Base: c.base(n), What: "assert statement"}
	case "try_with_resources_statement":
		s := &ast.UnsupportedStmt{Base: c.base(n), What: "try-with-resources statement"}
		if body := n.ChildByFieldName("body"); body != nil {
			s.Body = c.block(body).Stmts
		}
		return s
	case "yield_statement":
		return &ast.UnsupportedStmt{Base: c.base(n), What: "yield statement"}
	}
	if n.IsError() {
		return nil
	}
	return &ast.UnsupportedStmt{Base: c.base(n), What: n.Kind()}
}

// condition 去掉 if/while 条件外层的括号
func (c *converter) condition(n *sitter.Node) ast.Expr {
	if n == nil {
		return nil
	}
	if n.Kind() == "parenthesized_expression" && n.NamedChildCount() == 1 {
		return c.expr(n.NamedChild(0))
	}
	return c.expr(n)
}

func (c *converter) constructorCall(n *sitter.Node) *ast.ConstructorCall {
	call := &ast.ConstructorCall{Base: c.base(n)}
	if ctor := n.ChildByFieldName("constructor"); ctor != nil {
		call.Super = ctor.Kind() == "super"
	}
	if obj := n.ChildByFieldName("object"); obj != nil {
		call.Qualifier = c.expr(obj)
	}
	call.Args = c.args(n.ChildByFieldName("arguments"))
	return call
}

func (c *converter) forStmt(n *sitter.Node) *ast.ForStmt {
	s := &ast.ForStmt{Base: c.base(n)}
	for _, init := range c.fieldChildren(n, "init") {
		if init.Kind() == "local_variable_declaration" {
			s.Init = append(s.Init, c.stmt(init))
			continue
		}
		s.Init = append(s.Init, &ast.ExprStmt{Base: c.base(init), X: c.expr(init)})
	}
	if cond := n.ChildByFieldName("condition"); cond != nil {
		s.Cond = c.expr(cond)
	}
	for _, upd := range c.fieldChildren(n, "update") {
		s.Update = append(s.Update, c.expr(upd))
	}
	s.Body = c.stmt(n.ChildByFieldName("body"))
	return s
}

func (c *converter) tryStmt(n *sitter.Node) *ast.TryStmt {
	s := &ast.TryStmt{Base: c.base(n), Body: c.block(n.ChildByFieldName("body"))}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		switch child.Kind() {
		case "catch_clause":
			s.Catches = append(s.Catches, c.catchClause(child))
		case "finally_clause":
			s.Finally = c.block(c.findNamedChild(child, "block"))
		}
	}
	return s
}

func (c *converter) catchClause(n *sitter.Node) *ast.CatchClause {
	cc := &ast.CatchClause{Base: c.base(n), Body: c.block(n.ChildByFieldName("body"))}
	param := c.findNamedChild(n, "catch_formal_parameter")
	if param == nil {
		return cc
	}
	p := &ast.Param{
		Base: c.base(param),
		Mods: c.modifiers(param),
		Name: c.text(param.ChildByFieldName("name")),
	}
	if ct := c.findNamedChild(param, "catch_type"); ct != nil {
		for i := uint(0); i < ct.NamedChildCount(); i++ {
			cc.Types = append(cc.Types, c.typeRef(ct.NamedChild(i)))
		}
	}
	if len(cc.Types) > 0 {
		p.Type = cc.Types[0]
	}
	cc.Param = p
	return cc
}

func (c *converter) switchStmt(n *sitter.Node) ast.Stmt {
	s := &ast.SwitchStmt{Base: c.base(n), Tag: c.condition(n.ChildByFieldName("condition"))}
	body := n.ChildByFieldName("body")
	if body == nil {
		return s
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		group := body.NamedChild(i)
		switch group.Kind() {
		case "switch_block_statement_group":
			sc := &ast.SwitchCase{Base: c.base(group)}
			for j := uint(0); j < group.NamedChildCount(); j++ {
				part := group.NamedChild(j)
				if part.Kind() == "switch_label" {
					c.switchLabel(part, sc)
					continue
				}
				if st := c.stmt(part); st != nil {
					sc.Body = append(sc.Body, st)
				}
			}
			s.Cases = append(s.Cases, sc)
		case "switch_rule":
			// case X -> ...; 按带隐式 break 的分支处理
			sc := &ast.SwitchCase{Base: c.base(group)}
			for j := uint(0); j < group.NamedChildCount(); j++ {
				part := group.NamedChild(j)
				if part.Kind() == "switch_label" {
					c.switchLabel(part, sc)
					continue
				}
				if st := c.stmt(part); st != nil {
					sc.Body = append(sc.Body, st)
				}
			}
			sc.Body = append(sc.Body, &ast.BreakStmt{Base: c.base(group)})
			s.Cases = append(s.Cases, sc)
		}
	}
	return s
}

func (c *converter) switchLabel(n *sitter.Node, sc *ast.SwitchCase) {
	if n.NamedChildCount() == 0 {
		sc.Default = true
		return
	}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		sc.Labels = append(sc.Labels, c.expr(n.NamedChild(i)))
	}
}
