package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/level-lens/ast"
)

func (c *converter) expr(n *sitter.Node) ast.Expr {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "identifier":
		return &ast.Ident{Base: c.base(n), Name: c.text(n)}
	case "this":
		return &ast.ThisExpr{Base: c.base(n)}
	case "super":
		return &ast.SuperExpr{Base: c.base(n)}
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		return c.intLiteral(n)
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		kind := ast.LitDouble
		if strings.HasSuffix(strings.ToLower(c.text(n)), "f") && !strings.HasPrefix(strings.ToLower(c.text(n)), "0x") {
			kind = ast.LitFloat
		}
		return &ast.Literal{Base: c.base(n), Kind: kind, Value: c.text(n)}
	case "character_literal":
		return &ast.Literal{Base: c.base(n), Kind: ast.LitChar, Value: c.text(n)}
	case "string_literal", "text_block":
		return &ast.Literal{Base: c.base(n), Kind: ast.LitString, Value: c.text(n)}
	case "true", "false":
		return &ast.Literal{Base: c.base(n), Kind: ast.LitBool, Value: c.text(n)}
	case "null_literal":
		return &ast.Literal{Base: c.base(n), Kind: ast.LitNull, Value: "null"}
	case "parenthesized_expression":
		return &ast.Paren{Base: c.base(n), X: c.expr(n.NamedChild(0))}
	case "field_access":
		return c.fieldAccess(n)
	case "method_invocation":
		return c.methodInvocation(n)
	case "object_creation_expression":
		return c.objectCreation(n)
	case "array_creation_expression":
		return c.arrayCreation(n)
	case "array_initializer":
		return c.arrayInit(n)
	case "array_access":
		return &ast.Index{
			Base:  c.base(n),
			X:     c.expr(n.ChildByFieldName("array")),
			Index: c.expr(n.ChildByFieldName("index")),
		}
	case "assignment_expression":
		return &ast.Assign{
			Base: c.base(n),
			Op:   c.text(n.ChildByFieldName("operator")),
			LHS:  c.expr(n.ChildByFieldName("left")),
			RHS:  c.expr(n.ChildByFieldName("right")),
		}
	case "binary_expression":
		return &ast.Binary{
			Base: c.base(n),
			Op:   c.text(n.ChildByFieldName("operator")),
			X:    c.expr(n.ChildByFieldName("left")),
			Y:    c.expr(n.ChildByFieldName("right")),
		}
	case "unary_expression":
		return &ast.Unary{
			Base: c.base(n),
			Op:   c.text(n.ChildByFieldName("operator")),
			X:    c.expr(n.ChildByFieldName("operand")),
		}
	case "update_expression":
		return c.update(n)
	case "cast_expression":
		return &ast.Cast{
			Base: c.base(n),
			Type: c.typeRef(n.ChildByFieldName("type")),
			X:    c.expr(n.ChildByFieldName("value")),
		}
	case "instanceof_expression":
		e := &ast.InstanceOf{Base: c.base(n), X: c.expr(n.ChildByFieldName("left"))}
		if right := n.ChildByFieldName("right"); right != nil {
			e.Type = c.typeRef(right)
		} else if pattern := n.ChildByFieldName("pattern"); pattern != nil {
			return &ast.UnsupportedExpr{Base: c.base(n), What: "instanceof pattern"}
		}
		return e
	case "ternary_expression":
		return &ast.Conditional{
			Base: c.base(n),
			Cond: c.expr(n.ChildByFieldName("condition")),
			Then: c.expr(n.ChildByFieldName("consequence")),
			Else: c.expr(n.ChildByFieldName("alternative")),
		}
	case "class_literal":
		return &ast.ClassLit{Base: c.base(n), Type: c.typeRef(n.NamedChild(0))}
	case "lambda_expression":
		return &ast.UnsupportedExpr{Base: c.base(n), What: "lambda expression"}
	case "method_reference":
		return &ast.UnsupportedExpr{Base: c.base(n), What: "method reference"}
	case "switch_expression":
		return &ast.UnsupportedExpr{Base: c.base(n), What: "switch expression"}
	}
	return &ast.UnsupportedExpr{Base: c.base(n), What: n.Kind()}
}

func (c *converter) initializer(n *sitter.Node) ast.Expr {
	if n.Kind() == "array_initializer" {
		return c.arrayInit(n)
	}
	return c.expr(n)
}

func (c *converter) intLiteral(n *sitter.Node) *ast.Literal {
	text := c.text(n)
	kind := ast.LitInt
	if strings.HasSuffix(text, "l") || strings.HasSuffix(text, "L") {
		kind = ast.LitLong
	}
	return &ast.Literal{Base: c.base(n), Kind: kind, Value: text}
}

// fieldAccess Outer.this 转换为带限定的 ThisExpr
func (c *converter) fieldAccess(n *sitter.Node) ast.Expr {
	obj := n.ChildByFieldName("object")
	field := n.ChildByFieldName("field")
	if field != nil && field.Kind() == "this" {
		return &ast.ThisExpr{Base: c.base(n), Qualifier: ast.QualifiedName(c.expr(obj))}
	}
	return &ast.FieldAccess{Base: c.base(n), X: c.expr(obj), Name: c.text(field)}
}

func (c *converter) methodInvocation(n *sitter.Node) *ast.MethodCall {
	call := &ast.MethodCall{
		Base: c.base(n),
		Name: c.text(n.ChildByFieldName("name")),
		Args: c.args(n.ChildByFieldName("arguments")),
	}
	if obj := n.ChildByFieldName("object"); obj != nil {
		call.Recv = c.expr(obj)
	}
	return call
}

func (c *converter) args(n *sitter.Node) []ast.Expr {
	if n == nil {
		return nil
	}
	var args []ast.Expr
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() == "line_comment" || child.Kind() == "block_comment" {
			continue
		}
		args = append(args, c.expr(child))
	}
	return args
}

func (c *converter) objectCreation(n *sitter.Node) *ast.NewObject {
	e := &ast.NewObject{
		Base: c.base(n),
		Type: c.typeRef(n.ChildByFieldName("type")),
		Args: c.args(n.ChildByFieldName("arguments")),
	}
	// outer.new Inner(): 第一个子节点是外部实例表达式
	if first := n.Child(0); first != nil && first.IsNamed() {
		e.Outer = c.expr(first)
	}
	if body := c.findNamedChild(n, "class_body"); body != nil {
		e.Body = c.anonymousBody(body)
	}
	return e
}

func (c *converter) arrayCreation(n *sitter.Node) *ast.NewArray {
	e := &ast.NewArray{Base: c.base(n), Elem: c.typeRef(n.ChildByFieldName("type"))}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		switch child.Kind() {
		case "dimensions_expr":
			e.DimExprs = append(e.DimExprs, c.expr(c.lastNamedChild(child)))
		case "dimensions":
			e.ExtraDims += c.countDims(child)
		case "array_initializer":
			e.Init = c.arrayInit(child)
		}
	}
	return e
}

func (c *converter) arrayInit(n *sitter.Node) *ast.ArrayInit {
	init := &ast.ArrayInit{Base: c.base(n)}
	for i := uint(0); i < n.NamedChildCount(); i++ {
		init.Elems = append(init.Elems, c.initializer(n.NamedChild(i)))
	}
	return init
}

func (c *converter) update(n *sitter.Node) *ast.Unary {
	u := &ast.Unary{Base: c.base(n)}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child.IsNamed() {
			u.X = c.expr(child)
			continue
		}
		u.Op = child.Kind()
		u.Postfix = u.X != nil
	}
	return u
}
