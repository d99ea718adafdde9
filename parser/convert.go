package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/model"
)

// converter 把 tree-sitter 的具体语法树转换为 ast
type converter struct {
	path string
	src  []byte
	unit *ast.CompilationUnit
}

// ==========================================
// 1. 编译单元 (Compilation Unit)
// ==========================================

func (c *converter) compilationUnit(root *sitter.Node) *ast.CompilationUnit {
	c.unit = &ast.CompilationUnit{Base: c.base(root), Path: c.path}
	c.collectSyntaxErrors(root)

	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		switch child.Kind() {
		case "package_declaration":
			if name := c.findNamedChild(child, "scoped_identifier", "identifier"); name != nil {
				c.unit.Package = &ast.PackageDecl{Base: c.base(child), Name: c.text(name)}
			}
		case "import_declaration":
			c.unit.Imports = append(c.unit.Imports, c.importDecl(child))
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			c.unit.Types = append(c.unit.Types, c.classDecl(child))
		}
	}
	return c.unit
}

func (c *converter) importDecl(n *sitter.Node) *ast.Import {
	imp := &ast.Import{Base: c.base(n)}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "static":
			imp.Static = true
		case "scoped_identifier", "identifier":
			imp.Name = c.text(child)
		case "asterisk":
			imp.OnDemand = true
		}
	}
	return imp
}

// collectSyntaxErrors 记录 ERROR 与 MISSING 节点; ERROR 子树内部不再深入
func (c *converter) collectSyntaxErrors(n *sitter.Node) {
	if !n.HasError() {
		return
	}
	if n.IsError() || n.IsMissing() {
		c.unit.SyntaxErrors = append(c.unit.SyntaxErrors, &ast.SyntaxError{
			Base:    c.base(n),
			Text:    c.text(n),
			Missing: n.IsMissing(),
		})
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		c.collectSyntaxErrors(n.Child(i))
	}
}

// ==========================================
// 2. 类型声明 (Type Declarations)
// ==========================================

func (c *converter) classDecl(n *sitter.Node) *ast.ClassDecl {
	decl := &ast.ClassDecl{
		Base: c.base(n),
		Mods: c.modifiers(n),
		Name: c.text(n.ChildByFieldName("name")),
	}

	switch n.Kind() {
	case "interface_declaration":
		decl.Interface = true
	case "enum_declaration":
		decl.Unsupported = "enum"
	case "record_declaration":
		decl.Unsupported = "record"
	case "annotation_type_declaration":
		decl.Unsupported = "annotation type"
		decl.Interface = true
	}

	decl.TypeParams = c.typeParams(n.ChildByFieldName("type_parameters"))
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		decl.Super = c.typeRef(c.lastNamedChild(sc))
	}
	if ifaces := n.ChildByFieldName("interfaces"); ifaces != nil {
		decl.Implements = c.typeList(ifaces)
	}
	if ext := c.findNamedChild(n, "extends_interfaces"); ext != nil {
		decl.Implements = c.typeList(ext)
	}

	if decl.Unsupported != "" {
		return decl
	}
	if body := n.ChildByFieldName("body"); body != nil {
		decl.Body = c.classBody(body)
	}
	return decl
}

// anonymousBody 匿名类的类体; 名字在结构遍历时才分配
func (c *converter) anonymousBody(n *sitter.Node) *ast.ClassDecl {
	return &ast.ClassDecl{Base: c.base(n), Body: c.classBody(n)}
}

func (c *converter) classBody(body *sitter.Node) []ast.Member {
	var members []ast.Member
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		switch child.Kind() {
		case "field_declaration", "constant_declaration":
			members = append(members, c.fieldDecl(child))
		case "method_declaration":
			members = append(members, c.methodDecl(child))
		case "constructor_declaration":
			members = append(members, c.constructorDecl(child))
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			members = append(members, c.classDecl(child))
		case "block":
			members = append(members, &ast.InitializerBlock{Base: c.base(child), Body: c.block(child)})
		case "static_initializer":
			members = append(members, &ast.InitializerBlock{
				Base:   c.base(child),
				Static: true,
				Body:   c.block(c.findNamedChild(child, "block")),
			})
		}
	}
	return members
}

func (c *converter) fieldDecl(n *sitter.Node) *ast.FieldDecl {
	field := &ast.FieldDecl{
		Base: c.base(n),
		Mods: c.modifiers(n),
		Type: c.typeRef(n.ChildByFieldName("type")),
	}
	field.Vars = c.declarators(n)
	return field
}

func (c *converter) declarators(n *sitter.Node) []*ast.VarDeclarator {
	var vars []*ast.VarDeclarator
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() != "variable_declarator" {
			continue
		}
		vars = append(vars, c.declarator(child))
	}
	return vars
}

func (c *converter) declarator(n *sitter.Node) *ast.VarDeclarator {
	v := &ast.VarDeclarator{
		Base: c.base(n),
		Name: c.text(n.ChildByFieldName("name")),
		Dims: c.countDims(n.ChildByFieldName("dimensions")),
	}
	if value := n.ChildByFieldName("value"); value != nil {
		v.Init = c.initializer(value)
	}
	return v
}

func (c *converter) methodDecl(n *sitter.Node) *ast.MethodDecl {
	m := &ast.MethodDecl{
		Base:       c.base(n),
		Mods:       c.modifiers(n),
		TypeParams: c.typeParams(n.ChildByFieldName("type_parameters")),
		Result:     c.typeRef(n.ChildByFieldName("type")),
		Name:       c.text(n.ChildByFieldName("name")),
		Params:     c.params(n.ChildByFieldName("parameters")),
		Throws:     c.throws(n),
	}
	if dims := c.countDims(n.ChildByFieldName("dimensions")); dims > 0 && m.Result != nil {
		m.Result.Dims += dims
	}
	if body := n.ChildByFieldName("body"); body != nil {
		m.Body = c.block(body)
	}
	return m
}

func (c *converter) constructorDecl(n *sitter.Node) *ast.ConstructorDecl {
	ctor := &ast.ConstructorDecl{
		Base:       c.base(n),
		Mods:       c.modifiers(n),
		TypeParams: c.typeParams(n.ChildByFieldName("type_parameters")),
		Name:       c.text(n.ChildByFieldName("name")),
		Params:     c.params(n.ChildByFieldName("parameters")),
		Throws:     c.throws(n),
	}
	if body := n.ChildByFieldName("body"); body != nil {
		ctor.Body = c.block(body)
	}
	return ctor
}

func (c *converter) params(n *sitter.Node) []*ast.Param {
	if n == nil {
		return nil
	}
	var params []*ast.Param
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		switch child.Kind() {
		case "formal_parameter":
			p := &ast.Param{
				Base: c.base(child),
				Mods: c.modifiers(child),
				Type: c.typeRef(child.ChildByFieldName("type")),
				Name: c.text(child.ChildByFieldName("name")),
			}
			if dims := c.countDims(child.ChildByFieldName("dimensions")); dims > 0 && p.Type != nil {
				p.Type.Dims += dims
			}
			params = append(params, p)
		case "spread_parameter":
			p := &ast.Param{Base: c.base(child), Mods: c.modifiers(child), Varargs: true}
			for j := uint(0); j < child.NamedChildCount(); j++ {
				part := child.NamedChild(j)
				switch {
				case part.Kind() == "variable_declarator":
					p.Name = c.text(part.ChildByFieldName("name"))
				case part.Kind() != "modifiers" && p.Type == nil:
					p.Type = c.typeRef(part)
				}
			}
			if p.Type != nil {
				p.Type.Dims++
			}
			params = append(params, p)
		}
	}
	return params
}

func (c *converter) throws(n *sitter.Node) []*ast.TypeRef {
	t := c.findNamedChild(n, "throws")
	if t == nil {
		return nil
	}
	var types []*ast.TypeRef
	for i := uint(0); i < t.NamedChildCount(); i++ {
		types = append(types, c.typeRef(t.NamedChild(i)))
	}
	return types
}

func (c *converter) typeParams(n *sitter.Node) []*ast.TypeParam {
	if n == nil {
		return nil
	}
	var params []*ast.TypeParam
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child.Kind() != "type_parameter" {
			continue
		}
		tp := &ast.TypeParam{Base: c.base(child)}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			part := child.NamedChild(j)
			switch part.Kind() {
			case "type_identifier", "identifier":
				tp.Name = c.text(part)
			case "type_bound":
				for k := uint(0); k < part.NamedChildCount(); k++ {
					tp.Bounds = append(tp.Bounds, c.typeRef(part.NamedChild(k)))
				}
			}
		}
		params = append(params, tp)
	}
	return params
}

// ==========================================
// 3. 修饰符与类型引用 (Modifiers & Types)
// ==========================================

func (c *converter) modifiers(n *sitter.Node) *ast.Modifiers {
	mNode := c.findNamedChild(n, "modifiers")
	if mNode == nil {
		return nil
	}
	mods := &ast.Modifiers{Base: c.base(mNode)}
	for i := uint(0); i < mNode.ChildCount(); i++ {
		child := mNode.Child(i)
		txt := c.text(child)
		if strings.Contains(child.Kind(), "annotation") {
			mods.Annotations = append(mods.Annotations, txt)
		} else if txt != "" {
			mods.Names = append(mods.Names, txt)
		}
	}
	return mods
}

func (c *converter) typeList(n *sitter.Node) []*ast.TypeRef {
	target := n
	if list := c.findNamedChild(n, "type_list"); list != nil {
		target = list
	}
	var types []*ast.TypeRef
	for i := uint(0); i < target.NamedChildCount(); i++ {
		types = append(types, c.typeRef(target.NamedChild(i)))
	}
	return types
}

func (c *converter) typeRef(n *sitter.Node) *ast.TypeRef {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "void_type":
		return &ast.TypeRef{Base: c.base(n), Name: "void"}
	case "array_type":
		t := c.typeRef(n.ChildByFieldName("element"))
		if t == nil {
			return nil
		}
		t.Dims += c.countDims(n.ChildByFieldName("dimensions"))
		t.Location = c.loc(n)
		return t
	case "generic_type":
		t := &ast.TypeRef{Base: c.base(n)}
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			if child.Kind() == "type_arguments" {
				for j := uint(0); j < child.NamedChildCount(); j++ {
					t.TypeArgs = append(t.TypeArgs, c.typeRef(child.NamedChild(j)))
				}
				continue
			}
			t.Name = c.typeRef(child).Name
		}
		return t
	case "scoped_type_identifier":
		var parts []string
		for i := uint(0); i < n.NamedChildCount(); i++ {
			child := n.NamedChild(i)
			if strings.Contains(child.Kind(), "annotation") {
				continue
			}
			if ref := c.typeRef(child); ref != nil {
				parts = append(parts, ref.Name)
			}
		}
		return &ast.TypeRef{Base: c.base(n), Name: strings.Join(parts, ".")}
	case "annotated_type":
		return c.typeRef(c.lastNamedChild(n))
	case "wildcard":
		return &ast.TypeRef{Base: c.base(n), Name: "?"}
	}
	return &ast.TypeRef{Base: c.base(n), Name: c.text(n)}
}

func (c *converter) countDims(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	dims := 0
	for i := uint(0); i < n.ChildCount(); i++ {
		if n.Child(i).Kind() == "[" {
			dims++
		}
	}
	return dims
}

// ==========================================
// 4. 原子辅助函数 (Atomic Helpers)
// ==========================================

func (c *converter) base(n *sitter.Node) ast.Base {
	return ast.Base{Location: c.loc(n)}
}

func (c *converter) loc(n *sitter.Node) *model.Location {
	return &model.Location{
		FilePath:    c.path,
		StartLine:   int(n.StartPosition().Row) + 1,
		EndLine:     int(n.EndPosition().Row) + 1,
		StartColumn: int(n.StartPosition().Column),
		EndColumn:   int(n.EndPosition().Column),
	}
}

func (c *converter) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(c.src)
}

func (c *converter) findNamedChild(n *sitter.Node, kinds ...string) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		for _, k := range kinds {
			if child.Kind() == k {
				return child
			}
		}
	}
	return nil
}

func (c *converter) lastNamedChild(n *sitter.Node) *sitter.Node {
	if n == nil || n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(n.NamedChildCount() - 1)
}

// fieldChildren 同一字段名下的所有子节点 (for 的 init/update 等)
func (c *converter) fieldChildren(n *sitter.Node, field string) []*sitter.Node {
	cursor := n.Walk()
	defer cursor.Close()
	nodes := n.ChildrenByFieldName(field, cursor)
	out := make([]*sitter.Node, len(nodes))
	for i := range nodes {
		out[i] = &nodes[i]
	}
	return out
}
