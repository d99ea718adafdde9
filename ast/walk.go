package ast

// Inspect 深度优先遍历语法树; fn 返回 false 时不再进入该节点的子节点。
// 匿名类体与局部类声明会作为 *ClassDecl 被访问, 由调用者决定是否继续深入。
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

// Children 返回节点的直接子节点 (按源码顺序, 跳过 nil)
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil && !isNilNode(c) {
				out = append(out, c)
			}
		}
	}
	switch x := n.(type) {
	case *CompilationUnit:
		for _, t := range x.Types {
			add(t)
		}
	case *ClassDecl:
		for _, m := range x.Body {
			add(m)
		}
	case *FieldDecl:
		for _, v := range x.Vars {
			add(v)
		}
	case *VarDeclarator:
		add(x.Init)
	case *MethodDecl:
		add(x.Body)
	case *ConstructorDecl:
		add(x.Body)
	case *InitializerBlock:
		add(x.Body)
	case *Block:
		for _, s := range x.Stmts {
			add(s)
		}
	case *LocalVarDecl:
		for _, v := range x.Vars {
			add(v)
		}
	case *LocalClassDecl:
		add(x.Decl)
	case *ExprStmt:
		add(x.X)
	case *IfStmt:
		add(x.Cond, x.Then, x.Else)
	case *WhileStmt:
		add(x.Cond, x.Body)
	case *DoStmt:
		add(x.Body, x.Cond)
	case *ForStmt:
		for _, s := range x.Init {
			add(s)
		}
		add(x.Cond)
		for _, u := range x.Update {
			add(u)
		}
		add(x.Body)
	case *ForEachStmt:
		add(x.Iter, x.Body)
	case *ReturnStmt:
		add(x.Value)
	case *ThrowStmt:
		add(x.X)
	case *TryStmt:
		add(x.Body)
		for _, c := range x.Catches {
			add(c)
		}
		add(x.Finally)
	case *CatchClause:
		add(x.Body)
	case *SwitchStmt:
		add(x.Tag)
		for _, c := range x.Cases {
			add(c)
		}
	case *SwitchCase:
		for _, l := range x.Labels {
			add(l)
		}
		for _, s := range x.Body {
			add(s)
		}
	case *LabeledStmt:
		add(x.Body)
	case *ConstructorCall:
		add(x.Qualifier)
		for _, a := range x.Args {
			add(a)
		}
	case *UnsupportedStmt:
		for _, s := range x.Body {
			add(s)
		}
	case *FieldAccess:
		add(x.X)
	case *MethodCall:
		add(x.Recv)
		for _, a := range x.Args {
			add(a)
		}
	case *NewObject:
		add(x.Outer)
		for _, a := range x.Args {
			add(a)
		}
		add(x.Body)
	case *NewArray:
		for _, d := range x.DimExprs {
			add(d)
		}
		add(x.Init)
	case *ArrayInit:
		for _, e := range x.Elems {
			add(e)
		}
	case *Index:
		add(x.X, x.Index)
	case *Assign:
		add(x.LHS, x.RHS)
	case *Binary:
		add(x.X, x.Y)
	case *Unary:
		add(x.X)
	case *Cast:
		add(x.X)
	case *InstanceOf:
		add(x.X)
	case *Conditional:
		add(x.Cond, x.Then, x.Else)
	case *Paren:
		add(x.X)
	}
	return out
}

// isNilNode 过滤掉装在接口里的 nil 指针
func isNilNode(n Node) bool {
	switch x := n.(type) {
	case *Block:
		return x == nil
	case *ClassDecl:
		return x == nil
	case *ArrayInit:
		return x == nil
	}
	return false
}
