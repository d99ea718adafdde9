package level_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
	"github.com/CodMac/level-lens/x/level"
)

func mods(names ...string) *ast.Modifiers {
	return &ast.Modifiers{Names: names}
}

func TestPolicy_Registered(t *testing.T) {
	for _, lvl := range []model.LanguageLevel{model.Elementary, model.Intermediate, model.Advanced, model.FullJava} {
		p, err := core.GetPolicy(lvl)
		require.NoError(t, err)
		assert.Equal(t, lvl, p.Level())
	}
}

func TestPolicy_ClassKinds(t *testing.T) {
	iface := &ast.ClassDecl{Name: "Shape", Interface: true}
	nested := &ast.ClassDecl{Name: "Inner"}
	enum := &ast.ClassDecl{Name: "Color", Unsupported: "enum"}

	t.Run("Elementary prunes interfaces", func(t *testing.T) {
		v, msgs := level.NewPolicy(model.Elementary).Admit(core.TopLevel, iface)
		assert.Equal(t, core.Prune, v)
		assert.Equal(t, []string{"Interfaces cannot be used at the Elementary level"}, msgs)
	})

	t.Run("Intermediate accepts interfaces", func(t *testing.T) {
		v, msgs := level.NewPolicy(model.Intermediate).Admit(core.TopLevel, iface)
		assert.Equal(t, core.Accept, v)
		assert.Empty(t, msgs)
	})

	t.Run("nested classes need Advanced", func(t *testing.T) {
		v, _ := level.NewPolicy(model.Intermediate).Admit(core.ClassBody, nested)
		assert.Equal(t, core.Prune, v)

		v, _ = level.NewPolicy(model.Advanced).Admit(core.ClassBody, nested)
		assert.Equal(t, core.Accept, v)
	})

	t.Run("local classes", func(t *testing.T) {
		v, msgs := level.NewPolicy(model.Intermediate).Admit(core.MethodBody, nested)
		assert.Equal(t, core.Prune, v)
		assert.Equal(t, []string{"Local classes cannot be used at the Intermediate level"}, msgs)
	})

	t.Run("enum below FullJava", func(t *testing.T) {
		v, msgs := level.NewPolicy(model.Advanced).Admit(core.TopLevel, enum)
		assert.Equal(t, core.Prune, v)
		assert.Equal(t, []string{"Enum declarations cannot be used at the Advanced level"}, msgs)

		v, msgs = level.NewPolicy(model.FullJava).Admit(core.TopLevel, enum)
		assert.Equal(t, core.Accept, v)
		assert.Empty(t, msgs)
	})
}

func TestPolicy_Modifiers(t *testing.T) {
	field := &ast.FieldDecl{Mods: mods("public", "static"), Vars: []*ast.VarDeclarator{{Name: "x"}}}

	v, msgs := level.NewPolicy(model.Intermediate).Admit(core.ClassBody, field)
	assert.Equal(t, core.Prune, v)
	assert.Equal(t, []string{
		"The keyword public cannot be used at the Intermediate level",
		"The keyword static cannot be used at the Intermediate level",
	}, msgs)

	v, msgs = level.NewPolicy(model.Advanced).Admit(core.ClassBody, field)
	assert.Equal(t, core.Accept, v)
	assert.Empty(t, msgs)

	method := &ast.MethodDecl{Mods: mods("public", "abstract"), Name: "area"}
	v, _ = level.NewPolicy(model.Intermediate).Admit(core.ClassBody, method)
	assert.Equal(t, core.Accept, v)

	sync := &ast.MethodDecl{Mods: mods("synchronized"), Name: "run"}
	v, msgs = level.NewPolicy(model.Advanced).Admit(core.ClassBody, sync)
	assert.Equal(t, core.Prune, v)
	assert.Equal(t, []string{"The keyword synchronized cannot be used at the Advanced level"}, msgs)
}

func TestPolicy_BodyConstructsRecover(t *testing.T) {
	elementary := level.NewPolicy(model.Elementary)

	cases := []struct {
		name string
		node ast.Node
		msg  string
	}{
		{"while", &ast.WhileStmt{}, "Loops cannot be used at the Elementary level"},
		{"foreach", &ast.ForEachStmt{Name: "s"}, "Loops cannot be used at the Elementary level"},
		{"switch", &ast.SwitchStmt{}, "Switch statements cannot be used at the Elementary level"},
		{"break", &ast.BreakStmt{}, "break and continue statements cannot be used at the Elementary level"},
		{"throw", &ast.ThrowStmt{}, "Exceptions cannot be used at the Elementary level"},
		{"conditional", &ast.Conditional{}, "The conditional operator ?: cannot be used at the Elementary level"},
		{"array", &ast.NewArray{Elem: &ast.TypeRef{Name: "int"}}, "Arrays cannot be used at the Elementary level"},
		{"assert", &ast.UnsupportedStmt{What: "assert statement"}, "Assert statements cannot be used at the Elementary level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, msgs := elementary.Admit(core.MethodBody, tc.node)
			assert.Equal(t, core.Recover, v)
			assert.Equal(t, []string{tc.msg}, msgs)
		})
	}

	v, _ := level.NewPolicy(model.Advanced).Admit(core.MethodBody, &ast.LabeledStmt{Label: "outer"})
	assert.Equal(t, core.Recover, v)
	v, _ = level.NewPolicy(model.FullJava).Admit(core.MethodBody, &ast.LabeledStmt{Label: "outer"})
	assert.Equal(t, core.Accept, v)
}

func TestPolicy_FinalLocals(t *testing.T) {
	local := &ast.LocalVarDecl{Mods: mods("final"), Type: &ast.TypeRef{Name: "int"}}

	v, msgs := level.NewPolicy(model.Intermediate).Admit(core.MethodBody, local)
	assert.Equal(t, core.Recover, v)
	assert.Equal(t, []string{"The keyword final cannot be used at the Intermediate level"}, msgs)

	v, _ = level.NewPolicy(model.Advanced).Admit(core.MethodBody, local)
	assert.Equal(t, core.Accept, v)
}

func TestPolicy_AnonymousClasses(t *testing.T) {
	anon := &ast.NewObject{Type: &ast.TypeRef{Name: "Runnable"}, Body: &ast.ClassDecl{}}

	v, _ := level.NewPolicy(model.Elementary).Admit(core.MethodBody, anon)
	assert.Equal(t, core.Prune, v)

	v, _ = level.NewPolicy(model.Intermediate).Admit(core.MethodBody, anon)
	assert.Equal(t, core.Accept, v)

	plain := &ast.NewObject{Type: &ast.TypeRef{Name: "Object"}}
	v, _ = level.NewPolicy(model.Elementary).Admit(core.MethodBody, plain)
	assert.Equal(t, core.Accept, v)
}

func TestPolicy_ImplicitModifiers(t *testing.T) {
	field := &ast.FieldDecl{Vars: []*ast.VarDeclarator{{Name: "x"}}}
	method := &ast.MethodDecl{Name: "getX"}
	private := &ast.MethodDecl{Mods: mods("private"), Name: "helper"}
	class := &ast.ClassDecl{Name: "Point"}

	for _, lvl := range []model.LanguageLevel{model.Elementary, model.Intermediate} {
		p := level.NewPolicy(lvl)
		assert.Equal(t, model.Private|model.Final, p.ImplicitModifiers(core.ClassBody, field), lvl.String())
		assert.Equal(t, model.Public, p.ImplicitModifiers(core.ClassBody, method), lvl.String())
		assert.Equal(t, model.Modifiers(0), p.ImplicitModifiers(core.ClassBody, private), lvl.String())
		assert.Equal(t, model.Public, p.ImplicitModifiers(core.TopLevel, class), lvl.String())
		assert.Equal(t, model.Modifiers(0), p.ImplicitModifiers(core.InterfaceBody, field), lvl.String())
	}

	for _, lvl := range []model.LanguageLevel{model.Advanced, model.FullJava} {
		p := level.NewPolicy(lvl)
		assert.Equal(t, model.Modifiers(0), p.ImplicitModifiers(core.ClassBody, field), lvl.String())
		assert.Equal(t, model.Modifiers(0), p.ImplicitModifiers(core.TopLevel, class), lvl.String())
	}
}
