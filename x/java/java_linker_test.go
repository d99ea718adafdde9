package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJavaLinker_ForwardReferenceAcrossFiles(t *testing.T) {
	r := analyze(t,
		src("a/A.java", `
package a;

import b.B;

public class A {
    B first;
    B second;
}
`),
		src("b/B.java", `
package b;

public class B {
    a.A back;
}
`))
	assert.Empty(t, messages(r))

	a := class(t, r, "a.A")
	b := class(t, r, "b.B")
	require.Len(t, a.Fields, 2)
	assert.Same(t, b, a.Fields[0].Type)
	assert.Same(t, a.Fields[0].Type, a.Fields[1].Type, "同一个名字两次解析得到同一个符号")
	assert.Same(t, a, b.Field("back").Type)
	assert.Empty(t, r.Session.Continuations.Pending())
}

func TestJavaLinker_Unresolved(t *testing.T) {
	r := analyze(t, src("U.java", `
class U {
    Missing m;
}
`))
	assert.Equal(t, []string{"Cannot resolve symbol Missing"}, messages(r))
	assert.Len(t, r.Session.Continuations.Pending(), 1)
}

func TestJavaLinker_PendingTypesCleared(t *testing.T) {
	r := analyze(t,
		src("X.java", "class X extends Y {}"),
		src("Y.java", "class Y {}"))
	assert.Empty(t, messages(r))
	assert.Empty(t, r.Session.PendingNames())
	assert.Same(t, class(t, r, "Y"), class(t, r, "X").Super)
}

func TestJavaBinder_CyclicInheritance(t *testing.T) {
	r := analyze(t, src("C.java", `
class C1 extends C2 {}
class C2 extends C1 {}
`))
	assert.True(t, containsMsg(messages(r), "Cyclic inheritance involving"), messages(r))
}

func TestJavaBinder_HierarchyKinds(t *testing.T) {
	r := analyze(t, src("K.java", `
interface I {}
final class Leaf {}
class A extends I {}
class B implements Leaf {}
class C extends Leaf {}
`))
	msgs := messages(r)
	assert.Contains(t, msgs, "A cannot extend the interface I; use implements instead")
	assert.Contains(t, msgs, "B cannot implement the class Leaf; a class can only be extended")
	assert.Contains(t, msgs, "C cannot extend the final class Leaf")
}
