package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/level-lens/model"
)

func TestJavaCollector_LocalAndAnonymousNaming(t *testing.T) {
	r := analyze(t, src("A.java", `
public class A {
    void B() {
        class C {}
        class C2 {}
        Object o = new Object() {};
    }
}
`))

	c := class(t, r, "A$1C")
	assert.True(t, c.IsLocal)
	assert.Equal(t, "A", c.Outer.QualifiedName)

	c2 := class(t, r, "A$2C2")
	assert.True(t, c2.IsLocal)

	anon := class(t, r, "A$1")
	assert.True(t, anon.IsAnonymous)
	assert.Equal(t, "java.lang.Object", anon.Super.Name())
}

func TestJavaCollector_AnonymousAndLocalCountersAreSeparate(t *testing.T) {
	r := analyze(t, src("A.java", `
public class A {
    void m() {
        Object o = new Object() {};
        class C {}
        Object p = new Object() {};
    }
}
`))
	assert.Empty(t, messages(r))
	class(t, r, "A$1")
	class(t, r, "A$2")
	assert.True(t, class(t, r, "A$1C").IsLocal)
}

func TestJavaCollector_LocalClassesScopedToBlock(t *testing.T) {
	r := analyze(t, src("A.java", `
public class A {
    void m1() {
        class C {
            void foo() {}
        }
        new C().foo();
    }

    void m2() {
        class C {
            void bar() {}
        }
        new C().bar();
        class D extends C {}
        new D().bar();
    }
}
`))
	assert.Empty(t, messages(r))

	c1 := class(t, r, "A$1C")
	c2 := class(t, r, "A$2C")
	assert.NotNil(t, c1.FindMethod("foo", nil))
	assert.NotNil(t, c2.FindMethod("bar", nil))
	assert.Same(t, c2, class(t, r, "A$3D").Super, "D 看到的是同一个块中的 C")
}

func TestJavaCollector_LocalClassNotVisibleOutsideBlock(t *testing.T) {
	r := analyze(t, src("A.java", `
public class A {
    void m(boolean b) {
        if (b) {
            class C {}
        }
        C c = null;
    }
}
`))
	assert.Equal(t, []string{"Cannot resolve symbol C"}, messages(r))
}

func TestJavaCollector_NestedNaming(t *testing.T) {
	r := analyze(t, src("com/example/Outer.java", `
package com.example;

public class Outer {
    static class Inner {
        interface Deep {}
    }
}
`))

	inner := class(t, r, "com.example.Outer$Inner")
	assert.Equal(t, "com.example", inner.Package)
	assert.True(t, inner.Modifiers.Has(model.Static))

	deep := class(t, r, "com.example.Outer$Inner$Deep")
	assert.True(t, deep.IsInterface)
	assert.Same(t, inner, deep.Outer)
}

func TestJavaCollector_Bart(t *testing.T) {
	r := analyze(t, src("Bart.java", `
class Bart {
    int age;
}
`))
	assert.Empty(t, messages(r))

	bart := class(t, r, "Bart")
	ctors := bart.Constructors()
	require.Len(t, ctors, 1)
	assert.True(t, ctors[0].Generated)
	assert.True(t, ctors[0].Modifiers.Has(model.Public))
	assert.Empty(t, ctors[0].Params)

	object := class(t, r, "java.lang.Object")
	assert.Same(t, object, bart.Super)
}

func TestJavaCollector_DuplicateParams(t *testing.T) {
	r := analyze(t, src("P.java", `
class P {
    void m(int field1, String field1) {}
}
`))
	assert.Equal(t, []string{"You cannot have two method parameters with the same name."}, messages(r))
}

func TestJavaCollector_DuplicateMembers(t *testing.T) {
	r := analyze(t, src("D.java", `
class D {
    int x;
    String x;
    void m() {}
    void m() {}
}
`))
	assert.Equal(t, 1, count(r, "You cannot have two fields with the same name: x is already defined in D"))
	assert.Equal(t, 1, count(r, "The method m() is already defined in D"))
}

func TestJavaCollector_ElementaryAugmentation(t *testing.T) {
	r := analyze(t, src("Point.dj0", `
class Point {
    int x;
    int y;
}
`))
	assert.Empty(t, messages(r))

	point := class(t, r, "Point")
	assert.True(t, point.Modifiers.Has(model.Public))
	for _, f := range point.Fields {
		assert.True(t, f.IsFinal() && f.Modifiers.Has(model.Private), f.Name)
	}

	ctors := point.Constructors()
	require.Len(t, ctors, 1)
	assert.True(t, ctors[0].Generated)
	assert.Equal(t, "Point(int, int)", ctors[0].Signature())

	var generated []string
	for _, m := range point.GeneratedMethods() {
		if !m.Constructor {
			generated = append(generated, m.Signature())
		}
	}
	assert.ElementsMatch(t, []string{"x()", "y()", "toString()", "equals(Object)", "hashCode()"}, generated)
	assert.Empty(t, point.UserMethods())
}

func TestJavaCollector_AugmentedSuperParams(t *testing.T) {
	r := analyze(t,
		src("Animal.dj0", `
class Animal {
    String name;
}
`),
		src("Dog.dj0", `
class Dog extends Animal {
    int age;
}
`))
	assert.Empty(t, messages(r))

	ctors := class(t, r, "Dog").Constructors()
	require.Len(t, ctors, 1)
	assert.Equal(t, "Dog(String, int)", ctors[0].Signature())
}

func TestJavaCollector_LevelViolations(t *testing.T) {
	r := analyze(t, src("Sq.dj0", `
interface Shape {}

class Sq {
    static int n;

    void m() {
        while (true) {}
    }
}
`))

	msgs := messages(r)
	assert.Contains(t, msgs, "Interfaces cannot be used at the Elementary level")
	assert.Contains(t, msgs, "The keyword static cannot be used at the Elementary level")
	assert.Contains(t, msgs, "Loops cannot be used at the Elementary level")

	_, ok := r.Session.Table.Lookup("Shape")
	assert.False(t, ok, "剪枝的声明不进入符号表")
	assert.Nil(t, class(t, r, "Sq").Field("n"))
}

func TestJavaCollector_SyntaxError(t *testing.T) {
	r := analyze(t, src("S.java", `
class S {
    void m() {
        int x = ;
    }
}
`))
	require.NotEmpty(t, messages(r))
	assert.Contains(t, messages(r)[0], "Syntax error")
}
