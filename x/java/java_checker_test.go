package java_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// containsMsg 是否有诊断包含 part
func containsMsg(msgs []string, part string) bool {
	for _, m := range msgs {
		if strings.Contains(m, part) {
			return true
		}
	}
	return false
}

func TestJavaChecker_SuperConstructorNotFound(t *testing.T) {
	r := analyze(t,
		src("Super.java", `
class Super {
    Super(String s) {}
}
`),
		src("Sub.java", `
class Sub extends Super {
    Sub() {
        super(5);
    }
}
`))
	assert.Equal(t, []string{"No constructor found in class Super with signature: Super(int)."}, messages(r))
}

func TestJavaChecker_FinalLocalOnOnePath(t *testing.T) {
	r := analyze(t, src("F.java", `
class F {
    void m(boolean b) {
        final int i;
        if (b) {
            i = 1;
        }
        int j = i;
    }
}
`))
	assert.Equal(t, []string{"You cannot use i because it may not have been given a value"}, messages(r))
}

func TestJavaChecker_FinalLocalBothBranches(t *testing.T) {
	r := analyze(t, src("F.java", `
class F {
    int m(boolean b) {
        final int i;
        if (b) {
            i = 1;
        } else {
            i = 2;
        }
        return i;
    }
}
`))
	assert.Empty(t, messages(r))
}

func TestJavaChecker_FinalFieldNotInitialized(t *testing.T) {
	r := analyze(t, src("G.java", `
class G {
    private final int f;
    private final int g;

    G() {
        g = 1;
    }

    G(int v) {
        this();
    }
}
`))
	assert.Equal(t, []string{
		"The final field f has not been initialized. Make sure you give it a value in this constructor.",
	}, messages(r))
}

func TestJavaChecker_FinalReassign(t *testing.T) {
	r := analyze(t, src("R.java", `
class R {
    void m() {
        final int k = 1;
        k = 2;
    }
}
`))
	assert.Equal(t, []string{
		"You cannot assign a value to k because it is immutable and has already been given a value",
	}, messages(r))
}

func TestJavaChecker_UndeclaredThrow(t *testing.T) {
	r := analyze(t, src("H.java", `
class H {
    void m() {
        throw new Exception();
    }

    void ok() throws Exception {
        throw new Exception();
    }

    void unchecked() {
        throw new RuntimeException();
    }

    void caught() {
        try {
            ok();
        } catch (Exception e) {
        }
    }
}
`))
	msgs := messages(r)
	assert.Len(t, msgs, 1)
	assert.True(t, containsMsg(msgs, "needs to be declared to throw it"), msgs)
}

func TestJavaChecker_OverrideReturnType(t *testing.T) {
	r := analyze(t, src("P1.java", `
class P1 {
    int v() { return 1; }
}

class P2 extends P1 {
    String v() { return ""; }
}
`))
	msgs := messages(r)
	assert.Len(t, msgs, 1)
	assert.True(t, containsMsg(msgs, "attempting to use different return types"), msgs)
}

func TestJavaChecker_Expressions(t *testing.T) {
	r := analyze(t, src("E.java", `
class E {
    int n;

    static void s() {
        n = 1;
    }

    void m() {
        if (n) {}
        boolean b = 1;
        undefined = 2;
        return;
        n = 3;
    }
}
`))
	msgs := messages(r)
	assert.True(t, containsMsg(msgs, "from a static context"), msgs)
	assert.Contains(t, msgs, "The condition must be a boolean expression, but it has type int")
	assert.Contains(t, msgs, "Bad types: a int cannot be assigned to a variable of type boolean")
	assert.Contains(t, msgs, "Could not resolve symbol undefined")
	assert.Contains(t, msgs, "This statement is unreachable")
}

func TestJavaChecker_AbstractInstantiation(t *testing.T) {
	r := analyze(t, src("Shape.java", `
abstract class Shape {
    abstract double area();
}

class Square extends Shape {
}

class Use {
    Object make() {
        return new Shape();
    }
}
`))
	msgs := messages(r)
	assert.Contains(t, msgs, "Shape is abstract and cannot be instantiated")
	assert.True(t, containsMsg(msgs, "must be declared abstract or implement the abstract method"), msgs)
}

func TestJavaChecker_OverrideRules(t *testing.T) {
	t.Run("weaker access", func(t *testing.T) {
		r := analyze(t, src("A.java", `
class A {
    public void m() {}
}
class B extends A {
    void m() {}
}
`))
		assert.True(t, containsMsg(messages(r), "attempting to assign weaker access privileges"), messages(r))
	})

	t.Run("final method", func(t *testing.T) {
		r := analyze(t, src("A.java", `
class A {
    final void m() {}
}
class B extends A {
    void m() {}
}
`))
		assert.True(t, containsMsg(messages(r), "the overridden method is final"), messages(r))
	})

	t.Run("compatible override", func(t *testing.T) {
		r := analyze(t, src("A.java", `
class A {
    protected Object make() { return null; }
}
class B extends A {
    public String make() { return "b"; }
}
`))
		assert.Empty(t, messages(r))
	})
}

func TestJavaChecker_FieldForwardReference(t *testing.T) {
	r := analyze(t, src("C.java", `
class C {
    int a = b + 1;
    int b = 2;
}
`))
	assert.Equal(t, []string{"Illegal forward reference to field b; it is declared after this point"}, messages(r))
}

func TestJavaChecker_CatchNotThrowable(t *testing.T) {
	r := analyze(t, src("C.java", `
class C {
    void m() {
        try {
            m();
        } catch (String s) {
        }
    }
}
`))
	assert.True(t, containsMsg(messages(r), "A catch clause can only catch a Throwable"), messages(r))
}

func TestJavaChecker_PrivateFieldAccess(t *testing.T) {
	r := analyze(t,
		src("A.java", `
class A {
    private int x;
}
`),
		src("B.java", `
class B {
    int get(A a) {
        return a.x;
    }
}
`))
	assert.True(t, containsMsg(messages(r), "is not accessible from B"), messages(r))
}

func TestJavaChecker_FinalLocalMaybeAssigned(t *testing.T) {
	r := analyze(t, src("F.java", `
class F {
    void m(boolean b) {
        final int i;
        if (b) {
            i = 1;
        }
        i = 2;
    }
}
`))
	assert.Equal(t, []string{
		"You cannot assign a value to i because it is immutable and has already been given a value",
	}, messages(r))
}

func TestJavaChecker_FinalLocalAssignedInLoop(t *testing.T) {
	r := analyze(t, src("F.java", `
class F {
    void m(boolean b) {
        final int j;
        while (b) {
            j = 1;
        }
    }
}
`))
	assert.Equal(t, []string{
		"You cannot assign a value to j because it is immutable and has already been given a value",
	}, messages(r))
}

func TestJavaChecker_FinalLocalAssignedInCatch(t *testing.T) {
	r := analyze(t, src("F.java", `
class F {
    void m() {
        final int t;
        try {
            t = 1;
        } catch (RuntimeException e) {
            t = 2;
        }
    }
}
`))
	assert.Equal(t, []string{
		"You cannot assign a value to t because it is immutable and has already been given a value",
	}, messages(r))
}

func TestJavaChecker_FinalLocalLoopWithoutBackEdge(t *testing.T) {
	r := analyze(t, src("F.java", `
class F {
    void m(boolean b) {
        final int j;
        while (b) {
            j = 1;
            break;
        }
        for (int n = 0; n < 3; n++) {
            final int k;
            k = n;
        }
        outer:
        while (b) {
            final int x;
            while (b) {
                x = 1;
                continue outer;
            }
        }
    }
}
`))
	assert.Empty(t, messages(r), "break 与循环体内声明的变量不构成重复赋值")
}

func TestJavaChecker_InnerSuperMustBeQualified(t *testing.T) {
	r := analyze(t, src("O.java", `
class O {
    class In {
        In() {}
    }

    class Sub extends In {
        Sub() {
            super();
        }
    }

    class Implicit extends In {
    }

    class Qualified extends In {
        Qualified(O o) {
            o.super();
        }
    }
}
`))
	assert.Equal(t, 1, count(r, "Constructor for O$Sub must explicitly call super using an instance of O, as in outer.super(...), because O$In is a non-static inner class"), messages(r))
	assert.Equal(t, 1, count(r, "Constructor for O$Implicit must explicitly call super using an instance of O, as in outer.super(...), because O$In is a non-static inner class"), messages(r))
	assert.Len(t, messages(r), 2)
}

func TestJavaChecker_QualifiedSuper(t *testing.T) {
	r := analyze(t,
		src("Q.java", `
class Q {
    class In {
        In() {}
    }

    static class S {
        S() {}
    }
}
`),
		src("Other.java", `
class Other {
}
`),
		src("A.java", `
class ByType extends Q.In {
    ByType() {
        Q.super();
    }
}

class WrongOuter extends Q.In {
    WrongOuter(Other o) {
        o.super();
    }
}

class NotInner extends Q.S {
    NotInner(Q q) {
        q.super();
    }
}
`))
	msgs := messages(r)
	assert.Len(t, msgs, 3)
	assert.True(t, containsMsg(msgs, "The enclosing instance for super must be a value, not the type Q"), msgs)
	assert.True(t, containsMsg(msgs, "The enclosing instance for super must be of type Q, but it has type Other"), msgs)
	assert.True(t, containsMsg(msgs, "is not an inner class, so super cannot be qualified with an enclosing instance"), msgs)
}

func TestJavaChecker_ConstructorThrows(t *testing.T) {
	r := analyze(t, src("T.java", `
class T {
    T() throws Exception {}

    T(int x) {
        this();
    }

    T(String s) throws Exception {
        this();
    }

    void make() {
        new T();
    }
}
`))
	assert.ElementsMatch(t, []string{
		"The constructor T() throws the exception Exception, so T needs to be declared to throw it",
		"The constructor T() throws the exception Exception, so make needs to be declared to throw it",
	}, messages(r))
}

func TestJavaChecker_ConstructorReturnValue(t *testing.T) {
	r := analyze(t, src("V.java", `
class V {
    V(boolean b) {
        if (b) {
            return;
        }
        return 1;
    }
}
`))
	assert.Equal(t, []string{"You cannot return a value from a constructor"}, messages(r))
}

func TestJavaChecker_PrivateNestedType(t *testing.T) {
	r := analyze(t,
		src("H.java", `
class H {
    private static class Priv {
    }

    Priv own() {
        return new Priv();
    }
}
`),
		src("K.java", `
class K {
    void m() {
        H.Priv p = null;
    }
}
`))
	msgs := messages(r)
	assert.Len(t, msgs, 1)
	assert.True(t, containsMsg(msgs, "Priv is not accessible from K"), msgs)
}
