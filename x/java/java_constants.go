package java

// 诊断消息模板, 保持各遍之间措辞统一
const (
	// --- 结构遍历 ---
	MsgDuplicateClass       = "Duplicate class: %s"
	MsgDuplicateField       = "You cannot have two fields with the same name: %s is already defined in %s"
	MsgDuplicateMethod      = "The method %s is already defined in %s"
	MsgDuplicateParam       = "You cannot have two method parameters with the same name."
	MsgMissingBody          = "The method %s must have a body or be declared abstract"
	MsgAbstractInConcrete   = "%s is not abstract and cannot declare the abstract method %s"
	MsgInterfaceMethodBody  = "Interface method %s cannot have a body"
	MsgCtorNameMismatch     = "Invalid method declaration; a return type is required for %s"
	MsgInterfaceConstructor = "Interfaces cannot have constructors"
	MsgSyntaxError          = "Syntax error: %s"
	MsgSyntaxMissing        = "Syntax error: missing %s"

	// --- 链接与绑定 ---
	MsgCannotResolve      = "Cannot resolve symbol %s"
	MsgCyclicInheritance  = "Cyclic inheritance involving %s"
	MsgExtendsInterface   = "%s cannot extend the interface %s; use implements instead"
	MsgImplementsClass    = "%s cannot implement the class %s; a class can only be extended"
	MsgInterfaceExtends   = "Interface %s can only extend other interfaces, but %s is a class"
	MsgExtendsFinal       = "%s cannot extend the final class %s"
	MsgTypeNotAccessible  = "%s is not accessible from %s"
	MsgTestMethodSig      = "The test method %s must be public, return void, and take no parameters"
	MsgAbstractNotImpl    = "%s must be declared abstract or implement the abstract method %s from %s"
	MsgOverrideReturnType = "%s in %s cannot override %s in %s; attempting to use different return types"
	MsgOverrideWeaker     = "%s in %s cannot override %s in %s; attempting to assign weaker access privileges"
	MsgOverrideFinal      = "%s in %s cannot override %s in %s; the overridden method is final"
	MsgOverrideStatic     = "%s in %s cannot override %s in %s; a static method cannot hide an instance method or the other way round"
	MsgOverrideThrows     = "%s in %s cannot override %s in %s; the overridden method does not throw %s"

	// --- 类型检查: 构造函数 ---
	MsgNoConstructor        = "No constructor found in class %s with signature: %s."
	MsgCtorCallNotFirst     = "A call to %s must be the first statement in a constructor"
	MsgCtorCallOutside      = "You can only call %s from inside a constructor"
	MsgInnerSuperImplicit   = "Constructor for %s must explicitly call super using an instance of %s, as in outer.super(...), because %s is a non-static inner class"
	MsgQualifiedSuperType   = "The enclosing instance for super must be of type %s, but it has type %s"
	MsgQualifiedSuperStatic = "%s is not an inner class, so super cannot be qualified with an enclosing instance"
	MsgQualifiedSuperNotVal = "The enclosing instance for super must be a value, not the type %s"
	MsgCtorReturnValue      = "You cannot return a value from a constructor"
	MsgFinalNotInitialized  = "The final field %s has not been initialized. Make sure you give it a value in this constructor."
	MsgRecursiveCtor        = "Recursive constructor invocation %s"

	// --- 类型检查: 赋值 ---
	MsgMayNotHaveValue    = "You cannot use %s because it may not have been given a value"
	MsgFinalReassign      = "You cannot assign a value to %s because it is immutable and has already been given a value"
	MsgFinalAssignOutside = "You cannot assign a value to %s because it is immutable"
	MsgForwardReference   = "Illegal forward reference to field %s; it is declared after this point"
	MsgDuplicateLocal     = "You cannot have two variables named %s in the same scope"
	MsgNotAssignable      = "Bad types: a %s cannot be assigned to a variable of type %s"
	MsgNotAVariable       = "You cannot assign a value to this expression; the left side must be a variable"

	// --- 类型检查: 表达式 ---
	MsgUnknownVariable     = "Could not resolve symbol %s"
	MsgUnknownField        = "No field named %s in %s"
	MsgUnknownMethod       = "No method found in class %s with signature: %s."
	MsgAmbiguousMethod     = "The call to %s is ambiguous in class %s"
	MsgBadOperands         = "Bad operand types %s and %s for operator %s"
	MsgBadOperand          = "Bad operand type %s for operator %s"
	MsgConditionType       = "The condition must be a boolean expression, but it has type %s"
	MsgArrayIndexType      = "An array index must be an int, but it has type %s"
	MsgArrayDimType        = "An array dimension must be an int, but it has type %s"
	MsgNotArray            = "An array access requires an array, but this expression has type %s"
	MsgBadCast             = "Cannot cast a %s to a %s"
	MsgBadInstanceOf       = "Incompatible types for instanceof: %s and %s"
	MsgInstantiateAbstract = "%s is abstract and cannot be instantiated"
	MsgInnerNeedsOuter     = "An enclosing instance of %s is needed to create %s"
	MsgThisInStatic        = "You cannot use %s in a static context"
	MsgStaticRefInstance   = "You cannot reference the non-static %s %s from a static context"
	MsgNotAccessible       = "%s in %s is not accessible from %s"
	MsgVoidValue           = "The method %s does not return a value"
	MsgNotStatement        = "This expression cannot be used as a statement"
	MsgNotEnclosingClass   = "%s is not an enclosing class"
	MsgForEachType         = "for-each can only iterate over an array or an Iterable, but this expression has type %s"
	MsgSwitchType          = "You cannot switch on a value of type %s"

	// --- 类型检查: 语句与返回 ---
	MsgMissingReturn      = "The method %s must return a value of type %s"
	MsgReturnInVoid       = "You cannot return a value from the void method %s"
	MsgReturnMissingValue = "The method %s must return a value of type %s"
	MsgBadReturnType      = "The method %s must return a %s, but this expression has type %s"
	MsgUnreachable        = "This statement is unreachable"
	MsgBreakOutside       = "break can only be used inside a loop or switch"
	MsgContinueOutside    = "continue can only be used inside a loop"

	// --- 类型检查: 异常 ---
	MsgUndeclaredThrow     = "The method %s throws the exception %s, so %s needs to be declared to throw it"
	MsgUndeclaredThrowCtor = "The constructor %s throws the exception %s, so %s needs to be declared to throw it"
	MsgUndeclaredThrowX    = "This statement throws the exception %s, so %s needs to be declared to throw it"
	MsgInitializerThrow    = "This initializer throws the checked exception %s, which is not allowed"
	MsgNotThrowable        = "You can only throw a Throwable, but this expression has type %s"
	MsgCatchNotThrowable   = "A catch clause can only catch a Throwable, but %s is not one"
)

const (
	objectQN    = "java.lang.Object"
	stringQN    = "java.lang.String"
	throwableQN = "java.lang.Throwable"
	runtimeQN   = "java.lang.RuntimeException"
	errorQN     = "java.lang.Error"
	enumQN      = "java.lang.Enum"
	recordQN    = "java.lang.Record"
	iterableQN  = "java.lang.Iterable"
	testCaseQN  = "junit.framework.TestCase"
)
