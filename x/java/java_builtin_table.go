package java

import (
	"maps"
	"slices"
	"strings"

	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

// --- Java 内置符号表 ---

type builtinMethod struct {
	Name   string
	Return string // "" 表示 void
	Params []string
	Static bool
	Throws []string
}

type builtinField struct {
	Name   string
	Type   string
	Static bool
}

type builtinClass struct {
	Interface bool
	Final     bool
	Abstract  bool
	Super     string
	Ifaces    []string
	Ctors     [][]string
	Methods   []builtinMethod
	Fields    []builtinField
	Complete  bool // 成员表是否完整; 不完整时找不到的成员不报错
}

var objectMethods = []builtinMethod{
	{Name: "equals", Return: "boolean", Params: []string{"java.lang.Object"}},
	{Name: "hashCode", Return: "int"},
	{Name: "toString", Return: "java.lang.String"},
	{Name: "getClass", Return: "java.lang.Class"},
	{Name: "notify"},
	{Name: "notifyAll"},
	{Name: "wait", Throws: []string{"java.lang.InterruptedException"}},
	{Name: "wait", Params: []string{"long"}, Throws: []string{"java.lang.InterruptedException"}},
}

var messageCtors = [][]string{{}, {"java.lang.String"}}

var throwableMethods = []builtinMethod{
	{Name: "getMessage", Return: "java.lang.String"},
	{Name: "getCause", Return: "java.lang.Throwable"},
	{Name: "printStackTrace"},
}

// BuiltinTable 限定名 -> 内置类定义
var BuiltinTable = map[string]builtinClass{
	// === java.lang 核心类 (默认隐式导入) ===
	"java.lang.Object": {Ctors: [][]string{{}}, Methods: objectMethods, Complete: true},
	"java.lang.String": {
		Final: true, Super: "java.lang.Object",
		Ifaces: []string{"java.lang.CharSequence", "java.lang.Comparable"},
		Ctors:  [][]string{{}, {"java.lang.String"}, {"char[]"}},
		Methods: []builtinMethod{
			{Name: "length", Return: "int"},
			{Name: "charAt", Return: "char", Params: []string{"int"}},
			{Name: "isEmpty", Return: "boolean"},
			{Name: "substring", Return: "java.lang.String", Params: []string{"int"}},
			{Name: "substring", Return: "java.lang.String", Params: []string{"int", "int"}},
			{Name: "indexOf", Return: "int", Params: []string{"java.lang.String"}},
			{Name: "indexOf", Return: "int", Params: []string{"int"}},
			{Name: "concat", Return: "java.lang.String", Params: []string{"java.lang.String"}},
			{Name: "compareTo", Return: "int", Params: []string{"java.lang.String"}},
			{Name: "equalsIgnoreCase", Return: "boolean", Params: []string{"java.lang.String"}},
			{Name: "startsWith", Return: "boolean", Params: []string{"java.lang.String"}},
			{Name: "endsWith", Return: "boolean", Params: []string{"java.lang.String"}},
			{Name: "contains", Return: "boolean", Params: []string{"java.lang.CharSequence"}},
			{Name: "toUpperCase", Return: "java.lang.String"},
			{Name: "toLowerCase", Return: "java.lang.String"},
			{Name: "trim", Return: "java.lang.String"},
			{Name: "toCharArray", Return: "char[]"},
			{Name: "valueOf", Return: "java.lang.String", Params: []string{"java.lang.Object"}, Static: true},
			{Name: "valueOf", Return: "java.lang.String", Params: []string{"int"}, Static: true},
			{Name: "valueOf", Return: "java.lang.String", Params: []string{"double"}, Static: true},
			{Name: "valueOf", Return: "java.lang.String", Params: []string{"boolean"}, Static: true},
			{Name: "valueOf", Return: "java.lang.String", Params: []string{"char"}, Static: true},
		},
	},
	"java.lang.System": {Final: true, Super: "java.lang.Object", Fields: []builtinField{
		{Name: "out", Type: "java.io.PrintStream", Static: true},
		{Name: "err", Type: "java.io.PrintStream", Static: true},
		{Name: "in", Type: "java.io.InputStream", Static: true},
	}},
	"java.lang.Integer":       {Final: true, Super: "java.lang.Number", Ifaces: []string{"java.lang.Comparable"}, Ctors: [][]string{{"int"}}},
	"java.lang.Long":          {Final: true, Super: "java.lang.Number", Ifaces: []string{"java.lang.Comparable"}, Ctors: [][]string{{"long"}}},
	"java.lang.Double":        {Final: true, Super: "java.lang.Number", Ifaces: []string{"java.lang.Comparable"}, Ctors: [][]string{{"double"}}},
	"java.lang.Float":         {Final: true, Super: "java.lang.Number", Ifaces: []string{"java.lang.Comparable"}, Ctors: [][]string{{"float"}}},
	"java.lang.Short":         {Final: true, Super: "java.lang.Number", Ifaces: []string{"java.lang.Comparable"}, Ctors: [][]string{{"short"}}},
	"java.lang.Byte":          {Final: true, Super: "java.lang.Number", Ifaces: []string{"java.lang.Comparable"}, Ctors: [][]string{{"byte"}}},
	"java.lang.Boolean":       {Final: true, Super: "java.lang.Object", Ifaces: []string{"java.lang.Comparable"}, Ctors: [][]string{{"boolean"}}},
	"java.lang.Character":     {Final: true, Super: "java.lang.Object", Ifaces: []string{"java.lang.Comparable"}, Ctors: [][]string{{"char"}}},
	"java.lang.Void":          {Final: true, Super: "java.lang.Object"},
	"java.lang.Number":        {Abstract: true, Super: "java.lang.Object", Ctors: [][]string{{}}},
	"java.lang.Math":          {Final: true, Super: "java.lang.Object"},
	"java.lang.Class":         {Final: true, Super: "java.lang.Object"},
	"java.lang.Thread":        {Super: "java.lang.Object", Ifaces: []string{"java.lang.Runnable"}, Ctors: [][]string{{}, {"java.lang.Runnable"}}},
	"java.lang.StringBuilder": {Final: true, Super: "java.lang.Object", Ifaces: []string{"java.lang.CharSequence"}, Ctors: [][]string{{}, {"java.lang.String"}, {"int"}}},
	"java.lang.StringBuffer":  {Final: true, Super: "java.lang.Object", Ifaces: []string{"java.lang.CharSequence"}, Ctors: [][]string{{}, {"java.lang.String"}, {"int"}}},
	"java.lang.Enum":          {Abstract: true, Super: "java.lang.Object", Ifaces: []string{"java.lang.Comparable"}},
	"java.lang.Record":        {Abstract: true, Super: "java.lang.Object"},
	"java.lang.Iterable":      {Interface: true},
	"java.lang.AutoCloseable": {Interface: true, Methods: []builtinMethod{{Name: "close", Throws: []string{"java.lang.Exception"}}}, Complete: true},
	"java.lang.Runnable":      {Interface: true, Methods: []builtinMethod{{Name: "run"}}, Complete: true},
	"java.lang.Comparable":    {Interface: true, Methods: []builtinMethod{{Name: "compareTo", Return: "int", Params: []string{"java.lang.Object"}}}, Complete: true},
	"java.lang.CharSequence":  {Interface: true, Methods: []builtinMethod{{Name: "length", Return: "int"}, {Name: "charAt", Return: "char", Params: []string{"int"}}}, Complete: true},
	"java.lang.Cloneable":     {Interface: true, Complete: true},

	// === java.lang 异常层级 ===
	"java.lang.Throwable":                       {Super: "java.lang.Object", Ctors: messageCtors, Methods: throwableMethods, Complete: true},
	"java.lang.Exception":                       {Super: "java.lang.Throwable", Ctors: messageCtors, Complete: true},
	"java.lang.RuntimeException":                {Super: "java.lang.Exception", Ctors: messageCtors, Complete: true},
	"java.lang.Error":                           {Super: "java.lang.Throwable", Ctors: messageCtors, Complete: true},
	"java.lang.NullPointerException":            {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},
	"java.lang.IllegalArgumentException":        {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},
	"java.lang.IllegalStateException":           {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},
	"java.lang.IndexOutOfBoundsException":       {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},
	"java.lang.ArrayIndexOutOfBoundsException":  {Super: "java.lang.IndexOutOfBoundsException", Ctors: messageCtors, Complete: true},
	"java.lang.ArithmeticException":             {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},
	"java.lang.ClassCastException":              {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},
	"java.lang.UnsupportedOperationException":   {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},
	"java.lang.NumberFormatException":           {Super: "java.lang.IllegalArgumentException", Ctors: messageCtors, Complete: true},
	"java.lang.CloneNotSupportedException":      {Super: "java.lang.Exception", Ctors: messageCtors, Complete: true},
	"java.lang.InterruptedException":            {Super: "java.lang.Exception", Ctors: messageCtors, Complete: true},
	"java.lang.ClassNotFoundException":          {Super: "java.lang.Exception", Ctors: messageCtors, Complete: true},
	"java.lang.AssertionError":                  {Super: "java.lang.Error", Ctors: [][]string{{}, {"java.lang.Object"}}, Complete: true},
	"java.lang.StackOverflowError":              {Super: "java.lang.Error", Ctors: messageCtors, Complete: true},
	"java.lang.OutOfMemoryError":                {Super: "java.lang.Error", Ctors: messageCtors, Complete: true},
	"java.lang.NegativeArraySizeException":      {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},
	"java.util.NoSuchElementException":          {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},
	"java.util.ConcurrentModificationException": {Super: "java.lang.RuntimeException", Ctors: messageCtors, Complete: true},

	// === java.io ===
	"java.io.IOException":           {Super: "java.lang.Exception", Ctors: messageCtors, Complete: true},
	"java.io.FileNotFoundException": {Super: "java.io.IOException", Ctors: messageCtors, Complete: true},
	"java.io.PrintStream":           {Super: "java.lang.Object"},
	"java.io.InputStream":           {Abstract: true, Super: "java.lang.Object"},
	"java.io.OutputStream":          {Abstract: true, Super: "java.lang.Object"},
	"java.io.File":                  {Super: "java.lang.Object", Ctors: [][]string{{"java.lang.String"}}},
	"java.io.Serializable":          {Interface: true, Complete: true},

	// === java.util 集合框架 ===
	"java.util.Collection":  {Interface: true, Ifaces: []string{"java.lang.Iterable"}},
	"java.util.List":        {Interface: true, Ifaces: []string{"java.util.Collection"}},
	"java.util.Set":         {Interface: true, Ifaces: []string{"java.util.Collection"}},
	"java.util.Map":         {Interface: true},
	"java.util.Iterator":    {Interface: true},
	"java.util.ArrayList":   {Super: "java.lang.Object", Ifaces: []string{"java.util.List"}, Ctors: [][]string{{}, {"int"}, {"java.util.Collection"}}},
	"java.util.LinkedList":  {Super: "java.lang.Object", Ifaces: []string{"java.util.List"}, Ctors: [][]string{{}, {"java.util.Collection"}}},
	"java.util.HashSet":     {Super: "java.lang.Object", Ifaces: []string{"java.util.Set"}, Ctors: [][]string{{}, {"int"}, {"java.util.Collection"}}},
	"java.util.TreeSet":     {Super: "java.lang.Object", Ifaces: []string{"java.util.Set"}, Ctors: [][]string{{}, {"java.util.Collection"}}},
	"java.util.HashMap":     {Super: "java.lang.Object", Ifaces: []string{"java.util.Map"}, Ctors: [][]string{{}, {"int"}, {"java.util.Map"}}},
	"java.util.TreeMap":     {Super: "java.lang.Object", Ifaces: []string{"java.util.Map"}, Ctors: [][]string{{}, {"java.util.Map"}}},
	"java.util.Arrays":      {Final: true, Super: "java.lang.Object"},
	"java.util.Collections": {Final: true, Super: "java.lang.Object"},
	"java.util.Objects":     {Final: true, Super: "java.lang.Object"},
	"java.util.Random":      {Super: "java.lang.Object", Ctors: [][]string{{}, {"long"}}},
	"java.util.Scanner":     {Final: true, Super: "java.lang.Object", Ctors: [][]string{{"java.io.InputStream"}, {"java.lang.String"}}},

	// === junit 3 ===
	"junit.framework.Assert":   {Super: "java.lang.Object"},
	"junit.framework.Test":     {Interface: true},
	"junit.framework.TestCase": {Abstract: true, Super: "junit.framework.Assert", Ifaces: []string{"junit.framework.Test"}, Ctors: [][]string{{}, {"java.lang.String"}}},
}

// Library 把内置类装入符号表
type Library struct{}

func NewJavaLibrary() *Library {
	return &Library{}
}

func (l *Library) Preload(s *core.Session) {
	// 第一步: 先创建所有类, 保证互相引用时都能找到
	names := slices.Sorted(maps.Keys(BuiltinTable))
	classes := make(map[string]*model.ClassSymbol, len(BuiltinTable))
	for _, qn := range names {
		def := BuiltinTable[qn]
		pkg := qn[:strings.LastIndex(qn, ".")]
		c := model.NewClassSymbol(qn, model.SimpleName(qn), pkg)
		c.External = true
		c.MembersKnown = def.Complete
		c.IsInterface = def.Interface
		c.Modifiers = model.Public
		if def.Final {
			c.Modifiers |= model.Final
		}
		if def.Abstract || def.Interface {
			c.Modifiers |= model.Abstract
		}
		c.Level = model.FullJava
		classes[qn] = c
		s.Table.Define(c)
	}

	// 第二步: 填充继承关系与成员
	typeOf := func(name string) model.Symbol {
		if name == "" {
			return nil
		}
		dims := 0
		for strings.HasSuffix(name, "[]") {
			name = strings.TrimSuffix(name, "[]")
			dims++
		}
		var t model.Symbol
		if p, ok := model.PrimitiveByName(name); ok {
			t = p
		} else if c, ok := classes[name]; ok {
			t = c
		} else {
			core.Fatalf(nil, "builtin type %s is not defined", name)
		}
		for i := 0; i < dims; i++ {
			t = s.Table.ArrayOf(t)
		}
		return t
	}

	for _, qn := range names {
		def, c := BuiltinTable[qn], classes[qn]
		if def.Super != "" {
			c.Super = typeOf(def.Super)
		}
		for _, i := range def.Ifaces {
			c.Interfaces = append(c.Interfaces, typeOf(i))
		}
		for _, params := range def.Ctors {
			c.AddMethod(builtinMethodSymbol(model.CtorName, "", params, nil, false, true, typeOf))
		}
		for _, m := range def.Methods {
			mods := model.Public
			if def.Interface {
				mods |= model.Abstract
			}
			ms := builtinMethodSymbol(m.Name, m.Return, m.Params, m.Throws, m.Static, false, typeOf)
			ms.Modifiers |= mods
			c.AddMethod(ms)
		}
		for _, f := range def.Fields {
			mods := model.Public | model.Final
			if f.Static {
				mods |= model.Static
			}
			c.AddField(&model.VariableSymbol{Name: f.Name, Modifiers: mods, Type: typeOf(f.Type), HasValue: true, HasInitializer: true})
		}
	}
}

func builtinMethodSymbol(name, ret string, params, throws []string, static, ctor bool, typeOf func(string) model.Symbol) *model.MethodSymbol {
	m := &model.MethodSymbol{Name: name, Modifiers: model.Public, Return: typeOf(ret), Constructor: ctor}
	if static {
		m.Modifiers |= model.Static
	}
	for i, p := range params {
		m.Params = append(m.Params, &model.VariableSymbol{Name: "arg" + string(rune('0'+i)), Type: typeOf(p), Param: true, HasValue: true})
	}
	for _, t := range throws {
		m.Throws = append(m.Throws, typeOf(t))
	}
	return m
}
