package model

import "strings"

// Modifiers 修饰符位集合
type Modifiers uint16

const (
	Public Modifiers = 1 << iota
	Protected
	Private
	Static
	Final
	Abstract
	Native
	Synchronized
	Transient
	Volatile
	Strictfp
	Default
)

// Visibility 可见性修饰符的掩码
const Visibility = Public | Protected | Private

var modifierOrder = []struct {
	mod  Modifiers
	text string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Private, "private"},
	{Abstract, "abstract"},
	{Static, "static"},
	{Final, "final"},
	{Native, "native"},
	{Synchronized, "synchronized"},
	{Transient, "transient"},
	{Volatile, "volatile"},
	{Strictfp, "strictfp"},
	{Default, "default"},
}

// ParseModifier 将源码中的修饰符关键字转换为位; 不认识的关键字返回 0
func ParseModifier(text string) Modifiers {
	for _, m := range modifierOrder {
		if m.text == text {
			return m.mod
		}
	}
	return 0
}

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

// Names 按 Java 惯例顺序返回关键字列表
func (m Modifiers) Names() []string {
	var names []string
	for _, e := range modifierOrder {
		if m&e.mod != 0 {
			names = append(names, e.text)
		}
	}
	return names
}

func (m Modifiers) String() string {
	return strings.Join(m.Names(), " ")
}
