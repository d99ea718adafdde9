package output

import (
	"github.com/CodMac/level-lens/model"
)

// SymbolRecord symbols.jsonl 中的一行: 一个源码定义的类或接口
type SymbolRecord struct {
	Session    string          `json:"Session"`
	Kind       string          `json:"Kind"`
	Name       string          `json:"Name"`
	Modifiers  []string        `json:"Modifiers,omitempty"`
	Level      string          `json:"Level"`
	File       string          `json:"File"`
	Outer      string          `json:"Outer,omitempty"`
	Super      string          `json:"Super,omitempty"`
	Interfaces []string        `json:"Interfaces,omitempty"`
	Fields     []*FieldRecord  `json:"Fields,omitempty"`
	Methods    []*MethodRecord `json:"Methods,omitempty"`
}

type FieldRecord struct {
	Name      string   `json:"Name"`
	Type      string   `json:"Type"`
	Modifiers []string `json:"Modifiers,omitempty"`
}

type MethodRecord struct {
	Name        string   `json:"Name"`
	Constructor bool     `json:"Constructor,omitempty"`
	Modifiers   []string `json:"Modifiers,omitempty"`
	Return      string   `json:"Return,omitempty"`
	Params      []string `json:"Params"`
	Throws      []string `json:"Throws,omitempty"`
	Generated   bool     `json:"Generated"`
}

// DiagnosticRecord diagnostics.jsonl 中的一行
type DiagnosticRecord struct {
	Session  string          `json:"Session"`
	Message  string          `json:"Message"`
	Location *model.Location `json:"Location,omitempty"`
}

func newSymbolRecord(session string, c *model.ClassSymbol) *SymbolRecord {
	rec := &SymbolRecord{
		Session:   session,
		Kind:      string(c.Kind()),
		Name:      c.QualifiedName,
		Modifiers: c.Modifiers.Names(),
		Level:     c.Level.String(),
		File:      c.File,
	}
	if c.Outer != nil {
		rec.Outer = c.Outer.QualifiedName
	}
	if c.Super != nil {
		rec.Super = c.Super.Name()
	}
	for _, iface := range c.Interfaces {
		if iface != nil {
			rec.Interfaces = append(rec.Interfaces, iface.Name())
		}
	}
	for _, f := range c.Fields {
		rec.Fields = append(rec.Fields, &FieldRecord{
			Name:      f.Name,
			Type:      typeName(f.Type),
			Modifiers: f.Modifiers.Names(),
		})
	}
	for _, m := range c.Methods {
		rec.Methods = append(rec.Methods, newMethodRecord(m))
	}
	return rec
}

func newMethodRecord(m *model.MethodSymbol) *MethodRecord {
	rec := &MethodRecord{
		Name:        m.Name,
		Constructor: m.Constructor,
		Modifiers:   m.Modifiers.Names(),
		Params:      make([]string, len(m.Params)),
		Generated:   m.Generated,
	}
	if !m.Constructor {
		rec.Return = typeName(m.Return)
	}
	for i, p := range m.Params {
		rec.Params[i] = typeName(p.Type)
	}
	for _, t := range m.Throws {
		if t != nil {
			rec.Throws = append(rec.Throws, t.Name())
		}
	}
	return rec
}

// typeName 导出用完整类型名; nil 表示 void
func typeName(t model.Symbol) string {
	switch x := t.(type) {
	case nil:
		return "void"
	case *model.ArraySymbol:
		return typeName(x.Elem) + "[]"
	}
	return t.Name()
}
