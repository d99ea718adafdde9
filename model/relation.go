package model

// --- 类型层级关系 (Hierarchy Relation Types) ---

// RelationType 是表示类型之间关系的字符串常量
type RelationType string

const (
	// Extend 继承: 类与类、接口与接口之间的继承
	// e.g., [Java: Source(Class/Interface) -> Target(Class/Interface)]
	Extend RelationType = "EXTEND"

	// Implement 实现: 类实现接口 (匿名类实现接口也在这里)
	// e.g., [Java: Source(Class) -> Target(Interface)]
	Implement RelationType = "IMPLEMENT"

	// Contain 包含: 外部类与其嵌套类、局部类、匿名类
	// e.g., [Java: Source(Outer) -> Target(Outer$Inner)]
	Contain RelationType = "CONTAIN"
)

// Relation 描述 Source 与 Target 两个类符号之间的一条层级关系
type Relation struct {
	// Type: 关系的类型 (EXTEND, IMPLEMENT, CONTAIN)
	Type RelationType `json:"Type"`

	// Source: 关系的发起方 (子类、外部类)
	Source *ClassSymbol `json:"-"`

	// Target: 关系的指向方 (父类、接口、嵌套类)
	Target *ClassSymbol `json:"-"`

	// SourceQN / TargetQN: 导出用的限定名
	SourceQN string `json:"Source"`
	TargetQN string `json:"Target"`

	// External: Target 来自内置库而不是源码
	External bool `json:"External,omitempty"`

	// Location: 关系在源码中的位置 (extends/implements 子句或嵌套声明)
	Location *Location `json:"Location,omitempty"`
}

// NewRelation 构造一条关系并填好导出字段
func NewRelation(t RelationType, source, target *ClassSymbol, loc *Location) *Relation {
	return &Relation{
		Type:     t,
		Source:   source,
		Target:   target,
		SourceQN: source.QualifiedName,
		TargetQN: target.QualifiedName,
		External: target.External,
		Location: loc,
	}
}
