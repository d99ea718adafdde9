package core

// Language 分析的源语言。目前只有 Java (及其教学级别子集)。
type Language string

const LangJava Language = "java"
