package java

import "github.com/CodMac/level-lens/core"

// init 注册 Java 的各遍实现; SymbolResolver 必须最先注册, 其余组件在构造时取用它
func init() {
	core.RegisterSymbolResolver(core.LangJava, NewJavaSymbolResolver())
	core.RegisterLibrary(core.LangJava, NewJavaLibrary())
	core.RegisterCollector(core.LangJava, NewJavaCollector())
	core.RegisterLinker(core.LangJava, NewJavaLinker())
	core.RegisterBinder(core.LangJava, NewJavaBinder())
	core.RegisterChecker(core.LangJava, NewJavaChecker())
	core.RegisterExtractor(core.LangJava, NewJavaExtractor())
}
