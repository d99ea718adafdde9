package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// DeclaredTypesQuery 预扫描: 包名与所有顶层类型声明的名字。
// 嵌套类型不在这里收集, 它们总是随外部类一起被处理。
const DeclaredTypesQuery = `
[
  (package_declaration [(identifier) (scoped_identifier)] @package_name)

  (program (class_declaration name: (identifier) @type_name))
  (program (interface_declaration name: (identifier) @type_name))
  (program (enum_declaration name: (identifier) @type_name))
  (program (record_declaration name: (identifier) @type_name))
  (program (annotation_type_declaration name: (identifier) @type_name))
]
`

func scanDeclaredTypes(q *sitter.Query, root *sitter.Node, source []byte) []string {
	qc := sitter.NewQueryCursor()
	defer qc.Close()

	pkg := ""
	var names []string
	captureNames := q.CaptureNames()
	matches := qc.Matches(q, root, source)
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, capture := range match.Captures {
			text := capture.Node.Utf8Text(source)
			switch captureNames[capture.Index] {
			case "package_name":
				pkg = text
			case "type_name":
				names = append(names, text)
			}
		}
	}

	if pkg == "" {
		return names
	}
	qualified := make([]string, len(names))
	for i, n := range names {
		qualified[i] = pkg + "." + n
	}
	return qualified
}
