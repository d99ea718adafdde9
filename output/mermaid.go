package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

// ExportMermaidHTML 类层级图: 每个文件一个 subgraph, 边为 EXTEND / IMPLEMENT (CONTAIN 由 subgraph 体现)
func (p *Exporter) ExportMermaidHTML(s *core.Session, rels []*model.Relation) (Stats, error) {
	stats := Stats{Format: Mermaid}
	htmlPath := filepath.Join(p.outputDir, HierarchyFile)

	f, err := os.Create(htmlPath)
	if err != nil {
		return stats, fmt.Errorf("create %s: %w", htmlPath, err)
	}
	defer f.Close()

	fmt.Fprintln(f, `<!DOCTYPE html><html><head><meta charset="UTF-8"><script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script></head>
<body><div class="mermaid">graph BT`)

	for _, fc := range s.Files {
		fmt.Fprintf(f, "  subgraph %s [📄 %s]\n", safeID(fc.FilePath), fc.FilePath)
		for _, c := range fc.Classes {
			fmt.Fprintf(f, "    %s%s\n", safeID(c.QualifiedName), getNodeShape(c))
			stats.Symbols++
		}
		fmt.Fprintln(f, "  end")
	}

	declared := make(map[string]bool)
	for _, rel := range rels {
		if rel.Type == model.Contain {
			continue
		}
		srcID, tgtID := safeID(rel.SourceQN), safeID(rel.TargetQN)
		if srcID == tgtID {
			continue
		}
		if rel.External && !declared[tgtID] {
			fmt.Fprintf(f, "  %s%s\n", tgtID, getNodeShape(rel.Target))
			declared[tgtID] = true
		}
		arrow := "-->"
		if rel.Type == model.Implement {
			arrow = "-.->"
		}
		fmt.Fprintf(f, "  %s %s %s\n", srcID, arrow, tgtID)
		stats.Relations++
	}

	fmt.Fprintln(f, `</div><script>mermaid.initialize({startOnLoad:true, maxTextSize:1000000});</script></body></html>`)

	stats.Diagnostics, err = p.exportDiagnostics(s)
	return stats, err
}

// 辅助函数

func safeID(id string) string {
	r := strings.NewReplacer(".", "_", "$", "__", "/", "_", "\\", "_", "-", "_", "(", "_", ")", "_", "[", "_", "]", "_", " ", "_", "@", "at")
	return "n_" + r.Replace(id)
}

func getNodeShape(c *model.ClassSymbol) string {
	name := c.DisplayName()
	switch {
	case c.IsInterface:
		return fmt.Sprintf("([\"%s <small>(%s)</small>\"])", name, c.Kind())
	case c.External:
		return fmt.Sprintf("[[\"%s <small>(%s)</small>\"]]", name, c.Kind())
	default:
		return fmt.Sprintf("[\"%s <small>(%s)</small>\"]", name, c.Kind())
	}
}
