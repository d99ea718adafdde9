package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CodMac/level-lens/core"
	"github.com/CodMac/level-lens/model"
)

type OutType string

const (
	JsonL   OutType = "jsonl"
	Mermaid OutType = "mermaid"
)

// Mermaid 页面的规模上限, 超出时降级为 jsonl
const (
	MaxMermaidNodes = 200
	MaxMermaidEdges = 400
)

const (
	SymbolsFile     = "symbols.jsonl"
	DiagnosticsFile = "diagnostics.jsonl"
	RelationsFile   = "relations.jsonl"
	HierarchyFile   = "hierarchy.html"
)

type Exporter struct {
	outputDir    string
	outputType   OutType
	skipExternal bool
}

// Stats 导出结果统计
type Stats struct {
	Format      OutType
	Degraded    bool // 请求 mermaid 但因规模过大改为 jsonl
	Symbols     int
	Diagnostics int
	Relations   int
}

func NewExporter(outputDir string, outputType OutType, skipExternal bool) *Exporter {
	return &Exporter{outputDir: outputDir, outputType: outputType, skipExternal: skipExternal}
}

// Export 按配置的格式导出; 诊断总是写入 diagnostics.jsonl
func (p *Exporter) Export(s *core.Session, rels []*model.Relation) (Stats, error) {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return Stats{}, fmt.Errorf("create output dir: %w", err)
	}

	rels = p.filter(rels)
	switch p.outputType {
	case JsonL:
		return p.ExportJsonL(s, rels)
	case Mermaid:
		if len(s.Table.SourceClasses()) > MaxMermaidNodes || len(rels) > MaxMermaidEdges {
			stats, err := p.ExportJsonL(s, rels)
			stats.Degraded = true
			return stats, err
		}
		return p.ExportMermaidHTML(s, rels)
	}
	return Stats{}, fmt.Errorf("unknown output format: %q", p.outputType)
}

func (p *Exporter) ExportJsonL(s *core.Session, rels []*model.Relation) (Stats, error) {
	stats := Stats{Format: JsonL}

	var symbols []*SymbolRecord
	for _, c := range s.Table.SourceClasses() {
		symbols = append(symbols, newSymbolRecord(s.ID, c))
	}
	var err error
	if stats.Symbols, err = writeJSONL(filepath.Join(p.outputDir, SymbolsFile), symbols); err != nil {
		return stats, err
	}
	if stats.Relations, err = writeJSONL(filepath.Join(p.outputDir, RelationsFile), rels); err != nil {
		return stats, err
	}
	stats.Diagnostics, err = p.exportDiagnostics(s)
	return stats, err
}

func (p *Exporter) exportDiagnostics(s *core.Session) (int, error) {
	var diags []*DiagnosticRecord
	for _, d := range s.Diagnostics.Items() {
		diags = append(diags, &DiagnosticRecord{Session: s.ID, Message: d.Message, Location: d.Location})
	}
	return writeJSONL(filepath.Join(p.outputDir, DiagnosticsFile), diags)
}

// filter skipExternal 时丢弃指向内置库类的关系
func (p *Exporter) filter(rels []*model.Relation) []*model.Relation {
	if !p.skipExternal {
		return rels
	}
	result := make([]*model.Relation, 0, len(rels))
	for _, rel := range rels {
		if !rel.External {
			result = append(result, rel)
		}
	}
	return result
}
