package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{encoder: json.NewEncoder(w)}
}

func (w *JSONLWriter) Write(v interface{}) error { return w.encoder.Encode(v) }

// writeJSONL 创建文件并逐行写入 records, 返回写入的行数
func writeJSONL[T any](path string, records []T) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	writer := NewJSONLWriter(f)
	for i, rec := range records {
		if err := writer.Write(rec); err != nil {
			return i, fmt.Errorf("write %s: %w", path, err)
		}
	}
	return len(records), nil
}
