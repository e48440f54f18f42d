// 指示: miu200521358
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// writeReport は指定形式で結果を出力する。text は textWriter に任せる。
func writeReport(w io.Writer, format string, value any, textWriter func(io.Writer) error) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	case "text":
		return textWriter(w)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// formatFloats は小数3桁で角括弧付きの一覧にする。
func formatFloats(values []float64) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, strconv.FormatFloat(value, 'f', 3, 64))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
