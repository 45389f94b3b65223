package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// row 是 CSV 一行数据按表头索引后的视图，取值均为裸字符串；
// 空单元格与缺失列都返回 ""，由调用方决定是否视为"未填写"。
type row struct {
	header map[string]int
	fields []string
}

func (r row) get(column string) string {
	idx, ok := r.header[column]
	if !ok || idx >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[idx])
}

func (r row) has(column string) bool {
	_, ok := r.header[column]
	return ok
}

// readRows 读取一个带表头的 CSV 文件，返回按表头索引的行视图列表。
// 与 original_source 依赖 pandas.read_csv 的作用相同，换成 Go 标准库的
// encoding/csv —— 没有第三方 CSV 解析库出现在检索语料里（temirov-SummerCamp25
// 的 cmd/schedule 同样直接使用 encoding/csv），因此沿用标准库而非引入依赖。
func readRows(r io.Reader) ([]row, map[string]int, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1

	headerFields, err := csvReader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("parser: reading header: %w", err)
	}

	header := make(map[string]int, len(headerFields))
	for i, name := range headerFields {
		header[strings.TrimSpace(name)] = i
	}

	var rows []row
	for {
		fields, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parser: reading row: %w", err)
		}
		rows = append(rows, row{header: header, fields: fields})
	}

	return rows, header, nil
}

func parseFloatOr(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseIntOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
