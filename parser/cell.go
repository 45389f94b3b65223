package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shiftsat/shiftsat/pkg/model"
)

// ParseCell 将一个表格单元格解析为绑定到 day 当天的 []model.Timespan。
// 语法与 original_source/modules/parse_data.py 的 parse_cell 对齐：
//   - "all day"（大小写不敏感）表示全天，即 00:00 到 23:59:59.999999999；
//   - 其余内容按逗号拆分为多个区间，每个区间形如 "<start>-<end>"；
//   - 结尾写作 "midnight"/"12am"/"12:00am" 时钉死为 23:59（表示"当天结束"
//     而非次日零点，避免产生跨日的 Timespan）；
//   - 不含 "-" 的片段被跳过，视为空白/无效单元格的噪声。
func ParseCell(day time.Time, cell string) ([]model.Timespan, error) {
	trimmed := strings.TrimSpace(cell)
	if strings.EqualFold(trimmed, "all day") {
		start := dateOnly(day)
		end := start.Add(24*time.Hour - time.Nanosecond)
		span, err := model.NewTimespan(start, end)
		if err != nil {
			return nil, err
		}
		return []model.Timespan{span}, nil
	}

	var spans []model.Timespan
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, "-") {
			continue
		}

		startStr, endStr, ok := strings.Cut(part, "-")
		if !ok {
			continue
		}
		startStr = strings.TrimSpace(startStr)
		endStr = strings.TrimSpace(endStr)

		if isMidnightAlias(endStr) {
			endStr = "11:59pm"
		}

		startOffset, err := ParseTimeOfDay(startStr)
		if err != nil {
			return nil, fmt.Errorf("parser: cell %q: %w", cell, err)
		}
		endOffset, err := ParseTimeOfDay(endStr)
		if err != nil {
			return nil, fmt.Errorf("parser: cell %q: %w", cell, err)
		}

		base := dateOnly(day)
		span, err := model.NewTimespan(base.Add(startOffset), base.Add(endOffset))
		if err != nil {
			return nil, fmt.Errorf("parser: cell %q: %w", cell, err)
		}
		spans = append(spans, span)
	}

	return spans, nil
}

func isMidnightAlias(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "midnight", "12am", "12:00am":
		return true
	default:
		return false
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
