package parser

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shiftsat/shiftsat/pkg/logger"
	"github.com/shiftsat/shiftsat/pkg/model"
)

// dateColumnLayouts 是可用时间表里日期列表头可能采用的两种写法，
// 例如 "June 03, 2024" 或 "Jun 03, 2024"。
var dateColumnLayouts = []string{"January 2, 2006", "Jan 2, 2006"}

// parseDateColumn 尝试把列名解析为日期；不是日期列时返回 ok=false。
func parseDateColumn(column string) (time.Time, bool) {
	for _, layout := range dateColumnLayouts {
		if t, err := time.Parse(layout, column); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAvailability 读取 Availability 表，把每位员工的可用时间窗口和可胜任
// 岗位写回 employees（按 Preferences 表解析出的姓名做连接）。不在 employees
// 中的行被忽略。对应 parse_data.py 的 parse_availability。
func ParseAvailability(r io.Reader, employees map[string]*model.Employee) error {
	rows, header, err := readRows(r)
	if err != nil {
		return err
	}

	dateColumns := make(map[string]time.Time)
	for column := range header {
		if day, ok := parseDateColumn(column); ok {
			dateColumns[column] = day
		}
	}

	for _, rr := range rows {
		name := rr.get("Employee")
		employee, ok := employees[name]
		if !ok {
			continue
		}

		var availability []model.Timespan
		for column, day := range dateColumns {
			cell := rr.get(column)
			if cell == "" {
				continue
			}
			spans, err := ParseCell(day, cell)
			if err != nil {
				logger.Warn().
					Str("employee", name).
					Str("column", column).
					Str("cell", cell).
					Err(err).
					Msg("dropping unparseable availability cell")
				continue
			}
			availability = append(availability, spans...)
		}
		sort.SliceStable(availability, func(i, j int) bool {
			return availability[i].Start.Before(availability[j].Start)
		})
		employee.Availability = availability

		positions := rr.get("Positions")
		for _, p := range strings.Split(positions, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				employee.Positions[p] = struct{}{}
			}
		}
	}

	return nil
}
