package parser

import (
	"fmt"
	"io"
	"time"

	"github.com/shiftsat/shiftsat/pkg/logger"
	"github.com/shiftsat/shiftsat/pkg/model"
)

// toFillDateLayout 是 To-fill 表 Date 列的写法，和 Availability 表的日期
// 列表头不同——这里是一个独立的单一列，而不是若干个以日期命名的列。
const toFillDateLayout = "January 2, 2006"

// ParseToFill 读取 To-fill 表，返回覆盖需求列表。每一行按 cell 解析出的
// 窗口各自生成一个 CoverageRequirement，PositionID 按解析顺序递增，
// 即便若干行共享同一个 Position 名字，两者仍是彼此独立的坑位
// （spec.md §3）。对应 parse_data.py 的 parse_to_fill。
func ParseToFill(r io.Reader) ([]model.CoverageRequirement, error) {
	rows, _, err := readRows(r)
	if err != nil {
		return nil, err
	}

	var requirements []model.CoverageRequirement
	nextID := 0

	for _, rr := range rows {
		position := rr.get("Position")
		dateRaw := rr.get("Date")
		hoursRaw := rr.get("Hours")

		day, err := time.Parse(toFillDateLayout, dateRaw)
		if err != nil {
			logger.Warn().
				Str("position", position).
				Str("date", dateRaw).
				Err(err).
				Msg("dropping to-fill row with unparseable date")
			continue
		}

		spans, err := ParseCell(day, hoursRaw)
		if err != nil {
			logger.Warn().
				Str("position", position).
				Str("hours", hoursRaw).
				Err(err).
				Msg("dropping to-fill row with unparseable hours")
			continue
		}

		for _, span := range spans {
			requirements = append(requirements, model.CoverageRequirement{
				PositionID:   nextID,
				PositionName: position,
				Window:       span,
			})
			nextID++
		}
	}

	if len(requirements) == 0 {
		return nil, fmt.Errorf("parser: no coverage requirements parsed")
	}

	return requirements, nil
}
