// Package enumerate 为每条覆盖需求生成候选班次（CandidateShift）。
package enumerate

import (
	"time"

	"github.com/shiftsat/shiftsat/pkg/model"
)

// Options 控制候选班次的生成粒度，对应
// original_source/modules/solver.py 的 create_schedule 默认参数。
type Options struct {
	// ShiftLengths 是允许的班次时长（小时）。
	ShiftLengths []int
	// AbsoluteShiftMinimumLength 是任何候选班次允许的最短时长（小时）。
	AbsoluteShiftMinimumLength float64
}

// DefaultOptions 是 spec 给出的参考粒度：整点对齐、时长 {3, 4} 小时、
// 最短 2.5 小时。
func DefaultOptions() Options {
	return Options{
		ShiftLengths:               []int{3, 4},
		AbsoluteShiftMinimumLength: 2.5,
	}
}

func (o Options) maxShiftLength() int {
	max := 0
	for _, l := range o.ShiftLengths {
		if l > max {
			max = l
		}
	}
	return max
}

// Candidates 为单条覆盖需求枚举所有候选班次，严格按 spec.md §4.5：
// 对窗口跨越的每个整点小时 h 和每个合法时长 L，取
// start = max(time(h), W.start)，end = time(h+L) 先钳制到 23:59 再钳制到
// W.end，绑定到 W 所在日期；时长小于下限或大于最大允许时长的候选被丢弃；
// 裁去日期后不被 W 裁去日期后的区间包含的候选也被丢弃。
func Candidates(req model.CoverageRequirement, opts Options) ([]model.CandidateShift, error) {
	window := req.Window
	windowTOD, err := window.StripDate()
	if err != nil {
		return nil, err
	}

	var out []model.CandidateShift
	maxLen := opts.maxShiftLength()

	for h := windowTOD.Start.Hour(); h < windowTOD.End.Hour(); h++ {
		for _, length := range opts.ShiftLengths {
			startCandidate := atHour(windowTOD.Start, h)
			if startCandidate.Before(windowTOD.Start) {
				startCandidate = windowTOD.Start
			}

			var endCandidate time.Time
			if h+length > 23 {
				endCandidate = atHourMinute(windowTOD.Start, 23, 59)
			} else {
				endCandidate = atHour(windowTOD.Start, h+length)
			}
			if endCandidate.After(windowTOD.End) {
				endCandidate = windowTOD.End
			}

			if !endCandidate.After(startCandidate) {
				continue
			}

			span, err := model.NewTimespan(startCandidate, endCandidate)
			if err != nil {
				continue
			}

			if span.Length().Hours() < opts.AbsoluteShiftMinimumLength {
				continue
			}
			if span.Length().Hours() > float64(maxLen) {
				continue
			}

			bound, err := span.WithDate(window.Start)
			if err != nil {
				continue
			}

			boundTOD, err := bound.StripDate()
			if err != nil {
				continue
			}
			if !windowTOD.Contains(boundTOD) {
				continue
			}

			out = append(out, model.CandidateShift{
				PositionID:   req.PositionID,
				PositionName: req.PositionName,
				Span:         bound,
			})
		}
	}

	return out, nil
}

// AllCandidates runs Candidates over every requirement and flattens the
// result, preserving PositionID identity across requirements.
func AllCandidates(reqs []model.CoverageRequirement, opts Options) ([]model.CandidateShift, error) {
	var all []model.CandidateShift
	for _, req := range reqs {
		shifts, err := Candidates(req, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, shifts...)
	}
	return all, nil
}

func atHour(anchor time.Time, hour int) time.Time {
	y, m, d := anchor.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, anchor.Location())
}

func atHourMinute(anchor time.Time, hour, minute int) time.Time {
	y, m, d := anchor.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, anchor.Location())
}
