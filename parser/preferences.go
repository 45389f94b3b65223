package parser

import (
	"io"
	"strings"
	"time"

	"github.com/shiftsat/shiftsat/pkg/logger"
	"github.com/shiftsat/shiftsat/pkg/model"
	"github.com/shiftsat/shiftsat/pkg/model/tag"
)

// ParsePreferences 读取 Preferences 表，返回按员工姓名索引的 Employee 记录。
// 对应 original_source/modules/parse_data.py 的 parse_employees，但
// Mixin 变体不再接受任意表达式字符串——Tags 列只能引用固定 Tag Library
// 中已注册的名字（spec.md §4.2、§6）。
func ParsePreferences(r io.Reader) (map[string]*model.Employee, error) {
	rows, _, err := readRows(r)
	if err != nil {
		return nil, err
	}

	employees := make(map[string]*model.Employee, len(rows))
	today := time.Now()

	for _, rr := range rows {
		name := rr.get("Employee")
		if name == "" {
			continue
		}

		e := model.NewEmployee(name)
		e.Tenure = parseIntOr(rr.get("Tenure"), 0)
		e.PreferredHours = parseFloatOr(rr.get("Preferred Hours"), 0)

		if rr.has("Employee Max Hours") {
			if raw := rr.get("Employee Max Hours"); raw != "" {
				max := parseFloatOr(raw, -1)
				if max >= 0 {
					e.MaximumHours = &max
				}
			}
		}

		var children []model.Preference

		// 1. Favored Hours → SpecificTOD
		if favored := rr.get("Favored Hours"); favored != "" {
			spans, err := ParseCell(today, favored)
			if err != nil {
				logger.Warn().
					Str("employee", name).
					Str("cell", favored).
					Err(err).
					Msg("dropping unparseable favored hours cell")
			}
			if err == nil && len(spans) > 0 {
				stripped := make([]model.Timespan, 0, len(spans))
				for _, s := range spans {
					strippedSpan, err := s.StripDate()
					if err == nil {
						stripped = append(stripped, strippedSpan)
					}
				}
				if len(stripped) > 0 {
					children = append(children, model.NewSpecificTOD(stripped))
				}
			}
		}

		// 2. Morning/Afternoon/Evening/Night counts → RelativeTOD
		morning := parseIntOr(rr.get("Morning Shifts"), 0)
		afternoon := parseIntOr(rr.get("Afternoon Shifts"), 0)
		evening := parseIntOr(rr.get("Evening Shifts"), 0)
		night := parseIntOr(rr.get("Night Shifts"), 0)
		if morning != 0 || afternoon != 0 || evening != 0 || night != 0 {
			children = append(children, model.NewRelativeTOD(morning, afternoon, evening, night))
		}

		// 3. Tags → Mixins wrapped in Max, scaled by 7
		if tagsRaw := rr.get("Tags"); tagsRaw != "" {
			var tagPrefs []model.Preference
			for _, tagName := range strings.Split(tagsRaw, ",") {
				tagName = strings.ToLower(strings.TrimSpace(tagName))
				if _, ok := tag.Lookup(tagName); ok {
					tagPrefs = append(tagPrefs, model.NewMixin(tagName))
				} else if tagName != "" {
					logger.Warn().
						Str("employee", name).
						Str("tag", tagName).
						Msg("dropping unrecognized tag")
				}
			}
			if len(tagPrefs) > 0 {
				children = append(children, model.NewMax(7, tagPrefs...))
			}
		}

		e.Preferences = model.NewAverage(children...)
		employees[name] = e
	}

	return employees, nil
}
