// Package parser 将输入表格（偏好、可用时间、待填班次）解析为 pkg/model 的值。
// 对应 original_source/modules/parse_data.py 的职责，但不依赖运行时解释任意代码。
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timeOfDayPattern 匹配 "8am"、"8:00am"、"8 am"、"20:00"、"8" 等宽松时间写法。
// original_source 依赖 dateparser.parse 做自然语言时间解析；pack 中没有等价的
// 自然语言日期/时间解析库（chromedp/goquery 属于浏览器自动化，与此无关），
// 而 spec 要求的格式是一个很小的封闭语法，因此手写一个有针对性、可测试的解析器，
// 而不是为一个封闭语法引入通用 NLP 依赖。
var timeOfDayPattern = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::(\d{2}))?\s*([ap]\.?m\.?)?\s*$`)

// ParseTimeOfDay 解析一个裸的时间字符串（不带日期）为当天从零点起算的
// time.Duration 偏移量。没有 am/pm 后缀时，按 24 小时制解释；
// 12 搭配 am 解释为 00:xx，12 搭配 pm 解释为 12:xx，与常见日历应用一致。
func ParseTimeOfDay(raw string) (time.Duration, error) {
	m := timeOfDayPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("parser: cannot parse time of day %q", raw)
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("parser: invalid hour in %q", raw)
	}
	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute < 0 || minute > 59 {
			return 0, fmt.Errorf("parser: invalid minute in %q", raw)
		}
	}

	suffix := strings.ToLower(strings.ReplaceAll(m[3], ".", ""))
	switch suffix {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "":
		// 24 小时制，原样使用
	default:
		return 0, fmt.Errorf("parser: unrecognized am/pm suffix in %q", raw)
	}

	if hour > 23 {
		return 0, fmt.Errorf("parser: hour out of range in %q", raw)
	}

	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute, nil
}
