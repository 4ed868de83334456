package service

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

// ── 课次生成器 ──

var (
	ErrInvalidDayOfWeek = fmt.Errorf("%w: 无法识别的星期", ErrInvalidInput)
	ErrInvalidTimeRange = fmt.Errorf("%w: 上课时间无效", ErrInvalidInput)
)

var weekdayByName = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// RecurrenceRule 每周固定星期上课的规则，日期区间两端均包含
type RecurrenceRule struct {
	DayOfWeek string
	StartDate time.Time
	EndDate   time.Time
	StartTime string
	EndTime   string
}

// RuleFromOffering 取开课上存储的上课规则
func RuleFromOffering(o *model.Offering) RecurrenceRule {
	return RecurrenceRule{
		DayOfWeek: o.DayOfWeek,
		StartDate: o.StartDate,
		EndDate:   o.EndDate,
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
	}
}

// ParseDayOfWeek 解析星期全称（不区分大小写，忽略首尾空白）
func ParseDayOfWeek(s string) (time.Weekday, error) {
	wd, ok := weekdayByName[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDayOfWeek, s)
	}
	return wd, nil
}

// GenerateSessionDrafts 按规则展开课次草稿。
// 校验在返回序列之前完成；序列按日期升序、惰性产出，每次遍历都从头开始。
// StartDate 晚于 EndDate 时返回空序列。
func GenerateSessionDrafts(offeringID string, rule RecurrenceRule) (iter.Seq[model.ClassSession], error) {
	weekday, err := ParseDayOfWeek(rule.DayOfWeek)
	if err != nil {
		return nil, err
	}
	startTime, endTime, err := normalizeTimeRange(rule.StartTime, rule.EndTime)
	if err != nil {
		return nil, err
	}

	start, end := model.Date(rule.StartDate), model.Date(rule.EndDate)

	return func(yield func(model.ClassSession) bool) {
		if start.After(end) {
			return
		}
		d := start
		for d.Weekday() != weekday {
			d = d.AddDate(0, 0, 1)
		}
		for ; !d.After(end); d = d.AddDate(0, 0, 7) {
			draft := model.ClassSession{
				OfferingID:   offeringID,
				Date:         d,
				OriginalDate: d,
				StartTime:    startTime,
				EndTime:      endTime,
				Status:       model.SessionScheduled,
			}
			if !yield(draft) {
				return
			}
		}
	}, nil
}

// normalizeTimeRange 接受 HH:MM 或 HH:MM:SS（time 列读回的格式），统一为 HH:MM
func normalizeTimeRange(start, end string) (string, string, error) {
	st, err := parseClock(start)
	if err != nil {
		return "", "", err
	}
	et, err := parseClock(end)
	if err != nil {
		return "", "", err
	}
	if !et.After(st) {
		return "", "", fmt.Errorf("%w: 结束时间 %s 不晚于开始时间 %s", ErrInvalidTimeRange, end, start)
	}
	return st.Format(model.TimeLayout), et.Format(model.TimeLayout), nil
}

func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{model.TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeRange, s)
}
