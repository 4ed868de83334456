package service

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

// ── 发薪周期生成器 ──

// payPeriodNameLayout 周期名称中的日期格式，如 "Jan 1, 2025 - Jan 7, 2025"
const payPeriodNameLayout = "Jan 2, 2006"

// ParsePayFrequency 解析发薪频率（不区分大小写）
func ParsePayFrequency(s string) (model.PayFrequency, error) {
	switch f := model.PayFrequency(strings.ToUpper(strings.TrimSpace(s))); f {
	case model.PayWeekly, model.PayBiweekly, model.PayMonthly:
		return f, nil
	default:
		return "", fmt.Errorf("%w: 不支持的发薪频率 %q", ErrInvalidInput, s)
	}
}

// GeneratePayPeriodDrafts 将一个自然年切分为首尾相接的发薪周期。
// 第一个周期从 1 月 1 日开始，最后一个周期截止到 12 月 31 日（可能短于完整周期）。
func GeneratePayPeriodDrafts(organizationID string, year int, freq model.PayFrequency) (iter.Seq[model.PayPeriod], error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: 年份 %d 超出范围", ErrInvalidInput, year)
	}
	if _, err := ParsePayFrequency(string(freq)); err != nil {
		return nil, err
	}

	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	return func(yield func(model.PayPeriod) bool) {
		cursor := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for cursor.Year() == year {
			end := periodEnd(cursor, freq)
			if end.After(yearEnd) {
				end = yearEnd
			}
			p := model.PayPeriod{
				OrganizationID: organizationID,
				Name:           cursor.Format(payPeriodNameLayout) + " - " + end.Format(payPeriodNameLayout),
				StartDate:      cursor,
				EndDate:        end,
				Frequency:      freq,
				Status:         model.PayPeriodOpen,
			}
			if !yield(p) {
				return
			}
			cursor = end.AddDate(0, 0, 1)
		}
	}, nil
}

func periodEnd(start time.Time, freq model.PayFrequency) time.Time {
	switch freq {
	case model.PayWeekly:
		return start.AddDate(0, 0, 6)
	case model.PayBiweekly:
		return start.AddDate(0, 0, 13)
	default:
		// 下月第 0 天即本月最后一天
		return time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	}
}
