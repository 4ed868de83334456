package service

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

func mondayRule() RecurrenceRule {
	return RecurrenceRule{
		DayOfWeek: "MONDAY",
		StartDate: mustDate("2025-09-01"),
		EndDate:   mustDate("2025-09-22"),
		StartTime: "15:30",
		EndTime:   "16:30",
	}
}

// ── ParseDayOfWeek 测试 ──

func TestParseDayOfWeek(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"MONDAY", time.Monday, false},
		{"monday", time.Monday, false},
		{"  Sunday ", time.Sunday, false},
		{"SATURDAY", time.Saturday, false},
		{"MON", 0, true},
		{"", 0, true},
		{"Funday", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDayOfWeek(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDayOfWeek) || !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseDayOfWeek(%q) 期望 ErrInvalidDayOfWeek，实际: %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDayOfWeek(%q) 不应失败: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDayOfWeek(%q) 期望 %v，实际 %v", tt.in, tt.want, got)
		}
	}
}

// ── GenerateSessionDrafts 测试 ──

func TestGenerateSessionDrafts_FourMondays(t *testing.T) {
	seq, err := GenerateSessionDrafts("off-1", mondayRule())
	if err != nil {
		t.Fatalf("生成应成功: %v", err)
	}
	drafts := slices.Collect(seq)

	want := []string{"2025-09-01", "2025-09-08", "2025-09-15", "2025-09-22"}
	if len(drafts) != len(want) {
		t.Fatalf("期望 %d 个课次，实际 %d", len(want), len(drafts))
	}
	for i, d := range drafts {
		if got := d.Date.Format(model.DateLayout); got != want[i] {
			t.Errorf("第 %d 个课次期望 %s，实际 %s", i, want[i], got)
		}
		if d.OfferingID != "off-1" {
			t.Errorf("期望 OfferingID=off-1，实际 %s", d.OfferingID)
		}
		if d.Status != model.SessionScheduled {
			t.Errorf("期望状态 SCHEDULED，实际 %s", d.Status)
		}
		if d.StartTime != "15:30" || d.EndTime != "16:30" {
			t.Errorf("期望时间 15:30-16:30，实际 %s-%s", d.StartTime, d.EndTime)
		}
	}
}

func TestGenerateSessionDrafts_WeekdayInvariant(t *testing.T) {
	for name, wd := range weekdayByName {
		rule := RecurrenceRule{
			DayOfWeek: name,
			StartDate: mustDate("2024-01-03"),
			EndDate:   mustDate("2024-12-30"),
			StartTime: "09:00",
			EndTime:   "10:00",
		}
		seq, err := GenerateSessionDrafts("off-1", rule)
		if err != nil {
			t.Fatalf("%s: 生成应成功: %v", name, err)
		}

		var prev time.Time
		count := 0
		for d := range seq {
			if d.Date.Weekday() != wd {
				t.Fatalf("%s: %s 落在 %v", name, d.Date.Format(model.DateLayout), d.Date.Weekday())
			}
			if d.Date.Before(rule.StartDate) || d.Date.After(rule.EndDate) {
				t.Fatalf("%s: %s 超出规则区间", name, d.Date.Format(model.DateLayout))
			}
			if !prev.IsZero() && d.Date.Sub(prev) != 7*24*time.Hour {
				t.Fatalf("%s: 相邻课次间隔不是 7 天", name)
			}
			prev = d.Date
			count++
		}
		if count < 51 || count > 52 {
			t.Errorf("%s: 期望 51~52 个课次，实际 %d", name, count)
		}
	}
}

func TestGenerateSessionDrafts_StartAfterEnd(t *testing.T) {
	rule := mondayRule()
	rule.StartDate, rule.EndDate = rule.EndDate, rule.StartDate

	seq, err := GenerateSessionDrafts("off-1", rule)
	if err != nil {
		t.Fatalf("开始晚于结束不应报错: %v", err)
	}
	if drafts := slices.Collect(seq); len(drafts) != 0 {
		t.Errorf("期望空序列，实际 %d 个", len(drafts))
	}
}

func TestGenerateSessionDrafts_NoMatchingDay(t *testing.T) {
	rule := mondayRule()
	rule.StartDate = mustDate("2025-09-02") // 周二
	rule.EndDate = mustDate("2025-09-07")   // 周日

	seq, err := GenerateSessionDrafts("off-1", rule)
	if err != nil {
		t.Fatalf("生成应成功: %v", err)
	}
	if drafts := slices.Collect(seq); len(drafts) != 0 {
		t.Errorf("区间内没有周一，期望空序列，实际 %d 个", len(drafts))
	}
}

func TestGenerateSessionDrafts_InvalidDay(t *testing.T) {
	rule := mondayRule()
	rule.DayOfWeek = "Mondays"

	seq, err := GenerateSessionDrafts("off-1", rule)
	if !errors.Is(err, ErrInvalidDayOfWeek) {
		t.Errorf("期望 ErrInvalidDayOfWeek，实际: %v", err)
	}
	if seq != nil {
		t.Error("校验失败时不应返回序列")
	}
}

func TestGenerateSessionDrafts_InvalidTimes(t *testing.T) {
	cases := [][2]string{
		{"16:30", "15:30"},
		{"15:30", "15:30"},
		{"3pm", "16:00"},
		{"15:30", "25:00"},
	}
	for _, c := range cases {
		rule := mondayRule()
		rule.StartTime, rule.EndTime = c[0], c[1]
		if _, err := GenerateSessionDrafts("off-1", rule); !errors.Is(err, ErrInvalidTimeRange) {
			t.Errorf("%s-%s: 期望 ErrInvalidTimeRange，实际: %v", c[0], c[1], err)
		}
	}
}

func TestGenerateSessionDrafts_AcceptsSeconds(t *testing.T) {
	rule := mondayRule()
	rule.StartTime, rule.EndTime = "15:30:00", "16:30:00"

	seq, err := GenerateSessionDrafts("off-1", rule)
	if err != nil {
		t.Fatalf("HH:MM:SS 应被接受: %v", err)
	}
	for d := range seq {
		if d.StartTime != "15:30" || d.EndTime != "16:30" {
			t.Errorf("期望统一为 HH:MM，实际 %s-%s", d.StartTime, d.EndTime)
		}
		break
	}
}

func TestGenerateSessionDrafts_EarlyStopAndRestart(t *testing.T) {
	seq, err := GenerateSessionDrafts("off-1", mondayRule())
	if err != nil {
		t.Fatalf("生成应成功: %v", err)
	}

	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("期望提前停止于 2，实际 %d", n)
	}

	// 再次遍历从头开始
	if got := len(slices.Collect(seq)); got != 4 {
		t.Errorf("再次遍历期望 4 个课次，实际 %d", got)
	}
}
