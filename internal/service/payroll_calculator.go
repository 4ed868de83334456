package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/dto"
	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

// ── 课时费汇总 ──

type offeringTally struct {
	billable      map[time.Time]struct{}
	teacherAbsent map[time.Time]struct{}
}

// AggregatePay 将考勤记录汇总为每个开课的课时费明细。
//
// 同一开课同一天只要有一条可计费记录（既非 TEACHER_ABSENT 也非 SCHOOL_CLOSED），
// 该天计为一节课；同一天存在 TEACHER_ABSENT 记录则计入 cancelled。
// 两者互不排斥。无法归属到 offerings 中任何开课的记录被忽略。
// 返回的明细按开课名称、再按 ID 排序；TotalPay 为各行合计，不做舍入。
func AggregatePay(offerings []model.Offering, records []model.ElectiveAttendance) dto.TeacherPayResponse {
	tallies := make(map[string]*offeringTally, len(offerings))
	for i := range offerings {
		tallies[offerings[i].OfferingID] = &offeringTally{
			billable:      make(map[time.Time]struct{}),
			teacherAbsent: make(map[time.Time]struct{}),
		}
	}

	for i := range records {
		r := &records[i]
		if r.Enrollment == nil {
			continue
		}
		t, ok := tallies[r.Enrollment.OfferingID]
		if !ok {
			continue
		}
		day := model.Date(r.Date)
		if r.Status.Billable() {
			t.billable[day] = struct{}{}
		}
		if r.Status == model.AttendanceTeacherAbsent {
			t.teacherAbsent[day] = struct{}{}
		}
	}

	result := dto.TeacherPayResponse{
		TotalPay:  decimal.Zero,
		Breakdown: make([]dto.PayBreakdownLine, 0, len(offerings)),
	}
	for i := range offerings {
		o := &offerings[i]
		t := tallies[o.OfferingID]
		sessions := len(t.billable)
		total := o.CostPerSession.Mul(decimal.NewFromInt(int64(sessions)))
		result.Breakdown = append(result.Breakdown, dto.PayBreakdownLine{
			OfferingID:           o.OfferingID,
			OfferingName:         o.Name,
			BillableSessionCount: sessions,
			TeacherAbsentCount:   len(t.teacherAbsent),
			Rate:                 o.CostPerSession,
			Total:                total,
		})
		result.TotalPay = result.TotalPay.Add(total)
	}

	sort.SliceStable(result.Breakdown, func(i, j int) bool {
		a, b := result.Breakdown[i], result.Breakdown[j]
		if a.OfferingName != b.OfferingName {
			return a.OfferingName < b.OfferingName
		}
		return a.OfferingID < b.OfferingID
	})

	return result
}
