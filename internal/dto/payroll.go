package dto

import "github.com/shopspring/decimal"

// ── 薪资模块 DTO ──

// TeacherPayRequest 课时费计算查询参数
type TeacherPayRequest struct {
	StartDate string `form:"start_date" binding:"required"` // "2025-09-01"
	EndDate   string `form:"end_date"   binding:"required"`
}

// ExportPayrollRequest 课时费导出查询参数
type ExportPayrollRequest struct {
	TeacherID string `form:"teacher_id" binding:"required,uuid"`
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date"   binding:"required"`
}

// PayBreakdownLine 单个开课的课时费明细（派生数据，不落库）
type PayBreakdownLine struct {
	OfferingID           string          `json:"offering_id"`
	OfferingName         string          `json:"offering_name"`
	BillableSessionCount int             `json:"sessions"`
	TeacherAbsentCount   int             `json:"cancelled"`
	Rate                 decimal.Decimal `json:"rate"`
	Total                decimal.Decimal `json:"total"`
}

// TeacherPayResponse 课时费计算结果
type TeacherPayResponse struct {
	TeacherID string             `json:"teacher_id"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	TotalPay  decimal.Decimal    `json:"total_pay"`
	Breakdown []PayBreakdownLine `json:"breakdown"`
}
