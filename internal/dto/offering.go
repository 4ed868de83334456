package dto

// ── 开课模块 DTO ──

// OfferingResponse 开课信息响应
type OfferingResponse struct {
	ID             string `json:"id"`
	TeacherID      string `json:"teacher_id"`
	Name           string `json:"name"`
	CostPerSession string `json:"cost_per_session"`
	DayOfWeek      string `json:"day_of_week"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	IsActive       bool   `json:"is_active"`
}

// ListOfferingsRequest 开课列表查询参数
type ListOfferingsRequest struct {
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
}
