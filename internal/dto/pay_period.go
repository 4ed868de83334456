package dto

// ── 发薪周期模块 DTO ──

// CreatePayPeriodsRequest 批量创建发薪周期请求
type CreatePayPeriodsRequest struct {
	Year      int    `json:"year"      binding:"required,min=1,max=9999"`
	Frequency string `json:"frequency" binding:"required"` // WEEKLY | BIWEEKLY | MONTHLY（不区分大小写）
}

// CreatePayPeriodsResponse 批量创建发薪周期响应
type CreatePayPeriodsResponse struct {
	Year      int    `json:"year"`
	Frequency string `json:"frequency"`
	Count     int    `json:"count"`
}

// ListPayPeriodsRequest 发薪周期列表查询参数
type ListPayPeriodsRequest struct {
	Year int `form:"year" binding:"required,min=1,max=9999"`
}

// PayPeriodResponse 发薪周期响应
type PayPeriodResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Frequency string `json:"frequency"`
	Status    string `json:"status"`
}
