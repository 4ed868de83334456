package dto

// ── 课次模块 DTO ──

// GenerateSessionsResponse 生成课次响应
type GenerateSessionsResponse struct {
	OfferingID string `json:"offering_id"`
	Count      int    `json:"count"`
	Removed    int    `json:"removed,omitempty"` // 仅重新生成时返回：被替换的未来课次数
}

// ListSessionsRequest 课次列表查询参数
type ListSessionsRequest struct {
	From string `form:"from"` // "2025-09-01"
	To   string `form:"to"`
}

// CancelSessionRequest 取消课次请求
type CancelSessionRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// RescheduleSessionRequest 调课请求
type RescheduleSessionRequest struct {
	Date      string `json:"date"       binding:"required"` // "2025-09-03"
	StartTime string `json:"start_time" binding:"required"` // "15:30"
	EndTime   string `json:"end_time"   binding:"required"`
}

// SessionResponse 课次信息响应
type SessionResponse struct {
	ID           string `json:"id"`
	OfferingID   string `json:"offering_id"`
	Date         string `json:"date"`
	OriginalDate string `json:"original_date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
	CancelReason string `json:"cancel_reason,omitempty"`
}
