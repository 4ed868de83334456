package dto

// ── 兴趣课考勤模块 DTO ──

// AttendanceMark 单个学生的考勤标记
type AttendanceMark struct {
	EnrollmentID string `json:"enrollment_id" binding:"required,uuid"`
	Status       string `json:"status"        binding:"required"`
	IsRollover   bool   `json:"is_rollover"`
	Notes        string `json:"notes"         binding:"max=500"`
}

// MarkAttendanceRequest 批量考勤请求
type MarkAttendanceRequest struct {
	Records []AttendanceMark `json:"records" binding:"required,min=1,dive"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID           string `json:"id"`
	SessionID    string `json:"session_id"`
	EnrollmentID string `json:"enrollment_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	IsRollover   bool   `json:"is_rollover"`
	Notes        string `json:"notes,omitempty"`
}

// RolloverResponse 补课额度记录
type RolloverResponse struct {
	AttendanceID string `json:"attendance_id"`
	SessionID    string `json:"session_id"`
	EnrollmentID string `json:"enrollment_id"`
	StudentID    string `json:"student_id"`
	Date         string `json:"date"`
	Reason       string `json:"reason"` // teacher_absent | manual
}
