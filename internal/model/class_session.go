package model

import "time"

// SessionStatus 课次状态
type SessionStatus string

const (
	SessionScheduled   SessionStatus = "SCHEDULED"
	SessionCancelled   SessionStatus = "CANCELLED"
	SessionRescheduled SessionStatus = "RESCHEDULED"
	SessionCompleted   SessionStatus = "COMPLETED"
)

// ClassSession 课次表，对应 class_sessions
// 由课次生成器批量创建；取消 / 调课后 date 可能不再落在开课规则的星期上
type ClassSession struct {
	SessionID    string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	OfferingID   string        `gorm:"type:uuid;not null;index"                       json:"offering_id"`
	Date         time.Time     `gorm:"type:date;not null"                             json:"date"`
	OriginalDate time.Time     `gorm:"type:date;not null"                             json:"original_date"` // 规则生成时的日期，调课后不变
	StartTime    string        `gorm:"type:time;not null"                             json:"start_time"`
	EndTime      string        `gorm:"type:time;not null"                             json:"end_time"`
	Status       SessionStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED'"  json:"status"`
	CancelReason string        `gorm:"type:varchar(500)"                              json:"cancel_reason,omitempty"`
	BaseModel

	// 关联
	Offering *Offering `gorm:"foreignKey:OfferingID;references:OfferingID" json:"offering,omitempty"`
}

// TableName 指定表名
func (ClassSession) TableName() string { return "class_sessions" }
