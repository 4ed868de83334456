package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offering 兴趣课（选修课）开课表，对应 offerings
// 每周一次的上课规则直接保存在开课记录上
type Offering struct {
	OfferingID     string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"offering_id"`
	OrganizationID string          `gorm:"type:uuid;not null;index"                       json:"organization_id"`
	TeacherID      string          `gorm:"type:uuid;not null;index"                       json:"teacher_id"`
	Name           string          `gorm:"type:varchar(100);not null"                     json:"name"`
	CostPerSession decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"          json:"cost_per_session"`
	DayOfWeek      string          `gorm:"type:varchar(10);not null"                      json:"day_of_week"` // MONDAY … SUNDAY
	StartDate      time.Time       `gorm:"type:date;not null"                             json:"start_date"`
	EndDate        time.Time       `gorm:"type:date;not null"                             json:"end_date"`
	StartTime      string          `gorm:"type:time;not null"                             json:"start_time"`
	EndTime        string          `gorm:"type:time;not null"                             json:"end_time"`
	IsActive       bool            `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	// 关联
	Teacher *User `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Offering) TableName() string { return "offerings" }

// Enrollment 选课记录表，对应 enrollments
type Enrollment struct {
	EnrollmentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	OfferingID   string     `gorm:"type:uuid;not null;index"                       json:"offering_id"`
	StudentID    string     `gorm:"type:uuid;not null"                             json:"student_id"`
	StartDate    time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate      *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	BaseModel

	// 关联
	Offering *Offering `gorm:"foreignKey:OfferingID;references:OfferingID" json:"offering,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }
