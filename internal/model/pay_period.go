package model

import "time"

// PayFrequency 发薪周期频率
type PayFrequency string

const (
	PayWeekly   PayFrequency = "WEEKLY"
	PayBiweekly PayFrequency = "BIWEEKLY"
	PayMonthly  PayFrequency = "MONTHLY"
)

// PayPeriodStatus 发薪周期状态
type PayPeriodStatus string

const (
	PayPeriodOpen   PayPeriodStatus = "OPEN"
	PayPeriodClosed PayPeriodStatus = "CLOSED"
)

// PayPeriod 发薪周期表，对应 pay_periods
// 同一 (organization, year) 下的周期首尾相接，恰好覆盖 1 月 1 日至 12 月 31 日
type PayPeriod struct {
	PayPeriodID    string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pay_period_id"`
	OrganizationID string          `gorm:"type:uuid;not null;index"                       json:"organization_id"`
	Name           string          `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate      time.Time       `gorm:"type:date;not null"                             json:"start_date"`
	EndDate        time.Time       `gorm:"type:date;not null"                             json:"end_date"`
	Frequency      PayFrequency    `gorm:"type:varchar(10);not null"                      json:"frequency"`
	Status         PayPeriodStatus `gorm:"type:varchar(10);not null;default:'OPEN'"       json:"status"`
	BaseModel
}

// TableName 指定表名
func (PayPeriod) TableName() string { return "pay_periods" }
