package model

import "time"

// AttendanceStatus 兴趣课考勤状态
type AttendanceStatus string

const (
	AttendancePresent       AttendanceStatus = "PRESENT"
	AttendanceAbsent        AttendanceStatus = "ABSENT"
	AttendanceLate          AttendanceStatus = "LATE"
	AttendanceUnmarked      AttendanceStatus = "UNMARKED"
	AttendanceTeacherAbsent AttendanceStatus = "TEACHER_ABSENT"
	AttendanceSchoolClosed  AttendanceStatus = "SCHOOL_CLOSED"
)

// Valid 是否为已知考勤状态
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate,
		AttendanceUnmarked, AttendanceTeacherAbsent, AttendanceSchoolClosed:
		return true
	}
	return false
}

// Billable 该状态是否说明课次实际发生（计入课时费）
func (s AttendanceStatus) Billable() bool {
	return s != AttendanceTeacherAbsent && s != AttendanceSchoolClosed
}

// ElectiveAttendance 兴趣课考勤表，对应 elective_attendance
// 每个 (课次, 学生选课) 至多一条记录；所属开课通过 Enrollment 关联
type ElectiveAttendance struct {
	AttendanceID string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	SessionID    string           `gorm:"type:uuid;not null;uniqueIndex:uk_attendance_session_enrollment" json:"session_id"`
	EnrollmentID string           `gorm:"type:uuid;not null;uniqueIndex:uk_attendance_session_enrollment" json:"enrollment_id"`
	Date         time.Time        `gorm:"type:date;not null;index"                       json:"date"`
	Status       AttendanceStatus `gorm:"type:varchar(20);not null;default:'UNMARKED'"   json:"status"`
	IsRollover   bool             `gorm:"not null;default:false"                         json:"is_rollover"`
	Notes        string           `gorm:"type:varchar(500)"                              json:"notes,omitempty"`
	BaseModel

	// 关联
	Enrollment *Enrollment `gorm:"foreignKey:EnrollmentID;references:EnrollmentID" json:"enrollment,omitempty"`
}

// TableName 指定表名
func (ElectiveAttendance) TableName() string { return "elective_attendance" }

// GrantsRollover 学生是否因此记录获得补课额度（老师缺课或被显式标记）
func (a *ElectiveAttendance) GrantsRollover() bool {
	return a.Status == AttendanceTeacherAbsent || a.IsRollover
}
