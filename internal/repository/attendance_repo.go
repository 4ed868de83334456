package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

// AttendanceRepository 兴趣课考勤数据访问接口
type AttendanceRepository interface {
	// Upsert 按 (session_id, enrollment_id) 插入或更新
	Upsert(ctx context.Context, record *model.ElectiveAttendance) error
	// ListByOfferingsInRange 查询选课属于给定开课、日期在 [start, end] 内的考勤，预加载 Enrollment
	ListByOfferingsInRange(ctx context.Context, offeringIDs []string, start, end time.Time) ([]model.ElectiveAttendance, error)
	// ListRollovers 查询开课下产生补课额度的考勤
	ListRollovers(ctx context.Context, offeringID string) ([]model.ElectiveAttendance, error)
	// MoveSessionDate 调课后同步该课次全部考勤的日期，返回更新条数
	MoveSessionDate(ctx context.Context, sessionID string, date time.Time, updatedBy string) (int64, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Upsert(ctx context.Context, record *model.ElectiveAttendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "enrollment_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":      record.Status,
				"is_rollover": record.IsRollover,
				"notes":       record.Notes,
				"date":        record.Date,
				"updated_by":  record.UpdatedBy,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).
		Create(record).Error
}

func (r *attendanceRepo) ListByOfferingsInRange(ctx context.Context, offeringIDs []string, start, end time.Time) ([]model.ElectiveAttendance, error) {
	var records []model.ElectiveAttendance
	if len(offeringIDs) == 0 {
		return records, nil
	}
	err := r.db.WithContext(ctx).
		Joins("Enrollment").
		Where(`"Enrollment"."offering_id" IN ?`, offeringIDs).
		Where("elective_attendance.date BETWEEN ? AND ?", start, end).
		Order("elective_attendance.date ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListRollovers(ctx context.Context, offeringID string) ([]model.ElectiveAttendance, error) {
	var records []model.ElectiveAttendance
	err := r.db.WithContext(ctx).
		Joins("Enrollment").
		Where(`"Enrollment"."offering_id" = ?`, offeringID).
		Where("(elective_attendance.status = ? OR elective_attendance.is_rollover = ?)", model.AttendanceTeacherAbsent, true).
		Order("elective_attendance.date ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) MoveSessionDate(ctx context.Context, sessionID string, date time.Time, updatedBy string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ElectiveAttendance{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{
			"date":       date,
			"updated_by": updatedBy,
			"updated_at": gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}
