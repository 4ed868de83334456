package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jvpatel1702/vedicroots-attendance-system-sub001/internal/model"
)

// sessionBatchSize 批量插入课次时每批行数
const sessionBatchSize = 200

// ClassSessionRepository 课次数据访问接口
type ClassSessionRepository interface {
	GetByID(ctx context.Context, id string) (*model.ClassSession, error)
	CreateBatch(ctx context.Context, sessions []model.ClassSession) error
	// CountInRange 统计开课在 [from, to] 内已有的课次数量（含已取消）
	CountInRange(ctx context.Context, offeringID string, from, to time.Time) (int64, error)
	ListByOffering(ctx context.Context, offeringID string, from, to *time.Time) ([]model.ClassSession, error)
	Update(ctx context.Context, session *model.ClassSession) error
	// DeleteScheduledFrom 删除 from 当天及之后仍处于 SCHEDULED 且尚无考勤的课次，返回删除条数
	DeleteScheduledFrom(ctx context.Context, offeringID string, from time.Time) (int64, error)
}

type classSessionRepo struct {
	db *gorm.DB
}

// NewClassSessionRepo 创建 ClassSessionRepository 实例
func NewClassSessionRepo(db *gorm.DB) ClassSessionRepository {
	return &classSessionRepo{db: db}
}

func (r *classSessionRepo) GetByID(ctx context.Context, id string) (*model.ClassSession, error) {
	var session model.ClassSession
	err := r.db.WithContext(ctx).
		Preload("Offering").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *classSessionRepo) CreateBatch(ctx context.Context, sessions []model.ClassSession) error {
	if len(sessions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(sessions, sessionBatchSize).Error
}

func (r *classSessionRepo) CountInRange(ctx context.Context, offeringID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("offering_id = ? AND date BETWEEN ? AND ?", offeringID, from, to).
		Count(&count).Error
	return count, err
}

func (r *classSessionRepo) ListByOffering(ctx context.Context, offeringID string, from, to *time.Time) ([]model.ClassSession, error) {
	var sessions []model.ClassSession
	db := r.db.WithContext(ctx).Where("offering_id = ?", offeringID)
	if from != nil {
		db = db.Where("date >= ?", *from)
	}
	if to != nil {
		db = db.Where("date <= ?", *to)
	}
	err := db.Order("date ASC, start_time ASC").Find(&sessions).Error
	return sessions, err
}

func (r *classSessionRepo) Update(ctx context.Context, session *model.ClassSession) error {
	return r.db.WithContext(ctx).
		Model(&model.ClassSession{}).
		Where("session_id = ?", session.SessionID).
		Updates(map[string]interface{}{
			"date":          session.Date,
			"start_time":    session.StartTime,
			"end_time":      session.EndTime,
			"status":        session.Status,
			"cancel_reason": session.CancelReason,
			"updated_by":    session.UpdatedBy,
			"updated_at":    gorm.Expr("NOW()"),
		}).Error
}

func (r *classSessionRepo) DeleteScheduledFrom(ctx context.Context, offeringID string, from time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("offering_id = ? AND date >= ? AND status = ?", offeringID, from, model.SessionScheduled).
		Where("NOT EXISTS (SELECT 1 FROM elective_attendance ea WHERE ea.session_id = class_sessions.session_id)").
		Delete(&model.ClassSession{})
	return res.RowsAffected, res.Error
}
