package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"school-hub/backend/internal/model"
)

// AttendanceRepository 出勤数据访问接口
type AttendanceRepository interface {
	ListSince(ctx context.Context, from time.Time) ([]model.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) ListSince(ctx context.Context, from time.Time) ([]model.Attendance, error) {
	var rows []model.Attendance
	err := r.db.WithContext(ctx).
		Select("date", "present").
		Where("date >= ?", from).
		Find(&rows).Error
	return rows, err
}
