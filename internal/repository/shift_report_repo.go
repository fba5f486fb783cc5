package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/armbdevelop/reportBot/internal/dto"
	"github.com/armbdevelop/reportBot/internal/model"
)

type ShiftReportRepository interface {
	Create(ctx context.Context, r *model.ShiftReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ShiftReport, error)
	List(ctx context.Context, q dto.ShiftReportQuery) ([]model.ShiftReport, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteOlderThan removes reports created before cutoff and returns the
	// number of deleted rows. Used by the retention sweep.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type shiftReportRepo struct{ db *gorm.DB }

func NewShiftReportRepository(db *gorm.DB) ShiftReportRepository { return &shiftReportRepo{db: db} }

func (r *shiftReportRepo) Create(ctx context.Context, report *model.ShiftReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *shiftReportRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ShiftReport, error) {
	var report model.ShiftReport
	err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *shiftReportRepo) List(ctx context.Context, f dto.ShiftReportQuery) ([]model.ShiftReport, int64, error) {
	var reports []model.ShiftReport
	var total int64
	offset := (f.Page - 1) * f.PerPage

	q := r.db.WithContext(ctx).Model(&model.ShiftReport{})

	if f.Start != nil {
		q = q.Where("created_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("created_at <= ?", *f.End)
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Ordered by the cashier-supplied shift date, not the insert timestamp.
	err := q.Order("date DESC").
		Offset(offset).Limit(f.PerPage).
		Find(&reports).Error

	return reports, total, err
}

func (r *shiftReportRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ShiftReport{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *shiftReportRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.ShiftReport{})
	return res.RowsAffected, res.Error
}
