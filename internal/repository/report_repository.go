package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fintrack/internal/model"
)

// ReportRepository defines content report persistence operations. Reports are
// never physically deleted; soft-deleted rows stay queryable by id but drop
// out of queue listings.
type ReportRepository interface {
	Create(ctx context.Context, report *model.ContentReport) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ContentReport, error)
	Update(ctx context.Context, report *model.ContentReport) error
	ListQueue(ctx context.Context, status model.ReportStatus, page, limit int) ([]model.ContentReport, int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository builds a GORM-backed repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.ContentReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ContentReport, error) {
	var report model.ContentReport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Update(ctx context.Context, report *model.ContentReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// ListQueue returns non-deleted reports, optionally filtered by status,
// highest priority first.
func (r *reportRepository) ListQueue(ctx context.Context, status model.ReportStatus, page, limit int) ([]model.ContentReport, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ContentReport{}).Where("deleted_at IS NULL")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var reports []model.ContentReport
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("FIELD(priority, 'high', 'medium', 'low'), created_at").
		Offset((page - 1) * limit).Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
