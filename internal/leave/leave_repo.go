package leave

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// WithTx binds the repository to an open transaction handle.
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	// FindByIDForUpdate locks the request row so the pending-status guard
	// is re-checked inside the decision transaction, not just before it.
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error)
	FindPending(ctx context.Context) ([]LeaveRequest, error)
	FindByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	// HasOverlappingPeriod reports whether the user already has a
	// non-rejected request sharing at least one day with [startDate,
	// endDate]. Note the polarity: true means an overlap EXISTS.
	HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error)
	CountApprovedOnDay(ctx context.Context, day time.Time) (int64, error)
	// FindIntersectingRange returns every request whose inclusive date
	// range shares at least one day with [rangeStart, rangeEnd].
	FindIntersectingRange(ctx context.Context, rangeStart, rangeEnd time.Time) ([]LeaveRequest, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindPending(ctx context.Context) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, userID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("user_id = ?", userID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountApprovedOnDay(ctx context.Context, day time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("status = ?", StatusApproved).
		Where("start_date <= ?", day).
		Where("end_date >= ?", day).
		Count(&count).Error
	return count, err
}

func (r *repository) FindIntersectingRange(ctx context.Context, rangeStart, rangeEnd time.Time) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("NOT (end_date < ? OR start_date > ?)", rangeStart, rangeEnd).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}
