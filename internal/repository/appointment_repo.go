package repository

import (
	"context"
	"time"

	"backend/internal/model"

	"gorm.io/gorm"
)

// AppointmentFilter narrows List queries. Zero times mean unbounded.
type AppointmentFilter struct {
	BranchID *uint
	Status   string
	From     time.Time
	To       time.Time
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id uint) (*model.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter, page, limit int) ([]model.Appointment, int64, error)
	Update(ctx context.Context, appt *model.Appointment) error
	Delete(ctx context.Context, id uint) error

	// CountByStatus groups appointments in the date range by status.
	// Used by the statistics service; recomputed on every call.
	CountByStatus(ctx context.Context, branchID *uint, from, to time.Time) (map[string]int64, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return GetDB(ctx, r.db).Create(appt).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var appt model.Appointment
	err := GetDB(ctx, r.db).
		Preload("Customer").Preload("Service").Preload("Staff").
		First(&appt, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &appt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter, page, limit int) ([]model.Appointment, int64, error) {
	var appts []model.Appointment
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Appointment{})
	query = scopeBranch(query, filter.BranchID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Customer").Preload("Service").
		Order("date desc, id desc").Offset(offset).Limit(limit).
		Find(&appts).Error
	if err != nil {
		return nil, 0, err
	}

	return appts, total, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	return GetDB(ctx, r.db).Save(appt).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Appointment{}).Error
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, branchID *uint, from, to time.Time) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	query := GetDB(ctx, r.db).Model(&model.Appointment{}).
		Select("status, COUNT(*) as count").
		Where("date >= ? AND date <= ?", from, to)
	query = scopeBranch(query, branchID)
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
