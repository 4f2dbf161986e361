package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	// List returns notifications most-recent-first
	List(ctx context.Context, page, limit int) ([]model.Notification, int64, error)
	// HasUnread reports whether an unread notification of the given type
	// already exists for the inventory item. Used for low-stock dedup.
	HasUnread(ctx context.Context, notifType string, itemID uint) (bool, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id uint) error
	ClearAll(ctx context.Context) error
	CountUnread(ctx context.Context) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return GetDB(ctx, r.db).Create(notification).Error
}

func (r *notificationRepository) List(ctx context.Context, page, limit int) ([]model.Notification, int64, error) {
	var notifications []model.Notification
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Order("id desc").Offset(offset).Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepository) HasUnread(ctx context.Context, notifType string, itemID uint) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Notification{}).
		Where("type = ? AND item_id = ? AND is_read = ?", notifType, itemID, false).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	result := GetDB(ctx, r.db).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context) error {
	return GetDB(ctx, r.db).Model(&model.Notification{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id uint) error {
	result := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) ClearAll(ctx context.Context) error {
	return GetDB(ctx, r.db).Where("1 = 1").Delete(&model.Notification{}).Error
}

func (r *notificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Notification{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}
