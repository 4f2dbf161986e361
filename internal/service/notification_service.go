package service

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"
)

type NotificationService interface {
	List(ctx context.Context, page, limit int) ([]model.Notification, int64, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uint) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id uint) error
	ClearAll(ctx context.Context) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, page, limit int) ([]model.Notification, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.List(ctx, page, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}

// MarkRead flips a single notification. Clearing the unread flag on a
// low_stock row is what re-arms the next low-stock alert for its item.
func (s *notificationService) MarkRead(ctx context.Context, id uint) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

func (s *notificationService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *notificationService) ClearAll(ctx context.Context) error {
	return s.repo.ClearAll(ctx)
}
