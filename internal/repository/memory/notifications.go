package memory

import (
	"context"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/shopspring/decimal"
)

type notificationRepo struct{ s *Store }

func (s *Store) Notifications() repository.NotificationRepository { return &notificationRepo{s} }

func (r *notificationRepo) Create(_ context.Context, notification *model.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	notification.ID = r.s.nextID("notifications")
	notification.CreatedAt = now()
	r.s.notifications = append(r.s.notifications, *notification)
	return nil
}

func (r *notificationRepo) List(_ context.Context, page, limit int) ([]model.Notification, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// most-recent-first
	reversed := make([]model.Notification, 0, len(r.s.notifications))
	for i := len(r.s.notifications) - 1; i >= 0; i-- {
		reversed = append(reversed, r.s.notifications[i])
	}
	notifications, total := paginate(reversed, page, limit)
	return notifications, total, nil
}

func (r *notificationRepo) HasUnread(_ context.Context, notifType string, itemID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.Type == notifType && !n.IsRead && n.ItemID != nil && *n.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepo) MarkRead(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id {
			r.s.notifications[i].IsRead = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *notificationRepo) MarkAllRead(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		r.s.notifications[i].IsRead = true
	}
	return nil
}

func (r *notificationRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		if r.s.notifications[i].ID == id {
			r.s.notifications = append(r.s.notifications[:i], r.s.notifications[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *notificationRepo) ClearAll(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notifications = nil
	return nil
}

func (r *notificationRepo) CountUnread(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, n := range r.s.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

type settingsRepo struct{ s *Store }

func (s *Store) Settings() repository.SettingsRepository { return &settingsRepo{s} }

func (r *settingsRepo) ListRates(_ context.Context) ([]model.ExchangeRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.ExchangeRate, 0, len(r.s.rates))
	for currency, rate := range r.s.rates {
		out = append(out, model.ExchangeRate{Currency: currency, Rate: rate})
	}
	return out, nil
}

func (r *settingsRepo) UpsertRate(_ context.Context, currency string, rate decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rates[currency] = rate
	return nil
}

func (r *settingsRepo) ReplaceRates(_ context.Context, rates []model.ExchangeRate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rates = make(map[string]decimal.Decimal, len(rates))
	for _, rate := range rates {
		r.s.rates[rate.Currency] = rate.Rate
	}
	return nil
}

func (r *settingsRepo) GetSetting(_ context.Context, key string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	value, ok := r.s.settings[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return value, nil
}

func (r *settingsRepo) SetSetting(_ context.Context, key, value string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[key] = value
	return nil
}
