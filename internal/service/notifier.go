package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"
	ws "backend/internal/websocket"
)

// Notifier appends one notification per store mutation and pushes it to
// connected websocket clients. Append runs inside the same transaction as
// the mutation that produced the record, so notification ordering always
// matches mutation ordering.
type Notifier struct {
	repo repository.NotificationRepository
	hub  *ws.Hub
}

func NewNotifier(repo repository.NotificationRepository, hub *ws.Hub) *Notifier {
	return &Notifier{repo: repo, hub: hub}
}

// Append persists the notification and broadcasts it. The broadcast is
// best-effort; persistence failure aborts the surrounding transaction.
func (n *Notifier) Append(ctx context.Context, notification *model.Notification) error {
	if err := n.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}
	n.hub.Publish("notification", notification)
	return nil
}

// HasUnread reports whether an unread notification of this type exists for
// the inventory item. Drives the low-stock de-duplication rule.
func (n *Notifier) HasUnread(ctx context.Context, notifType string, itemID uint) (bool, error) {
	return n.repo.HasUnread(ctx, notifType, itemID)
}

// entityChanged builds the generic created/updated/deleted notification that
// every collection mutation appends.
func entityChanged(notifType, verb, verbAr, name string) *model.Notification {
	return &model.Notification{
		Type:      notifType,
		Title:     fmt.Sprintf("%s %s", titleFor(notifType), verb),
		TitleAr:   fmt.Sprintf("%s %s", verbAr, titleForAr(notifType)),
		Message:   fmt.Sprintf("%q was %s", name, verb),
		MessageAr: fmt.Sprintf("%s %q", verbAr, name),
	}
}

func titleFor(notifType string) string {
	switch notifType {
	case model.NotifAppointment:
		return "Appointment"
	case model.NotifCustomer:
		return "Customer"
	case model.NotifService:
		return "Service"
	case model.NotifInventory:
		return "Inventory item"
	case model.NotifUser:
		return "User"
	case model.NotifTransaction:
		return "Transaction"
	default:
		return "Record"
	}
}

func titleForAr(notifType string) string {
	switch notifType {
	case model.NotifAppointment:
		return "موعد"
	case model.NotifCustomer:
		return "زبون"
	case model.NotifService:
		return "خدمة"
	case model.NotifInventory:
		return "مادة"
	case model.NotifUser:
		return "مستخدم"
	case model.NotifTransaction:
		return "معاملة"
	default:
		return "سجل"
	}
}
