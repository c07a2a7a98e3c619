package notificationmock

import (
	"context"

	domain "simlok-backend/internal/domain/notification"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies notification.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, n *domain.Notification) error
	ListByUserFn  func(ctx context.Context, userID uint64, unreadOnly bool, offset, limit int) ([]domain.Notification, int64, error)
	CountUnreadFn func(ctx context.Context, userID uint64) (int64, error)
	MarkReadFn    func(ctx context.Context, userID, notificationID uint64) error
	MarkAllReadFn func(ctx context.Context, userID uint64) error
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID uint64, unreadOnly bool, offset, limit int) ([]domain.Notification, int64, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, unreadOnly, offset, limit)
	}
	return nil, 0, nil
}

func (m *Repo) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	if m.CountUnreadFn != nil {
		return m.CountUnreadFn(ctx, userID)
	}
	return 0, nil
}

func (m *Repo) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (m *Repo) MarkAllRead(ctx context.Context, userID uint64) error {
	if m.MarkAllReadFn != nil {
		return m.MarkAllReadFn(ctx, userID)
	}
	return nil
}
