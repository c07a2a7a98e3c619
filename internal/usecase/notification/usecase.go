package notification

import (
	"context"
	"time"

	domain "simlok-backend/internal/domain/notification"
)

type Usecase struct {
	repo domain.Repository
}

func NewUsecase(repo domain.Repository) *Usecase { return &Usecase{repo: repo} }

type NotificationDTO struct {
	ID           uint64     `json:"id"`
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Body         string     `json:"body,omitempty"`
	SubmissionID string     `json:"submission_id,omitempty"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ListResult struct {
	Items  []NotificationDTO `json:"items"`
	Total  int64             `json:"total"`
	Unread int64             `json:"unread"`
}

// List returns the user's notifications newest first, plus the unread count
// for the badge.
func (u *Usecase) List(ctx context.Context, userRowID uint64, unreadOnly bool, offset, limit int) (*ListResult, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	rows, total, err := u.repo.ListByUser(ctx, userRowID, unreadOnly, offset, limit)
	if err != nil {
		return nil, err
	}
	unread, err := u.repo.CountUnread(ctx, userRowID)
	if err != nil {
		return nil, err
	}
	out := &ListResult{Items: make([]NotificationDTO, 0, len(rows)), Total: total, Unread: unread}
	for _, n := range rows {
		out.Items = append(out.Items, NotificationDTO{
			ID:           n.ID,
			Type:         string(n.Type),
			Title:        n.Title,
			Body:         n.Body,
			SubmissionID: n.SubmissionID,
			ReadAt:       n.ReadAt,
			CreatedAt:    n.CreatedAt,
		})
	}
	return out, nil
}

// MarkRead marks one of the user's notifications as read. Marking a foreign
// or unknown notification yields domain.ErrNotFound.
func (u *Usecase) MarkRead(ctx context.Context, userRowID, notificationID uint64) error {
	return u.repo.MarkRead(ctx, userRowID, notificationID)
}

func (u *Usecase) MarkAllRead(ctx context.Context, userRowID uint64) error {
	return u.repo.MarkAllRead(ctx, userRowID)
}
