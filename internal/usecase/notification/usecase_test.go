package notification

import (
	"context"
	"testing"
	"time"

	domain "simlok-backend/internal/domain/notification"
	"simlok-backend/internal/testutil/notificationmock"
)

func TestList_ReturnsItemsAndUnreadCount(t *testing.T) {
	read := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &notificationmock.Repo{
		ListByUserFn: func(_ context.Context, userID uint64, unreadOnly bool, offset, limit int) ([]domain.Notification, int64, error) {
			if userID != 7 {
				t.Fatalf("userID = %d", userID)
			}
			if unreadOnly {
				t.Fatal("unreadOnly should be false")
			}
			return []domain.Notification{
				{ID: 2, Type: domain.TypeApproved, Title: "SIMLOK issued", SubmissionID: "s1"},
				{ID: 1, Type: domain.TypeReviewed, Title: "Submission reviewed", ReadAt: &read},
			}, 2, nil
		},
		CountUnreadFn: func(context.Context, uint64) (int64, error) { return 1, nil },
	}

	out, err := NewUsecase(repo).List(context.Background(), 7, false, 0, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out.Items) != 2 || out.Total != 2 || out.Unread != 1 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if out.Items[0].Type != string(domain.TypeApproved) {
		t.Fatalf("first item: %+v", out.Items[0])
	}
	if out.Items[1].ReadAt == nil {
		t.Fatal("read marker dropped")
	}
}

func TestList_ClampsLimit(t *testing.T) {
	repo := &notificationmock.Repo{
		ListByUserFn: func(_ context.Context, _ uint64, _ bool, _ int, limit int) ([]domain.Notification, int64, error) {
			if limit != 20 {
				t.Fatalf("limit not clamped: %d", limit)
			}
			return nil, 0, nil
		},
	}
	if _, err := NewUsecase(repo).List(context.Background(), 7, false, 0, 10000); err != nil {
		t.Fatalf("List: %v", err)
	}
}

func TestMarkRead_ScopedToUser(t *testing.T) {
	repo := &notificationmock.Repo{
		MarkReadFn: func(_ context.Context, userID, notificationID uint64) error {
			if userID != 7 || notificationID != 42 {
				t.Fatalf("wrong scoping: user=%d id=%d", userID, notificationID)
			}
			return domain.ErrNotFound
		},
	}
	err := NewUsecase(repo).MarkRead(context.Background(), 7, 42)
	if err != domain.ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
