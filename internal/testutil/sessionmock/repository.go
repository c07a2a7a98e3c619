package sessionmock

import (
	"context"

	domain "simlok-backend/internal/domain/session"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies session.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, s *domain.Session) error
	GetByTokenFn     func(ctx context.Context, token string) (*domain.Session, error)
	DeleteByUserIDFn func(ctx context.Context, userID uint64) error
	DeleteExpiredFn  func(ctx context.Context) (int64, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Session) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.GetByTokenFn != nil {
		return m.GetByTokenFn(ctx, token)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) DeleteByUserID(ctx context.Context, userID uint64) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	return nil
}

func (m *Repo) DeleteExpired(ctx context.Context) (int64, error) {
	if m.DeleteExpiredFn != nil {
		return m.DeleteExpiredFn(ctx)
	}
	return 0, nil
}
