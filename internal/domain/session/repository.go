package session

import "context"

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	// DeleteByUserID removes every session of the user, invalidating all
	// devices at once (logout semantics).
	DeleteByUserID(ctx context.Context, userID uint64) error
	DeleteExpired(ctx context.Context) (int64, error)
}
