package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	sessDomain "simlok-backend/internal/domain/session"
)

type SessionRepository struct{ db *gorm.DB }

func NewSessionRepository(db *gorm.DB) *SessionRepository { return &SessionRepository{db: db} }

func (r *SessionRepository) Create(ctx context.Context, s *sessDomain.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*sessDomain.Session, error) {
	var out sessDomain.Session
	res := r.db.WithContext(ctx).Where("token = ?", token).First(&out)
	return &out, res.Error
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID uint64) error {
	// Hard delete: a deleted row must fail lookups instantly.
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&sessDomain.Session{}).Error
}

// DeleteExpired sweeps rows past their expiry, returning the count removed.
// Called periodically from a background goroutine.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", time.Now().UTC()).Delete(&sessDomain.Session{})
	return res.RowsAffected, res.Error
}
