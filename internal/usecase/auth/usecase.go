package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"simlok-backend/internal/domain/session"
	"simlok-backend/internal/domain/user"
	"simlok-backend/pkg/id"
)

const defaultSessionTTL = 24 * time.Hour

type Usecase struct {
	users    user.Repository
	sessions session.Repository
	ttl      time.Duration
	now      func() time.Time
}

func NewUsecase(users user.Repository, sessions session.Repository, ttl time.Duration) *Usecase {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Usecase{users: users, sessions: sessions, ttl: ttl, now: time.Now}
}

// WithClock overrides the time source (tests).
func (u *Usecase) WithClock(fn func() time.Time) *Usecase {
	u.now = fn
	return u
}

// Register creates a vendor account. New accounts start unverified and
// cannot log in until a super admin verifies them.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || len(in.Password) < 8 || in.Name == "" {
		return nil, errors.New("invalid input")
	}

	_, err := u.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, user.ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, user.ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	usr := &user.User{
		UserID:       id.NewID32(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		VendorName:   in.VendorName,
		Role:         user.RoleVendor,
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	dto := toUserDTO(usr)
	return &dto, nil
}

// Login verifies the password and mints a server-persisted session.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	usr, err := u.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, user.ErrWrongPassword // do not leak which part failed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(in.Password)); err != nil {
		return nil, user.ErrWrongPassword
	}
	if !usr.Verified {
		return nil, user.ErrNotVerified
	}

	s := &session.Session{
		Token:     id.NewSessionToken(),
		UserID:    usr.ID,
		ExpiresAt: u.now().UTC().Add(u.ttl),
	}
	if err := u.sessions.Create(ctx, s); err != nil {
		return nil, err
	}

	return &LoginResult{Token: s.Token, ExpiresAt: s.ExpiresAt, User: toUserDTO(usr)}, nil
}

// Validate resolves a bearer token to its user. This is the per-request
// check behind every protected route: missing or expired session rows and
// unverified users are all rejected here.
func (u *Usecase) Validate(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, session.ErrNotFound
	}
	s, err := u.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, session.ErrNotFound
	}
	if s.Expired(u.now().UTC()) {
		return nil, session.ErrExpired
	}
	// Re-fetch the user so role/verification changes take effect immediately.
	usr, err := u.users.GetByID(ctx, s.UserID)
	if err != nil {
		return nil, session.ErrNotFound
	}
	if !usr.Verified {
		return nil, user.ErrNotVerified
	}
	return usr, nil
}

// Logout deletes every session of the user, invalidating all devices at once.
func (u *Usecase) Logout(ctx context.Context, userRowID uint64) error {
	return u.sessions.DeleteByUserID(ctx, userRowID)
}

// ChangePassword re-verifies the current password, rehashes, and revokes all
// existing sessions so stolen tokens die with the old password.
func (u *Usecase) ChangePassword(ctx context.Context, userRowID uint64, current, next string) error {
	if len(next) < 8 {
		return errors.New("new password too short")
	}
	usr, err := u.users.GetByID(ctx, userRowID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(current)); err != nil {
		return user.ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	usr.PasswordHash = string(hash)
	if err := u.users.Save(ctx, usr); err != nil {
		return err
	}
	return u.sessions.DeleteByUserID(ctx, userRowID)
}

func toUserDTO(usr *user.User) UserDTO {
	return UserDTO{
		UserID:     usr.UserID,
		Email:      usr.Email,
		Name:       usr.Name,
		VendorName: usr.VendorName,
		Position:   usr.Position,
		Role:       string(usr.Role),
		Verified:   usr.Verified,
		VerifiedAt: usr.VerifiedAt,
		CreatedAt:  usr.CreatedAt,
	}
}
