package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"simlok-backend/internal/domain/session"
	"simlok-backend/internal/domain/user"
	"simlok-backend/internal/testutil/sessionmock"
	"simlok-backend/internal/testutil/usermock"
)

func hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func vendor(t *testing.T) *user.User {
	return &user.User{
		ID:           3,
		UserID:       "vd000000000000000000000000000000",
		Email:        "vendor@example.com",
		PasswordHash: hash(t, "correct-horse"),
		Name:         "Vendor One",
		Role:         user.RoleVendor,
		Verified:     true,
	}
}

func TestUsecase_Login(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("happy path creates a session", func(t *testing.T) {
		var created *session.Session
		users := &usermock.Repo{
			GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				if email != "vendor@example.com" {
					return nil, user.ErrNotFound
				}
				return vendor(t), nil
			},
		}
		sessions := &sessionmock.Repo{
			CreateFn: func(ctx context.Context, s *session.Session) error { created = s; return nil },
		}
		uc := NewUsecase(users, sessions, 24*time.Hour).WithClock(func() time.Time { return now })

		res, err := uc.Login(context.Background(), LoginInput{Email: "Vendor@Example.com ", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if created == nil || len(created.Token) != 64 {
			t.Fatalf("session not created properly: %+v", created)
		}
		if !created.ExpiresAt.Equal(now.Add(24 * time.Hour)) {
			t.Fatalf("ExpiresAt = %v", created.ExpiresAt)
		}
		if res.Token != created.Token || res.User.Role != "VENDOR" {
			t.Fatalf("result wrong: %+v", res)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &usermock.Repo{
			GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) { return vendor(t), nil },
		}
		uc := NewUsecase(users, &sessionmock.Repo{}, 0)
		if _, err := uc.Login(context.Background(), LoginInput{Email: "vendor@example.com", Password: "nope"}); !errors.Is(err, user.ErrWrongPassword) {
			t.Fatalf("err = %v, want ErrWrongPassword", err)
		}
	})

	t.Run("unknown email maps to wrong password", func(t *testing.T) {
		uc := NewUsecase(&usermock.Repo{}, &sessionmock.Repo{}, 0)
		if _, err := uc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "x"}); !errors.Is(err, user.ErrWrongPassword) {
			t.Fatalf("err = %v, want ErrWrongPassword", err)
		}
	})

	t.Run("unverified user cannot log in", func(t *testing.T) {
		users := &usermock.Repo{
			GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				u := vendor(t)
				u.Verified = false
				return u, nil
			},
		}
		uc := NewUsecase(users, &sessionmock.Repo{}, 0)
		if _, err := uc.Login(context.Background(), LoginInput{Email: "vendor@example.com", Password: "correct-horse"}); !errors.Is(err, user.ErrNotVerified) {
			t.Fatalf("err = %v, want ErrNotVerified", err)
		}
	})
}

func TestUsecase_Validate(t *testing.T) {
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	live := &session.Session{Token: "tok", UserID: 3, ExpiresAt: now.Add(time.Hour)}

	tests := []struct {
		name    string
		token   string
		sess    *session.Session
		usr     *user.User
		wantErr error
	}{
		{name: "valid", token: "tok", sess: live, usr: vendor(t)},
		{name: "missing token", token: "", wantErr: session.ErrNotFound},
		{name: "unknown token", token: "other", wantErr: session.ErrNotFound},
		{
			name:  "expired session",
			token: "tok",
			sess:  &session.Session{Token: "tok", UserID: 3, ExpiresAt: now.Add(-time.Minute)},
			wantErr: session.ErrExpired,
		},
		{
			name:  "user unverified since login",
			token: "tok",
			sess:  live,
			usr: func() *user.User {
				u := vendor(t)
				u.Verified = false
				return u
			}(),
			wantErr: user.ErrNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &sessionmock.Repo{
				GetByTokenFn: func(ctx context.Context, token string) (*session.Session, error) {
					if tt.sess != nil && token == tt.sess.Token {
						return tt.sess, nil
					}
					return nil, session.ErrNotFound
				},
			}
			users := &usermock.Repo{
				GetByIDFn: func(ctx context.Context, id uint64) (*user.User, error) {
					if tt.usr != nil {
						return tt.usr, nil
					}
					return nil, user.ErrNotFound
				},
			}
			uc := NewUsecase(users, sessions, 0).WithClock(func() time.Time { return now })

			got, err := uc.Validate(context.Background(), tt.token)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if got.UserID != tt.usr.UserID {
				t.Fatalf("user = %+v", got)
			}
		})
	}
}

func TestUsecase_Logout_InvalidatesAllSessions(t *testing.T) {
	var deletedFor uint64
	sessions := &sessionmock.Repo{
		DeleteByUserIDFn: func(ctx context.Context, userID uint64) error {
			deletedFor = userID
			return nil
		},
	}
	uc := NewUsecase(&usermock.Repo{}, sessions, 0)
	if err := uc.Logout(context.Background(), 3); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if deletedFor != 3 {
		t.Fatalf("DeleteByUserID called with %d, want 3", deletedFor)
	}
}

func TestUsecase_Register(t *testing.T) {
	t.Run("creates unverified vendor", func(t *testing.T) {
		var created *user.User
		users := &usermock.Repo{
			CreateFn: func(ctx context.Context, u *user.User) error { created = u; return nil },
		}
		uc := NewUsecase(users, &sessionmock.Repo{}, 0)

		dto, err := uc.Register(context.Background(), RegisterInput{
			Email: "New@Vendor.com", Password: "longenough", Name: "N", VendorName: "PT X",
		})
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if created.Role != user.RoleVendor || created.Verified {
			t.Fatalf("created = %+v", created)
		}
		if created.Email != "new@vendor.com" {
			t.Fatalf("email not normalized: %q", created.Email)
		}
		if dto.Verified {
			t.Fatal("dto claims verified")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := &usermock.Repo{
			GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) { return vendor(t), nil },
		}
		uc := NewUsecase(users, &sessionmock.Repo{}, 0)
		if _, err := uc.Register(context.Background(), RegisterInput{Email: "vendor@example.com", Password: "longenough", Name: "N"}); !errors.Is(err, user.ErrEmailTaken) {
			t.Fatalf("err = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		uc := NewUsecase(&usermock.Repo{}, &sessionmock.Repo{}, 0)
		if _, err := uc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "short", Name: "N"}); err == nil {
			t.Fatal("expected error")
		}
	})
}
