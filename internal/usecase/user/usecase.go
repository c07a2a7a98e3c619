package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"simlok-backend/internal/domain/session"
	domain "simlok-backend/internal/domain/user"
	"simlok-backend/pkg/id"
)

// ErrSelfDemotion guards the last super admin from locking everyone out.
var ErrSelfDemotion = errors.New("cannot change or delete your own admin account")

type Usecase struct {
	users    domain.Repository
	sessions session.Repository
	now      func() time.Time
}

func NewUsecase(users domain.Repository, sessions session.Repository) *Usecase {
	return &Usecase{users: users, sessions: sessions, now: time.Now}
}

// WithClock overrides the time source (tests).
func (u *Usecase) WithClock(fn func() time.Time) *Usecase {
	u.now = fn
	return u
}

type CreateInput struct {
	Email      string
	Password   string
	Name       string
	Role       string
	VendorName string
	Position   string
	Verified   bool
}

type UserDTO struct {
	UserID     string     `json:"user_id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	VendorName string     `json:"vendor_name,omitempty"`
	Position   string     `json:"position,omitempty"`
	Role       string     `json:"role"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Create registers an account with an explicit role (super-admin only path;
// vendor self-signup lives in the auth usecase).
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*UserDTO, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	role := domain.Role(in.Role)
	if in.Email == "" || len(in.Password) < 8 || in.Name == "" || !role.Valid() {
		return nil, errors.New("invalid input")
	}

	_, err := u.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	usr := &domain.User{
		UserID:       id.NewID32(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		VendorName:   in.VendorName,
		Position:     in.Position,
		Role:         role,
	}
	if in.Verified {
		now := u.now().UTC()
		usr.Verified = true
		usr.VerifiedAt = &now
	}
	if err := u.users.Create(ctx, usr); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

type ListInput struct {
	Role    string
	Search  string
	Page    int
	PerPage int
}

type ListResult struct {
	Items   []UserDTO `json:"items"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListResult, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PerPage < 1 || in.PerPage > 100 {
		in.PerPage = 20
	}
	rows, total, err := u.users.List(ctx, domain.ListFilter{
		Role:   domain.Role(in.Role),
		Search: in.Search,
		Offset: (in.Page - 1) * in.PerPage,
		Limit:  in.PerPage,
	})
	if err != nil {
		return nil, err
	}
	out := &ListResult{Items: make([]UserDTO, 0, len(rows)), Total: total, Page: in.Page, PerPage: in.PerPage}
	for i := range rows {
		out.Items = append(out.Items, *toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return toDTO(usr), nil
}

// SetVerified flips the verification flag. Un-verifying also revokes the
// user's sessions so the change bites immediately.
func (u *Usecase) SetVerified(ctx context.Context, userID string, verified bool) (*UserDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	usr.Verified = verified
	if verified {
		now := u.now().UTC()
		usr.VerifiedAt = &now
	} else {
		usr.VerifiedAt = nil
	}
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	if !verified {
		if err := u.sessions.DeleteByUserID(ctx, usr.ID); err != nil {
			return nil, err
		}
	}
	return toDTO(usr), nil
}

// SetRole changes the account role and revokes existing sessions; the new
// role applies on the next login.
func (u *Usecase) SetRole(ctx context.Context, actor *domain.User, userID string, role string) (*UserDTO, error) {
	r := domain.Role(role)
	if !r.Valid() {
		return nil, errors.New("unknown role " + role)
	}
	if actor.UserID == userID {
		return nil, ErrSelfDemotion
	}
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	usr.Role = r
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}
	if err := u.sessions.DeleteByUserID(ctx, usr.ID); err != nil {
		return nil, err
	}
	return toDTO(usr), nil
}

// Delete soft-deletes the account and kills its sessions.
func (u *Usecase) Delete(ctx context.Context, actor *domain.User, userID string) error {
	if actor.UserID == userID {
		return ErrSelfDemotion
	}
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return domain.ErrNotFound
	}
	if err := u.users.Delete(ctx, usr); err != nil {
		return err
	}
	return u.sessions.DeleteByUserID(ctx, usr.ID)
}

func toDTO(usr *domain.User) *UserDTO {
	return &UserDTO{
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
