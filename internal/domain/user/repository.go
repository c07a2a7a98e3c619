package user

import "context"

type ListFilter struct {
	Role   Role
	Search string // matches name/email/vendor name
	Offset int
	Limit  int
}

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByID(ctx context.Context, id uint64) (*User, error)
	List(ctx context.Context, f ListFilter) ([]User, int64, error)
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, u *User) error
}
