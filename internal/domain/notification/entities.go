package notification

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification not found")

type Type string

const (
	TypeReviewed Type = "SUBMISSION_REVIEWED"
	TypeApproved Type = "SUBMISSION_APPROVED"
	TypeRejected Type = "SUBMISSION_REJECTED"
)

type Notification struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	UserID uint64 `gorm:"column:user_id;not null;index"`
	Type   Type   `gorm:"column:type;type:varchar(32);not null"`
	Title  string `gorm:"column:title;size:191;not null"`
	Body   string `gorm:"column:body;type:text"`
	// Public id of the submission the notification is about, if any
	SubmissionID string     `gorm:"column:submission_id;type:char(32);index"`
	ReadAt       *time.Time `gorm:"column:read_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Notification) TableName() string { return "notifications" }
