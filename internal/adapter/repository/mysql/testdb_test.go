package mysql

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"simlok-backend/internal/domain/notification"
	"simlok-backend/internal/domain/qrscan"
	"simlok-backend/internal/domain/session"
	"simlok-backend/internal/domain/submission"
	"simlok-backend/internal/domain/user"
)

// openTestDB creates an in-memory sqlite DB and migrates the full schema.
// The domain models avoid MySQL-only column types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&user.User{},
		&session.Session{},
		&submission.Submission{},
		&submission.Worker{},
		&submission.SupportDocument{},
		&qrscan.QrScan{},
		&notification.Notification{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
