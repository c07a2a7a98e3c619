package qrscan

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("scan record not found")

// QrScan is one append-only row per verifier scan of a permit QR code.
// Rows are never updated or deleted.
type QrScan struct {
	ID              uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ScanID          string    `gorm:"column:scan_id;type:char(32);not null;uniqueIndex:ux_qr_scans_scan_id"`
	SubmissionRowID uint64    `gorm:"column:submission_row_id;not null;index"`
	ScannedBy       string    `gorm:"column:scanned_by;type:char(32);not null;index"`
	ScannerName     string    `gorm:"column:scanner_name;size:191"`
	Location        string    `gorm:"column:location;size:191"`
	ScannedAt       time.Time `gorm:"column:scanned_at;not null;index"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (QrScan) TableName() string { return "qr_scans" }
