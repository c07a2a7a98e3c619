package qrscan

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, s *QrScan) error
	ListBySubmission(ctx context.Context, submissionRowID uint64, offset, limit int) ([]QrScan, int64, error)
	// LastByScanner returns the scanner's most recent scan of the
	// submission, for duplicate-scan reporting.
	LastByScanner(ctx context.Context, submissionRowID uint64, scannedBy string) (*QrScan, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
