package qrscanmock

import (
	"context"
	"time"

	domain "simlok-backend/internal/domain/qrscan"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies qrscan.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, s *domain.QrScan) error
	ListBySubmissionFn func(ctx context.Context, submissionRowID uint64, offset, limit int) ([]domain.QrScan, int64, error)
	LastByScannerFn    func(ctx context.Context, submissionRowID uint64, scannedBy string) (*domain.QrScan, error)
	CountSinceFn       func(ctx context.Context, since time.Time) (int64, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.QrScan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) ListBySubmission(ctx context.Context, submissionRowID uint64, offset, limit int) ([]domain.QrScan, int64, error) {
	if m.ListBySubmissionFn != nil {
		return m.ListBySubmissionFn(ctx, submissionRowID, offset, limit)
	}
	return nil, 0, nil
}

func (m *Repo) LastByScanner(ctx context.Context, submissionRowID uint64, scannedBy string) (*domain.QrScan, error) {
	if m.LastByScannerFn != nil {
		return m.LastByScannerFn(ctx, submissionRowID, scannedBy)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountSinceFn != nil {
		return m.CountSinceFn(ctx, since)
	}
	return 0, nil
}
