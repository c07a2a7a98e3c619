package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	scanDomain "simlok-backend/internal/domain/qrscan"
)

type QrScanRepository struct{ db *gorm.DB }

func NewQrScanRepository(db *gorm.DB) *QrScanRepository { return &QrScanRepository{db: db} }

func (r *QrScanRepository) Create(ctx context.Context, s *scanDomain.QrScan) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *QrScanRepository) ListBySubmission(ctx context.Context, submissionRowID uint64, offset, limit int) ([]scanDomain.QrScan, int64, error) {
	q := r.db.WithContext(ctx).Model(&scanDomain.QrScan{}).Where("submission_row_id = ?", submissionRowID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []scanDomain.QrScan
	err := q.Order("scanned_at DESC, id DESC").Offset(offset).Limit(limit).Find(&rows).Error
	return rows, total, err
}

func (r *QrScanRepository) LastByScanner(ctx context.Context, submissionRowID uint64, scannedBy string) (*scanDomain.QrScan, error) {
	var out scanDomain.QrScan
	res := r.db.WithContext(ctx).
		Where("submission_row_id = ? AND scanned_by = ?", submissionRowID, scannedBy).
		Order("scanned_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *QrScanRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&scanDomain.QrScan{}).
		Where("scanned_at >= ?", since).
		Count(&n).Error
	return n, err
}
