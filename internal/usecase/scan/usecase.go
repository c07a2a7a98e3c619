package scan

import (
	"context"
	"errors"
	"time"

	"simlok-backend/internal/domain/qrscan"
	domain "simlok-backend/internal/domain/submission"
	"simlok-backend/internal/domain/user"
	"simlok-backend/internal/qr"
	"simlok-backend/pkg/id"
)

var ErrNotApproved = errors.New("submission is not an approved permit")

// Window inside which a repeat scan by the same verifier is flagged as a
// duplicate. The scan is still recorded; the log is append-only.
const duplicateWindow = 10 * time.Minute

// TokenVerifier checks a scanned QR payload and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*qr.Claims, error)
}

type Usecase struct {
	subs     domain.Repository
	scans    qrscan.Repository
	verifier TokenVerifier
	now      func() time.Time
}

func NewUsecase(subs domain.Repository, scans qrscan.Repository, verifier TokenVerifier) *Usecase {
	return &Usecase{subs: subs, scans: scans, verifier: verifier, now: time.Now}
}

// WithClock overrides the time source (tests).
func (u *Usecase) WithClock(fn func() time.Time) *Usecase {
	u.now = fn
	return u
}

type ScanInput struct {
	Token    string
	Location string
}

type ScanResult struct {
	ScanID       string    `json:"scan_id"`
	SubmissionID string    `json:"submission_id"`
	SimlokNumber string    `json:"simlok_number"`
	VendorName   string    `json:"vendor_name"`
	JobDescription string  `json:"job_description"`
	WorkLocation string    `json:"work_location"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	ScannedAt    time.Time `json:"scanned_at"`
	// Duplicate flags a repeat scan by the same verifier within the window.
	Duplicate bool `json:"duplicate"`
}

// Scan verifies a QR token presented in the field and appends the scan to
// the audit trail.
func (u *Usecase) Scan(ctx context.Context, verifier *user.User, in ScanInput) (*ScanResult, error) {
	claims, err := u.verifier.Verify(in.Token)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	if err := claims.ValidOn(now); err != nil {
		return nil, err
	}

	s, err := u.subs.GetBySubmissionID(ctx, claims.SubmissionID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if s.ApprovalStatus != domain.ApprovalApproved || s.SimlokNumber == nil {
		return nil, ErrNotApproved
	}

	dup := false
	if last, err := u.scans.LastByScanner(ctx, s.ID, verifier.UserID); err == nil {
		dup = now.Sub(last.ScannedAt) < duplicateWindow
	}

	rec := &qrscan.QrScan{
		ScanID:          id.NewID32(),
		SubmissionRowID: s.ID,
		ScannedBy:       verifier.UserID,
		ScannerName:     verifier.Name,
		Location:        in.Location,
		ScannedAt:       now,
	}
	if err := u.scans.Create(ctx, rec); err != nil {
		return nil, err
	}

	return &ScanResult{
		ScanID:         rec.ScanID,
		SubmissionID:   s.SubmissionID,
		SimlokNumber:   *s.SimlokNumber,
		VendorName:     s.VendorName,
		JobDescription: s.JobDescription,
		WorkLocation:   s.WorkLocation,
		StartDate:      claims.StartDate,
		EndDate:        claims.EndDate,
		ScannedAt:      now,
		Duplicate:      dup,
	}, nil
}

type HistoryItem struct {
	ScanID      string    `json:"scan_id"`
	ScannedBy   string    `json:"scanned_by"`
	ScannerName string    `json:"scanner_name,omitempty"`
	Location    string    `json:"location,omitempty"`
	ScannedAt   time.Time `json:"scanned_at"`
}

// History lists the scan trail of one submission, newest first.
func (u *Usecase) History(ctx context.Context, submissionID string, offset, limit int) ([]HistoryItem, int64, error) {
	s, err := u.subs.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, 0, domain.ErrNotFound
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	rows, total, err := u.scans.ListBySubmission(ctx, s.ID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]HistoryItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, HistoryItem{
			ScanID:      r.ScanID,
			ScannedBy:   r.ScannedBy,
			ScannerName: r.ScannerName,
			Location:    r.Location,
			ScannedAt:   r.ScannedAt,
		})
	}
	return out, total, nil
}
