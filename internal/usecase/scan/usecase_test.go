package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"simlok-backend/internal/domain/qrscan"
	domain "simlok-backend/internal/domain/submission"
	"simlok-backend/internal/domain/user"
	"simlok-backend/internal/qr"
	"simlok-backend/internal/testutil/qrscanmock"
	"simlok-backend/internal/testutil/submissionmock"
)

type fakeVerifier struct {
	claims *qr.Claims
	err    error
}

func (f *fakeVerifier) Verify(token string) (*qr.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func verifierUser() *user.User {
	return &user.User{ID: 5, UserID: "vf000000000000000000000000000000", Name: "Dewi", Role: user.RoleVerifier, Verified: true}
}

func approvedSubmission() *domain.Submission {
	num := "12/SIMLOK/2026"
	return &domain.Submission{
		ID:             7,
		SubmissionID:   "sub00000000000000000000000000007",
		VendorName:     "PT Maju Jaya",
		JobDescription: "pipe rack maintenance",
		WorkLocation:   "Area 3",
		ApprovalStatus: domain.ApprovalApproved,
		SimlokNumber:   &num,
	}
}

func validClaims() *qr.Claims {
	return &qr.Claims{
		SubmissionID: "sub00000000000000000000000000007",
		SimlokNumber: "12/SIMLOK/2026",
		StartDate:    "2026-03-01",
		EndDate:      "2026-03-31",
	}
}

func TestUsecase_Scan(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("valid token appends exactly one scan", func(t *testing.T) {
		var created []qrscan.QrScan
		subs := &submissionmock.Repo{
			GetBySubmissionIDFn: func(ctx context.Context, id string) (*domain.Submission, error) {
				return approvedSubmission(), nil
			},
		}
		scans := &qrscanmock.Repo{
			CreateFn: func(ctx context.Context, s *qrscan.QrScan) error {
				created = append(created, *s)
				return nil
			},
		}
		uc := NewUsecase(subs, scans, &fakeVerifier{claims: validClaims()}).
			WithClock(func() time.Time { return now })

		res, err := uc.Scan(context.Background(), verifierUser(), ScanInput{Token: "tok", Location: "Gate B"})
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if len(created) != 1 {
			t.Fatalf("created %d scan rows, want 1", len(created))
		}
		if created[0].SubmissionRowID != 7 || created[0].ScannedBy != "vf000000000000000000000000000000" {
			t.Fatalf("scan row wrong: %+v", created[0])
		}
		if created[0].Location != "Gate B" {
			t.Fatalf("location = %q", created[0].Location)
		}
		if res.SimlokNumber != "12/SIMLOK/2026" || res.Duplicate {
			t.Fatalf("result wrong: %+v", res)
		}
	})

	t.Run("repeat scan within window is flagged but still recorded", func(t *testing.T) {
		var createdCount int
		subs := &submissionmock.Repo{
			GetBySubmissionIDFn: func(ctx context.Context, id string) (*domain.Submission, error) {
				return approvedSubmission(), nil
			},
		}
		scans := &qrscanmock.Repo{
			LastByScannerFn: func(ctx context.Context, rowID uint64, by string) (*qrscan.QrScan, error) {
				return &qrscan.QrScan{ScannedAt: now.Add(-2 * time.Minute)}, nil
			},
			CreateFn: func(ctx context.Context, s *qrscan.QrScan) error {
				createdCount++
				return nil
			},
		}
		uc := NewUsecase(subs, scans, &fakeVerifier{claims: validClaims()}).
			WithClock(func() time.Time { return now })

		res, err := uc.Scan(context.Background(), verifierUser(), ScanInput{Token: "tok"})
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if !res.Duplicate {
			t.Fatal("expected duplicate flag")
		}
		if createdCount != 1 {
			t.Fatalf("created %d rows, want 1 (append-only, duplicates still recorded)", createdCount)
		}
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		uc := NewUsecase(&submissionmock.Repo{}, &qrscanmock.Repo{}, &fakeVerifier{err: qr.ErrInvalidToken}).
			WithClock(func() time.Time { return now })
		if _, err := uc.Scan(context.Background(), verifierUser(), ScanInput{Token: "bad"}); !errors.Is(err, qr.ErrInvalidToken) {
			t.Fatalf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("scan before implementation start rejected", func(t *testing.T) {
		claims := validClaims()
		claims.StartDate = "2026-03-20"
		uc := NewUsecase(&submissionmock.Repo{}, &qrscanmock.Repo{}, &fakeVerifier{claims: claims}).
			WithClock(func() time.Time { return now })
		if _, err := uc.Scan(context.Background(), verifierUser(), ScanInput{Token: "tok"}); !errors.Is(err, qr.ErrOutsideRange) {
			t.Fatalf("err = %v, want ErrOutsideRange", err)
		}
	})

	t.Run("non-approved submission rejected", func(t *testing.T) {
		subs := &submissionmock.Repo{
			GetBySubmissionIDFn: func(ctx context.Context, id string) (*domain.Submission, error) {
				s := approvedSubmission()
				s.ApprovalStatus = domain.ApprovalPending
				s.SimlokNumber = nil
				return s, nil
			},
		}
		uc := NewUsecase(subs, &qrscanmock.Repo{}, &fakeVerifier{claims: validClaims()}).
			WithClock(func() time.Time { return now })
		if _, err := uc.Scan(context.Background(), verifierUser(), ScanInput{Token: "tok"}); !errors.Is(err, ErrNotApproved) {
			t.Fatalf("err = %v, want ErrNotApproved", err)
		}
	})
}
