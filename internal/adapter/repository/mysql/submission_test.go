package mysql

import (
	"context"
	"testing"
	"time"

	domain "simlok-backend/internal/domain/submission"
	"simlok-backend/internal/domain/uow"
	"simlok-backend/pkg/id"
)

func makeSubmission(owner uint64) *domain.Submission {
	return &domain.Submission{
		SubmissionID:        id.NewID32(),
		UserID:              owner,
		VendorName:          "PT Maju Jaya",
		OfficerName:         "Pak Agus",
		JobDescription:      "scaffolding erection",
		WorkLocation:        "Area 3",
		WorkingHours:        "08:00-16:00",
		ImplementationStart: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		ImplementationEnd:   time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		ReviewStatus:        domain.ReviewPending,
		ApprovalStatus:      domain.ApprovalPending,
		Workers: []domain.Worker{
			{WorkerID: id.NewID32(), Name: "Andi"},
			{WorkerID: id.NewID32(), Name: "Budi"},
		},
		Documents: []domain.SupportDocument{
			{DocType: domain.DocSIKA, DocNumber: "SK-1", DocDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestSubmissionRepository_CreateAndGetWithChildren(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	s := makeSubmission(3)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == 0 {
		t.Fatal("Create did not set auto-increment ID")
	}

	got, err := repo.GetBySubmissionID(ctx, s.SubmissionID)
	if err != nil {
		t.Fatalf("GetBySubmissionID: %v", err)
	}
	if len(got.Workers) != 2 || len(got.Documents) != 1 {
		t.Fatalf("children not loaded: %d workers, %d docs", len(got.Workers), len(got.Documents))
	}
	if got.SimlokNumber != nil {
		t.Fatal("new submission carries a simlok number")
	}
}

func TestSubmissionRepository_ReplaceWorkers(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	s := makeSubmission(3)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.ReplaceWorkers(ctx, s.ID, []domain.Worker{
		{WorkerID: id.NewID32(), Name: "Citra"},
	})
	if err != nil {
		t.Fatalf("ReplaceWorkers: %v", err)
	}

	got, err := repo.GetBySubmissionID(ctx, s.SubmissionID)
	if err != nil {
		t.Fatalf("GetBySubmissionID: %v", err)
	}
	if len(got.Workers) != 1 || got.Workers[0].Name != "Citra" {
		t.Fatalf("workers after replace: %+v", got.Workers)
	}
}

func TestSubmissionRepository_LastSimlokNumber(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	// Empty year.
	last, err := repo.LastSimlokNumber(ctx, 2026)
	if err != nil {
		t.Fatalf("LastSimlokNumber: %v", err)
	}
	if last != "" {
		t.Fatalf("expected empty, got %q", last)
	}

	approve := func(num string, at time.Time) {
		s := makeSubmission(3)
		s.ApprovalStatus = domain.ApprovalApproved
		s.SimlokNumber = &num
		s.ApprovedAt = &at
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create(%s): %v", num, err)
		}
	}
	approve("1/SIMLOK/2026", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	approve("2/SIMLOK/2026", time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC))
	approve("7/SIMLOK/2025", time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC))

	last, err = repo.LastSimlokNumber(ctx, 2026)
	if err != nil {
		t.Fatalf("LastSimlokNumber: %v", err)
	}
	if last != "2/SIMLOK/2026" {
		t.Fatalf("last = %q, want 2/SIMLOK/2026 (other years must not bleed in)", last)
	}
}

func TestSubmissionRepository_ListFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	a := makeSubmission(3)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	b := makeSubmission(9)
	b.ApprovalStatus = domain.ApprovalRejected
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rows, total, err := repo.List(ctx, domain.ListFilter{OwnerID: 3, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].UserID != 3 {
		t.Fatalf("owner filter: total=%d rows=%d", total, len(rows))
	}

	rows, total, err = repo.List(ctx, domain.ListFilter{ApprovalStatus: domain.ApprovalRejected, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || rows[0].SubmissionID != b.SubmissionID {
		t.Fatalf("status filter: total=%d", total)
	}
}

func TestSubmissionRepository_Stats(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeSubmission(3)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	approved := makeSubmission(3)
	num := "1/SIMLOK/2026"
	approved.ApprovalStatus = domain.ApprovalApproved
	approved.ReviewStatus = domain.ReviewMeets
	approved.SimlokNumber = &num
	if err := repo.Create(ctx, approved); err != nil {
		t.Fatalf("Create: %v", err)
	}

	st, err := repo.Stats(ctx, 0)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Total != 2 || st.PendingReview != 1 || st.PendingApproval != 1 || st.Approved != 1 || st.Rejected != 0 {
		t.Fatalf("stats = %+v", st)
	}

	st, err = repo.Stats(ctx, 999)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Total != 0 {
		t.Fatalf("owner-scoped stats leaked rows: %+v", st)
	}
}

func TestGormUoW_WithinSubmissionTx(t *testing.T) {
	db := openTestDB(t)
	repo := NewSubmissionRepository(db)
	u := NewGormUoW(db)
	ctx := context.Background()

	s := makeSubmission(3)
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Mutations inside the tx are visible after commit.
	err := u.WithinSubmissionTx(ctx, s.SubmissionID, func(r uow.Repos, locked *domain.Submission) error {
		if locked.ID != s.ID {
			t.Fatalf("locked wrong row: %d", locked.ID)
		}
		locked.ApprovalStatus = domain.ApprovalRejected
		return r.Submissions.Save(ctx, locked)
	})
	if err != nil {
		t.Fatalf("WithinSubmissionTx: %v", err)
	}

	got, err := repo.GetBySubmissionID(ctx, s.SubmissionID)
	if err != nil {
		t.Fatalf("GetBySubmissionID: %v", err)
	}
	if got.ApprovalStatus != domain.ApprovalRejected {
		t.Fatalf("status = %q, want REJECTED", got.ApprovalStatus)
	}

	// Unknown id maps to the domain sentinel.
	err = u.WithinSubmissionTx(ctx, "does-not-exist", func(r uow.Repos, _ *domain.Submission) error { return nil })
	if err != domain.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
