package submissionmock

import (
	"context"

	domain "simlok-backend/internal/domain/submission"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies submission.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn                     func(ctx context.Context, s *domain.Submission) error
	GetBySubmissionIDFn          func(ctx context.Context, submissionID string) (*domain.Submission, error)
	GetBySubmissionIDForUpdateFn func(ctx context.Context, submissionID string) (*domain.Submission, error)
	ListFn                       func(ctx context.Context, f domain.ListFilter) ([]domain.Submission, int64, error)
	SaveFn                       func(ctx context.Context, s *domain.Submission) error
	ReplaceWorkersFn             func(ctx context.Context, submissionRowID uint64, workers []domain.Worker) error
	ReplaceDocumentsFn           func(ctx context.Context, submissionRowID uint64, docs []domain.SupportDocument) error
	DeleteFn                     func(ctx context.Context, s *domain.Submission) error
	LastSimlokNumberFn           func(ctx context.Context, year int) (string, error)
	StatsFn                      func(ctx context.Context, ownerID uint64) (*domain.Stats, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Submission) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.Submission, error) {
	if m.GetBySubmissionIDFn != nil {
		return m.GetBySubmissionIDFn(ctx, submissionID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetBySubmissionIDForUpdate(ctx context.Context, submissionID string) (*domain.Submission, error) {
	if m.GetBySubmissionIDForUpdateFn != nil {
		return m.GetBySubmissionIDForUpdateFn(ctx, submissionID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Submission, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, nil
}

func (m *Repo) Save(ctx context.Context, s *domain.Submission) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

func (m *Repo) ReplaceWorkers(ctx context.Context, submissionRowID uint64, workers []domain.Worker) error {
	if m.ReplaceWorkersFn != nil {
		return m.ReplaceWorkersFn(ctx, submissionRowID, workers)
	}
	return nil
}

func (m *Repo) ReplaceDocuments(ctx context.Context, submissionRowID uint64, docs []domain.SupportDocument) error {
	if m.ReplaceDocumentsFn != nil {
		return m.ReplaceDocumentsFn(ctx, submissionRowID, docs)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, s *domain.Submission) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, s)
	}
	return nil
}

func (m *Repo) LastSimlokNumber(ctx context.Context, year int) (string, error) {
	if m.LastSimlokNumberFn != nil {
		return m.LastSimlokNumberFn(ctx, year)
	}
	return "", nil
}

func (m *Repo) Stats(ctx context.Context, ownerID uint64) (*domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx, ownerID)
	}
	return &domain.Stats{}, nil
}
