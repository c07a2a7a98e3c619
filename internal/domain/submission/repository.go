package submission

import "context"

type ListFilter struct {
	// OwnerID scopes the listing to one vendor (0 = all).
	OwnerID        uint64
	ReviewStatus   ReviewStatus
	ApprovalStatus ApprovalStatus
	Search         string // matches vendor/officer/job description
	Offset         int
	Limit          int
}

// Stats are the dashboard counters for one role's view.
type Stats struct {
	Total           int64 `json:"total"`
	PendingReview   int64 `json:"pending_review"`
	PendingApproval int64 `json:"pending_approval"`
	Approved        int64 `json:"approved"`
	Rejected        int64 `json:"rejected"`
}

type Repository interface {
	// Create persists the submission together with its workers and
	// support documents.
	Create(ctx context.Context, s *Submission) error
	GetBySubmissionID(ctx context.Context, submissionID string) (*Submission, error)
	// GetBySubmissionIDForUpdate locks the row for the enclosing transaction.
	GetBySubmissionIDForUpdate(ctx context.Context, submissionID string) (*Submission, error)
	List(ctx context.Context, f ListFilter) ([]Submission, int64, error)
	Save(ctx context.Context, s *Submission) error
	// ReplaceWorkers / ReplaceDocuments swap the child rows wholesale.
	ReplaceWorkers(ctx context.Context, submissionRowID uint64, workers []Worker) error
	ReplaceDocuments(ctx context.Context, submissionRowID uint64, docs []SupportDocument) error
	Delete(ctx context.Context, s *Submission) error
	// LastSimlokNumber returns the most recently assigned number of the
	// given year, or "" when the year has none yet.
	LastSimlokNumber(ctx context.Context, year int) (string, error)
	Stats(ctx context.Context, ownerID uint64) (*Stats, error)
}
