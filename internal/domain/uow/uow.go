package uow

import (
	"context"

	"simlok-backend/internal/domain/notification"
	"simlok-backend/internal/domain/qrscan"
	"simlok-backend/internal/domain/submission"
)

// Repos bundles the repositories that participate in workflow transactions.
type Repos struct {
	Submissions   submission.Repository
	Scans         qrscan.Repository
	Notifications notification.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the submission row first, then pass it in
	WithinSubmissionTx(ctx context.Context, submissionID string, fn func(r Repos, s *submission.Submission) error) error
}
