package submission

import (
	"context"
	"errors"

	domain "simlok-backend/internal/domain/submission"
	"simlok-backend/internal/domain/user"
	"simlok-backend/pkg/id"
)

type Usecase struct {
	repo domain.Repository
}

func NewUsecase(repo domain.Repository) *Usecase { return &Usecase{repo: repo} }

// Create registers a new permit request owned by the acting vendor. It
// starts PENDING_REVIEW / PENDING_APPROVAL.
func (u *Usecase) Create(ctx context.Context, actor *user.User, in CreateInput) (*SubmissionDTO, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	s := &domain.Submission{
		SubmissionID:        id.NewID32(),
		UserID:              actor.ID,
		VendorName:          in.VendorName,
		OfficerName:         in.OfficerName,
		JobDescription:      in.JobDescription,
		WorkLocation:        in.WorkLocation,
		WorkingHours:        in.WorkingHours,
		ImplementationStart: in.ImplementationStart,
		ImplementationEnd:   in.ImplementationEnd,
		ReviewStatus:        domain.ReviewPending,
		ApprovalStatus:      domain.ApprovalPending,
		Workers:             buildWorkers(in.Workers),
		Documents:           buildDocuments(in.Documents),
	}
	if s.VendorName == "" {
		s.VendorName = actor.VendorName
	}

	if err := u.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toDTO(s), nil
}

// Get returns one submission, enforcing visibility: vendors see only their
// own rows; workflow roles and admins see everything.
func (u *Usecase) Get(ctx context.Context, actor *user.User, submissionID string) (*SubmissionDTO, error) {
	s, err := u.repo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if err := checkVisibility(actor, s); err != nil {
		return nil, err
	}
	return toDTO(s), nil
}

// GetEntity returns the underlying record with the same visibility rules as
// Get. The permit renderer works on the entity, not the DTO.
func (u *Usecase) GetEntity(ctx context.Context, actor *user.User, submissionID string) (*domain.Submission, error) {
	s, err := u.repo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if err := checkVisibility(actor, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns a role-scoped page of submissions.
func (u *Usecase) List(ctx context.Context, actor *user.User, in ListInput) (*ListResult, error) {
	page, perPage := normalizePage(in.Page, in.PerPage)

	f := domain.ListFilter{
		ReviewStatus:   domain.ReviewStatus(in.ReviewStatus),
		ApprovalStatus: domain.ApprovalStatus(in.ApprovalStatus),
		Search:         in.Search,
		Offset:         (page - 1) * perPage,
		Limit:          perPage,
	}
	if actor.Role == user.RoleVendor {
		f.OwnerID = actor.ID
	}

	rows, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &ListResult{Items: make([]SubmissionDTO, 0, len(rows)), Total: total, Page: page, PerPage: perPage}
	for i := range rows {
		out.Items = append(out.Items, *toDTO(&rows[i]))
	}
	return out, nil
}

// Update replaces the submission fields and child rows. Only the owning
// vendor may update, and only while the approval decision is still pending.
func (u *Usecase) Update(ctx context.Context, actor *user.User, submissionID string, in UpdateInput) (*SubmissionDTO, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	s, err := u.repo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if s.UserID != actor.ID {
		return nil, domain.ErrNotOwner
	}
	if !s.Editable() {
		return nil, domain.ErrLocked
	}

	s.VendorName = in.VendorName
	s.OfficerName = in.OfficerName
	s.JobDescription = in.JobDescription
	s.WorkLocation = in.WorkLocation
	s.WorkingHours = in.WorkingHours
	s.ImplementationStart = in.ImplementationStart
	s.ImplementationEnd = in.ImplementationEnd
	// An edit resets the review verdict; the reviewer must look again.
	s.ReviewStatus = domain.ReviewPending
	s.ReviewNote = ""
	s.ReviewedBy = ""
	s.ReviewedAt = nil

	if err := u.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	if err := u.repo.ReplaceWorkers(ctx, s.ID, buildWorkers(in.Workers)); err != nil {
		return nil, err
	}
	if err := u.repo.ReplaceDocuments(ctx, s.ID, buildDocuments(in.Documents)); err != nil {
		return nil, err
	}
	return u.Get(ctx, actor, submissionID)
}

// Delete removes a submission. Vendors may delete only their own pending
// rows; super admin may delete anything not yet approved. Approved permits
// are permanent records.
func (u *Usecase) Delete(ctx context.Context, actor *user.User, submissionID string) error {
	s, err := u.repo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return domain.ErrNotFound
	}
	if s.ApprovalStatus == domain.ApprovalApproved {
		return domain.ErrDeleteApproved
	}
	if actor.Role != user.RoleSuperAdmin {
		if s.UserID != actor.ID {
			return domain.ErrNotOwner
		}
		if !s.Editable() {
			return domain.ErrLocked
		}
	}
	return u.repo.Delete(ctx, s)
}

// Stats returns the dashboard counters scoped to the actor's visibility.
func (u *Usecase) Stats(ctx context.Context, actor *user.User) (*domain.Stats, error) {
	var owner uint64
	if actor.Role == user.RoleVendor {
		owner = actor.ID
	}
	return u.repo.Stats(ctx, owner)
}

func checkVisibility(actor *user.User, s *domain.Submission) error {
	switch actor.Role {
	case user.RoleVendor:
		if s.UserID != actor.ID {
			return domain.ErrNotOwner
		}
	case user.RoleReviewer, user.RoleApprover, user.RoleVerifier, user.RoleSuperAdmin:
		// full visibility
	default:
		return domain.ErrNotOwner
	}
	return nil
}

func validateInput(in CreateInput) error {
	switch {
	case in.OfficerName == "", in.JobDescription == "", in.WorkLocation == "", in.WorkingHours == "":
		return errors.New("invalid input")
	case in.ImplementationStart.IsZero(), in.ImplementationEnd.IsZero():
		return errors.New("implementation dates are required")
	case in.ImplementationEnd.Before(in.ImplementationStart):
		return errors.New("implementation end before start")
	case len(in.Workers) == 0:
		return errors.New("at least one worker is required")
	}
	for _, d := range in.Documents {
		if !domain.DocumentType(d.DocType).Valid() {
			return errors.New("unknown document type: " + d.DocType)
		}
	}
	return nil
}

func buildWorkers(in []WorkerInput) []domain.Worker {
	out := make([]domain.Worker, 0, len(in))
	for _, w := range in {
		dw := domain.Worker{
			WorkerID:      id.NewID32(),
			Name:          w.Name,
			PhotoPath:     w.PhotoPath,
			HSSEPassValid: w.HSSEPassValid,
		}
		if w.HSSEPassNumber != "" {
			n := w.HSSEPassNumber
			dw.HSSEPassNumber = &n
		}
		out = append(out, dw)
	}
	return out
}

func buildDocuments(in []DocumentInput) []domain.SupportDocument {
	out := make([]domain.SupportDocument, 0, len(in))
	for _, d := range in {
		out = append(out, domain.SupportDocument{
			DocType:   domain.DocumentType(d.DocType),
			DocNumber: d.DocNumber,
			DocDate:   d.DocDate,
			FilePath:  d.FilePath,
		})
	}
	return out
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
