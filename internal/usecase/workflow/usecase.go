package workflow

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"simlok-backend/internal/domain/notification"
	domain "simlok-backend/internal/domain/submission"
	"simlok-backend/internal/domain/uow"
	"simlok-backend/internal/domain/user"
)

// QRSigner mints the signed payload embedded in an approved permit's QR code.
type QRSigner interface {
	Mint(submissionID, simlokNumber string, start, end time.Time) (string, error)
}

// EventPublisher pushes lifecycle events to the message broker. A nil
// publisher disables eventing without touching the workflow.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// Event is the broker payload for submission lifecycle changes.
type Event struct {
	Kind         string    `json:"kind"` // reviewed | approved | rejected
	SubmissionID string    `json:"submission_id"`
	SimlokNumber string    `json:"simlok_number,omitempty"`
	Actor        string    `json:"actor"`
	At           time.Time `json:"at"`
}

type Usecase struct {
	uow    uow.UnitOfWork
	signer QRSigner
	events EventPublisher
	now    func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, signer QRSigner, events EventPublisher) *Usecase {
	return &Usecase{uow: tx, signer: signer, events: events, now: time.Now}
}

// WithClock overrides the time source (tests).
func (u *Usecase) WithClock(fn func() time.Time) *Usecase {
	u.now = fn
	return u
}

// Review records the reviewer's verdict. Allowed only while the approval
// decision is pending; the reviewer may flip an earlier verdict.
func (u *Usecase) Review(ctx context.Context, reviewer *user.User, in ReviewInput) (*DecisionDTO, error) {
	if in.Verdict != domain.ReviewMeets && in.Verdict != domain.ReviewNotMeets {
		return nil, fmt.Errorf("invalid review verdict %q", in.Verdict)
	}

	var dto *DecisionDTO
	err := u.uow.WithinSubmissionTx(ctx, in.SubmissionID, func(r uow.Repos, s *domain.Submission) error {
		if s.ApprovalStatus != domain.ApprovalPending {
			return domain.ErrReviewClosed
		}

		now := u.now().UTC()
		s.ReviewStatus = in.Verdict
		s.ReviewNote = in.Note
		s.ReviewedBy = reviewer.UserID
		s.ReviewedAt = &now
		if err := r.Submissions.Save(ctx, s); err != nil {
			return err
		}

		if err := r.Notifications.Create(ctx, &notification.Notification{
			UserID:       s.UserID,
			Type:         notification.TypeReviewed,
			Title:        "Submission reviewed",
			Body:         reviewBody(in.Verdict, in.Note),
			SubmissionID: s.SubmissionID,
		}); err != nil {
			return err
		}

		dto = decisionDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, "reviewed", dto.SubmissionID, "", reviewer.UserID)
	return dto, nil
}

// Approve moves PENDING_APPROVAL -> APPROVED. Requires a MEETS_REQUIREMENTS
// review verdict. Inside one row-locked transaction it assigns the next
// year-scoped SIMLOK number, stamps the signer, mints the QR payload and
// notifies the owning vendor. The number is generated exactly once.
func (u *Usecase) Approve(ctx context.Context, approver *user.User, in DecisionInput) (*DecisionDTO, error) {
	var dto *DecisionDTO
	err := u.uow.WithinSubmissionTx(ctx, in.SubmissionID, func(r uow.Repos, s *domain.Submission) error {
		if s.ApprovalStatus != domain.ApprovalPending {
			return domain.ErrAlreadyDecided
		}
		if s.ReviewStatus != domain.ReviewMeets {
			return domain.ErrNotReviewed
		}

		now := u.now().UTC()
		year := now.Year()
		last, err := r.Submissions.LastSimlokNumber(ctx, year)
		if err != nil {
			return err
		}
		number := NextSimlokNumber(last, year)

		payload, err := u.signer.Mint(s.SubmissionID, number, s.ImplementationStart, s.ImplementationEnd)
		if err != nil {
			return err
		}

		s.ApprovalStatus = domain.ApprovalApproved
		s.ApprovalNote = in.Note
		s.ApprovedBy = approver.UserID
		s.ApprovedAt = &now
		s.SimlokNumber = &number
		s.SignerName = approver.Name
		s.SignerPosition = approver.Position
		s.QRPayload = payload
		if err := r.Submissions.Save(ctx, s); err != nil {
			return err
		}

		if err := r.Notifications.Create(ctx, &notification.Notification{
			UserID:       s.UserID,
			Type:         notification.TypeApproved,
			Title:        "SIMLOK issued",
			Body:         "Your submission was approved with number " + number + ".",
			SubmissionID: s.SubmissionID,
		}); err != nil {
			return err
		}

		dto = decisionDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, "approved", dto.SubmissionID, deref(dto.SimlokNumber), approver.UserID)
	return dto, nil
}

// Reject moves PENDING_APPROVAL -> REJECTED. Terminal; no number is ever
// assigned.
func (u *Usecase) Reject(ctx context.Context, approver *user.User, in DecisionInput) (*DecisionDTO, error) {
	var dto *DecisionDTO
	err := u.uow.WithinSubmissionTx(ctx, in.SubmissionID, func(r uow.Repos, s *domain.Submission) error {
		if s.ApprovalStatus != domain.ApprovalPending {
			return domain.ErrAlreadyDecided
		}

		now := u.now().UTC()
		s.ApprovalStatus = domain.ApprovalRejected
		s.ApprovalNote = in.Note
		s.ApprovedBy = approver.UserID
		s.ApprovedAt = &now
		if err := r.Submissions.Save(ctx, s); err != nil {
			return err
		}

		if err := r.Notifications.Create(ctx, &notification.Notification{
			UserID:       s.UserID,
			Type:         notification.TypeRejected,
			Title:        "Submission rejected",
			Body:         rejectBody(in.Note),
			SubmissionID: s.SubmissionID,
		}); err != nil {
			return err
		}

		dto = decisionDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.publish(ctx, "rejected", dto.SubmissionID, "", approver.UserID)
	return dto, nil
}

// NextSimlokNumber parses the previous "{seq}/SIMLOK/{year}" of the year and
// increments the sequence. An unparsable or empty previous number starts
// the year at 1.
func NextSimlokNumber(last string, year int) string {
	seq := 1
	if last != "" {
		head, _, found := strings.Cut(last, "/")
		if found {
			if n, err := strconv.Atoi(head); err == nil && n > 0 {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%d/SIMLOK/%d", seq, year)
}

// publish runs after the transaction commits; broker failures are logged,
// never surfaced to the caller.
func (u *Usecase) publish(ctx context.Context, kind, submissionID, number, actor string) {
	if u.events == nil {
		return
	}
	evt := Event{Kind: kind, SubmissionID: submissionID, SimlokNumber: number, Actor: actor, At: u.now().UTC()}
	if err := u.events.Publish(ctx, submissionID, evt); err != nil {
		log.Printf("workflow: publish %s event for %s: %v", kind, submissionID, err)
	}
}

func reviewBody(verdict domain.ReviewStatus, note string) string {
	b := "Your submission "
	if verdict == domain.ReviewMeets {
		b += "meets the requirements and is awaiting approval."
	} else {
		b += "does not meet the requirements."
	}
	if note != "" {
		b += " Note: " + note
	}
	return b
}

func rejectBody(note string) string {
	b := "Your submission was rejected."
	if note != "" {
		b += " Note: " + note
	}
	return b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
