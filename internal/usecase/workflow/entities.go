package workflow

import (
	"time"

	domain "simlok-backend/internal/domain/submission"
)

type ReviewInput struct {
	SubmissionID string
	Verdict      domain.ReviewStatus
	Note         string
}

type DecisionInput struct {
	SubmissionID string
	Note         string
}

type DecisionDTO struct {
	SubmissionID   string     `json:"submission_id"`
	ReviewStatus   string     `json:"review_status"`
	ApprovalStatus string     `json:"approval_status"`
	SimlokNumber   *string    `json:"simlok_number"`
	SignerName     string     `json:"signer_name,omitempty"`
	SignerPosition string     `json:"signer_position,omitempty"`
	QRPayload      string     `json:"qr_payload,omitempty"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
}

func decisionDTO(s *domain.Submission) *DecisionDTO {
	at := s.ApprovedAt
	if at == nil {
		at = s.ReviewedAt
	}
	return &DecisionDTO{
		SubmissionID:   s.SubmissionID,
		ReviewStatus:   string(s.ReviewStatus),
		ApprovalStatus: string(s.ApprovalStatus),
		SimlokNumber:   s.SimlokNumber,
		SignerName:     s.SignerName,
		SignerPosition: s.SignerPosition,
		QRPayload:      s.QRPayload,
		DecidedAt:      at,
	}
}
