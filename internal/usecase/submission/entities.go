package submission

import (
	"time"

	domain "simlok-backend/internal/domain/submission"
)

type WorkerInput struct {
	Name           string
	PhotoPath      string
	HSSEPassNumber string
	HSSEPassValid  *time.Time
}

type DocumentInput struct {
	DocType   string
	DocNumber string
	DocDate   time.Time
	FilePath  string
}

type CreateInput struct {
	VendorName          string
	OfficerName         string
	JobDescription      string
	WorkLocation        string
	WorkingHours        string
	ImplementationStart time.Time
	ImplementationEnd   time.Time
	Workers             []WorkerInput
	Documents           []DocumentInput
}

// UpdateInput mirrors CreateInput; child rows are replaced wholesale.
type UpdateInput = CreateInput

type ListInput struct {
	ReviewStatus   string
	ApprovalStatus string
	Search         string
	Page           int
	PerPage        int
}

type WorkerDTO struct {
	WorkerID       string     `json:"worker_id"`
	Name           string     `json:"name"`
	PhotoPath      string     `json:"photo_path,omitempty"`
	HSSEPassNumber string     `json:"hsse_pass_number,omitempty"`
	HSSEPassValid  *time.Time `json:"hsse_pass_valid_until,omitempty"`
}

type DocumentDTO struct {
	DocType   string    `json:"doc_type"`
	DocNumber string    `json:"doc_number"`
	DocDate   time.Time `json:"doc_date"`
	FilePath  string    `json:"file_path,omitempty"`
}

type SubmissionDTO struct {
	SubmissionID        string        `json:"submission_id"`
	VendorName          string        `json:"vendor_name"`
	OfficerName         string        `json:"officer_name"`
	JobDescription      string        `json:"job_description"`
	WorkLocation        string        `json:"work_location"`
	WorkingHours        string        `json:"working_hours"`
	ImplementationStart time.Time     `json:"implementation_start"`
	ImplementationEnd   time.Time     `json:"implementation_end"`
	ReviewStatus        string        `json:"review_status"`
	ReviewNote          string        `json:"review_note,omitempty"`
	ApprovalStatus      string        `json:"approval_status"`
	ApprovalNote        string        `json:"approval_note,omitempty"`
	SimlokNumber        *string       `json:"simlok_number"`
	SignerName          string        `json:"signer_name,omitempty"`
	SignerPosition      string        `json:"signer_position,omitempty"`
	QRPayload           string        `json:"qr_payload,omitempty"`
	Workers             []WorkerDTO   `json:"workers"`
	Documents           []DocumentDTO `json:"documents"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

type ListResult struct {
	Items   []SubmissionDTO `json:"items"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

func toDTO(s *domain.Submission) *SubmissionDTO {
	dto := &SubmissionDTO{
		SubmissionID:        s.SubmissionID,
		VendorName:          s.VendorName,
		OfficerName:         s.OfficerName,
		JobDescription:      s.JobDescription,
		WorkLocation:        s.WorkLocation,
		WorkingHours:        s.WorkingHours,
		ImplementationStart: s.ImplementationStart,
		ImplementationEnd:   s.ImplementationEnd,
		ReviewStatus:        string(s.ReviewStatus),
		ReviewNote:          s.ReviewNote,
		ApprovalStatus:      string(s.ApprovalStatus),
		ApprovalNote:        s.ApprovalNote,
		SimlokNumber:        s.SimlokNumber,
		SignerName:          s.SignerName,
		SignerPosition:      s.SignerPosition,
		QRPayload:           s.QRPayload,
		Workers:             make([]WorkerDTO, 0, len(s.Workers)),
		Documents:           make([]DocumentDTO, 0, len(s.Documents)),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
	for _, w := range s.Workers {
		d := WorkerDTO{WorkerID: w.WorkerID, Name: w.Name, PhotoPath: w.PhotoPath, HSSEPassValid: w.HSSEPassValid}
		if w.HSSEPassNumber != nil {
			d.HSSEPassNumber = *w.HSSEPassNumber
		}
		dto.Workers = append(dto.Workers, d)
	}
	for _, doc := range s.Documents {
		dto.Documents = append(dto.Documents, DocumentDTO{
			DocType:   string(doc.DocType),
			DocNumber: doc.DocNumber,
			DocDate:   doc.DocDate,
			FilePath:  doc.FilePath,
		})
	}
	return dto
}
