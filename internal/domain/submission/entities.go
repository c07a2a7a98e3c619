package submission

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("submission not found")
	// ErrLocked: vendor mutation attempted after the approval decision.
	ErrLocked = errors.New("submission is no longer editable")
	// ErrNotOwner: vendor touching somebody else's row.
	ErrNotOwner = errors.New("submission belongs to another vendor")
	// ErrNotReviewed: approval attempted before a MEETS_REQUIREMENTS verdict.
	ErrNotReviewed = errors.New("submission has not passed review")
	// ErrAlreadyDecided: approve/reject on a non-pending submission.
	ErrAlreadyDecided = errors.New("submission already approved or rejected")
	// ErrReviewClosed: review verdict after the approval decision landed.
	ErrReviewClosed = errors.New("review is closed after the approval decision")
	// ErrDeleteApproved: approved permits are permanent records.
	ErrDeleteApproved = errors.New("approved submission cannot be deleted")
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING_REVIEW"
	ReviewMeets    ReviewStatus = "MEETS_REQUIREMENTS"
	ReviewNotMeets ReviewStatus = "NOT_MEETS_REQUIREMENTS"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING_APPROVAL"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

type DocumentType string

const (
	DocSIMJA        DocumentType = "SIMJA"
	DocSIKA         DocumentType = "SIKA"
	DocWorkOrder    DocumentType = "WORK_ORDER"
	DocKontrakKerja DocumentType = "KONTRAK_KERJA"
	DocJSA          DocumentType = "JSA"
)

// Valid reports whether t is one of the accepted support document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocSIMJA, DocSIKA, DocWorkOrder, DocKontrakKerja, DocJSA:
		return true
	}
	return false
}

type Submission struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Public identifier (32-char lowercase hex)
	SubmissionID string `gorm:"column:submission_id;type:char(32);not null;uniqueIndex:ux_submissions_submission_id"`
	// FK to users.id: the owning vendor
	UserID uint64 `gorm:"column:user_id;not null;index"`

	VendorName     string `gorm:"column:vendor_name;size:191;not null"`
	OfficerName    string `gorm:"column:officer_name;size:191;not null"`
	JobDescription string `gorm:"column:job_description;type:text;not null"`
	WorkLocation   string `gorm:"column:work_location;size:191;not null"`
	WorkingHours   string `gorm:"column:working_hours;size:64;not null"`

	ImplementationStart time.Time `gorm:"column:implementation_start;type:date;not null"`
	ImplementationEnd   time.Time `gorm:"column:implementation_end;type:date;not null"`

	ReviewStatus ReviewStatus `gorm:"column:review_status;type:varchar(24);not null;default:'PENDING_REVIEW';index"`
	ReviewNote   string       `gorm:"column:review_note;type:text"`
	ReviewedBy   string       `gorm:"column:reviewed_by;type:char(32)"`
	ReviewedAt   *time.Time   `gorm:"column:reviewed_at"`

	ApprovalStatus ApprovalStatus `gorm:"column:approval_status;type:varchar(18);not null;default:'PENDING_APPROVAL';index"`
	ApprovalNote   string         `gorm:"column:approval_note;type:text"`
	ApprovedBy     string         `gorm:"column:approved_by;type:char(32)"`
	ApprovedAt     *time.Time     `gorm:"column:approved_at"`

	// Assigned exactly once, on the APPROVED transition. Sequential within
	// the approval year ("{seq}/SIMLOK/{year}").
	SimlokNumber   *string `gorm:"column:simlok_number;size:64;uniqueIndex:ux_submissions_simlok_number"`
	SignerName     string  `gorm:"column:signer_name;size:191"`
	SignerPosition string  `gorm:"column:signer_position;size:191"`
	// Signed JWT embedded in the permit QR code; present iff APPROVED.
	QRPayload string `gorm:"column:qr_payload;type:text"`

	Workers   []Worker          `gorm:"foreignKey:SubmissionRowID;references:ID"`
	Documents []SupportDocument `gorm:"foreignKey:SubmissionRowID;references:ID"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Submission) TableName() string { return "submissions" }

// Editable reports whether the owning vendor may still mutate the row.
func (s *Submission) Editable() bool { return s.ApprovalStatus == ApprovalPending }

type Worker struct {
	ID              uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	WorkerID        string `gorm:"column:worker_id;type:char(32);not null;uniqueIndex:ux_workers_worker_id"`
	SubmissionRowID uint64 `gorm:"column:submission_row_id;not null;index"`
	Name            string `gorm:"column:name;size:191;not null"`
	PhotoPath       string `gorm:"column:photo_path;type:text"`
	// HSSE pass fields are optional per worker
	HSSEPassNumber *string    `gorm:"column:hsse_pass_number;size:64"`
	HSSEPassValid  *time.Time `gorm:"column:hsse_pass_valid_until;type:date"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Worker) TableName() string { return "worker_lists" }

type SupportDocument struct {
	ID              uint64       `gorm:"column:id;primaryKey;autoIncrement"`
	SubmissionRowID uint64       `gorm:"column:submission_row_id;not null;index"`
	DocType         DocumentType `gorm:"column:doc_type;type:varchar(16);not null"`
	DocNumber       string       `gorm:"column:doc_number;size:128;not null"`
	DocDate         time.Time    `gorm:"column:doc_date;type:date;not null"`
	FilePath        string       `gorm:"column:file_path;type:text"`
	CreatedAt       time.Time    `gorm:"column:created_at;autoCreateTime"`
}

func (SupportDocument) TableName() string { return "support_documents" }
