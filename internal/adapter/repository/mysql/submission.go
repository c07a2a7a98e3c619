package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	subDomain "simlok-backend/internal/domain/submission"
)

type SubmissionRepository struct{ db *gorm.DB }

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository { return &SubmissionRepository{db: db} }

func (r *SubmissionRepository) Create(ctx context.Context, s *subDomain.Submission) error {
	// Workers and documents ride along via the association.
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SubmissionRepository) Save(ctx context.Context, s *subDomain.Submission) error {
	// Child rows are managed explicitly via ReplaceWorkers/ReplaceDocuments.
	return r.db.WithContext(ctx).Omit("Workers", "Documents").Save(s).Error
}

func (r *SubmissionRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*subDomain.Submission, error) {
	var out subDomain.Submission
	res := r.db.WithContext(ctx).
		Preload("Workers").
		Preload("Documents").
		Where("submission_id = ?", submissionID).
		First(&out)
	return &out, res.Error
}

func (r *SubmissionRepository) GetBySubmissionIDForUpdate(ctx context.Context, submissionID string) (*subDomain.Submission, error) {
	var out subDomain.Submission
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("submission_id = ?", submissionID).
		First(&out)
	return &out, res.Error
}

func (r *SubmissionRepository) List(ctx context.Context, f subDomain.ListFilter) ([]subDomain.Submission, int64, error) {
	q := r.db.WithContext(ctx).Model(&subDomain.Submission{})
	if f.OwnerID != 0 {
		q = q.Where("user_id = ?", f.OwnerID)
	}
	if f.ReviewStatus != "" {
		q = q.Where("review_status = ?", f.ReviewStatus)
	}
	if f.ApprovalStatus != "" {
		q = q.Where("approval_status = ?", f.ApprovalStatus)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("vendor_name LIKE ? OR officer_name LIKE ? OR job_description LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []subDomain.Submission
	err := q.Preload("Workers").Preload("Documents").
		Order("id DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *SubmissionRepository) ReplaceWorkers(ctx context.Context, submissionRowID uint64, workers []subDomain.Worker) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_row_id = ?", submissionRowID).Delete(&subDomain.Worker{}).Error; err != nil {
			return err
		}
		if len(workers) == 0 {
			return nil
		}
		for i := range workers {
			workers[i].ID = 0
			workers[i].SubmissionRowID = submissionRowID
		}
		return tx.Create(&workers).Error
	})
}

func (r *SubmissionRepository) ReplaceDocuments(ctx context.Context, submissionRowID uint64, docs []subDomain.SupportDocument) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("submission_row_id = ?", submissionRowID).Delete(&subDomain.SupportDocument{}).Error; err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		for i := range docs {
			docs[i].ID = 0
			docs[i].SubmissionRowID = submissionRowID
		}
		return tx.Create(&docs).Error
	})
}

func (r *SubmissionRepository) Delete(ctx context.Context, s *subDomain.Submission) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

// LastSimlokNumber returns the highest-sequence number assigned in the year.
// Numbers are "{seq}/SIMLOK/{year}"; approval order and id order coincide
// because assignment happens inside the approval transaction.
func (r *SubmissionRepository) LastSimlokNumber(ctx context.Context, year int) (string, error) {
	var out subDomain.Submission
	res := r.db.WithContext(ctx).
		Where("simlok_number LIKE ?", fmt.Sprintf("%%/SIMLOK/%d", year)).
		Order("approved_at DESC, id DESC").
		First(&out)
	if res.Error != nil {
		if res.Error == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", res.Error
	}
	if out.SimlokNumber == nil {
		return "", nil
	}
	return *out.SimlokNumber, nil
}

func (r *SubmissionRepository) Stats(ctx context.Context, ownerID uint64) (*subDomain.Stats, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&subDomain.Submission{})
		if ownerID != 0 {
			q = q.Where("user_id = ?", ownerID)
		}
		return q
	}

	var st subDomain.Stats
	if err := base().Count(&st.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("review_status = ?", subDomain.ReviewPending).Count(&st.PendingReview).Error; err != nil {
		return nil, err
	}
	if err := base().Where("approval_status = ?", subDomain.ApprovalPending).Count(&st.PendingApproval).Error; err != nil {
		return nil, err
	}
	if err := base().Where("approval_status = ?", subDomain.ApprovalApproved).Count(&st.Approved).Error; err != nil {
		return nil, err
	}
	if err := base().Where("approval_status = ?", subDomain.ApprovalRejected).Count(&st.Rejected).Error; err != nil {
		return nil, err
	}
	return &st, nil
}
