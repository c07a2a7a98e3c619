package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	mw "simlok-backend/internal/adapter/middleware"
	subdomain "simlok-backend/internal/domain/submission"
	"simlok-backend/internal/usecase/submission"
)

// ScanCounter feeds the scans-today dashboard counter.
type ScanCounter interface {
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type SubmissionHandler struct {
	uc    *submission.Usecase
	scans ScanCounter
}

func NewSubmissionHandler(uc *submission.Usecase, scans ScanCounter) *SubmissionHandler {
	return &SubmissionHandler{uc: uc, scans: scans}
}

type workerReq struct {
	Name           string `json:"name"                  validate:"required"`
	PhotoPath      string `json:"photo_path"`
	HSSEPassNumber string `json:"hsse_pass_number"`
	HSSEPassValid  string `json:"hsse_pass_valid_until" validate:"omitempty,datetime=2006-01-02"`
}

type documentReq struct {
	DocType   string `json:"doc_type"   validate:"required,doctype"`
	DocNumber string `json:"doc_number" validate:"required"`
	DocDate   string `json:"doc_date"   validate:"required,datetime=2006-01-02"`
	FilePath  string `json:"file_path"`
}

type submissionReq struct {
	VendorName          string        `json:"vendor_name"`
	OfficerName         string        `json:"officer_name"         validate:"required"`
	JobDescription      string        `json:"job_description"      validate:"required"`
	WorkLocation        string        `json:"work_location"        validate:"required"`
	WorkingHours        string        `json:"working_hours"        validate:"required"`
	ImplementationStart string        `json:"implementation_start" validate:"required,datetime=2006-01-02"`
	ImplementationEnd   string        `json:"implementation_end"   validate:"required,datetime=2006-01-02"`
	Workers             []workerReq   `json:"workers"              validate:"required,min=1,dive"`
	Documents           []documentReq `json:"documents"            validate:"dive"`
}

func (r *submissionReq) toInput() submission.CreateInput {
	in := submission.CreateInput{
		VendorName:     r.VendorName,
		OfficerName:    r.OfficerName,
		JobDescription: r.JobDescription,
		WorkLocation:   r.WorkLocation,
		WorkingHours:   r.WorkingHours,
	}
	in.ImplementationStart, _ = time.Parse("2006-01-02", r.ImplementationStart)
	in.ImplementationEnd, _ = time.Parse("2006-01-02", r.ImplementationEnd)
	for _, w := range r.Workers {
		wi := submission.WorkerInput{Name: w.Name, PhotoPath: w.PhotoPath, HSSEPassNumber: w.HSSEPassNumber}
		if w.HSSEPassValid != "" {
			if t, err := time.Parse("2006-01-02", w.HSSEPassValid); err == nil {
				wi.HSSEPassValid = &t
			}
		}
		in.Workers = append(in.Workers, wi)
	}
	for _, d := range r.Documents {
		dd, _ := time.Parse("2006-01-02", d.DocDate)
		in.Documents = append(in.Documents, submission.DocumentInput{
			DocType:   d.DocType,
			DocNumber: d.DocNumber,
			DocDate:   dd,
			FilePath:  d.FilePath,
		})
	}
	return in
}

func (h *SubmissionHandler) Create(c echo.Context) error {
	var req submissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), mw.CurrentUser(c), req.toInput())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *SubmissionHandler) Get(c echo.Context) error {
	submissionID := c.Param("submission_id")
	if !reHex32.MatchString(submissionID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid submission_id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), mw.CurrentUser(c), submissionID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SubmissionHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	res, err := h.uc.List(c.Request().Context(), mw.CurrentUser(c), submission.ListInput{
		ReviewStatus:   c.QueryParam("review_status"),
		ApprovalStatus: c.QueryParam("approval_status"),
		Search:         c.QueryParam("search"),
		Page:           page,
		PerPage:        perPage,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *SubmissionHandler) Update(c echo.Context) error {
	submissionID := c.Param("submission_id")
	if !reHex32.MatchString(submissionID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid submission_id"})
	}
	var req submissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), mw.CurrentUser(c), submissionID, req.toInput())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *SubmissionHandler) Delete(c echo.Context) error {
	submissionID := c.Param("submission_id")
	if !reHex32.MatchString(submissionID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid submission_id"})
	}
	if err := h.uc.Delete(c.Request().Context(), mw.CurrentUser(c), submissionID); err != nil {
		return domainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type statsResponse struct {
	subdomain.Stats
	ScansToday int64 `json:"scans_today"`
}

// Stats powers the dashboard counters. Vendors see their own numbers,
// back-office roles the global ones.
func (h *SubmissionHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	stats, err := h.uc.Stats(ctx, mw.CurrentUser(c))
	if err != nil {
		return domainError(c, err)
	}
	resp := statsResponse{Stats: *stats}
	if h.scans != nil {
		midnight := time.Now().UTC().Truncate(24 * time.Hour)
		n, err := h.scans.CountSince(ctx, midnight)
		if err != nil {
			return domainError(c, err)
		}
		resp.ScansToday = n
	}
	return c.JSON(http.StatusOK, resp)
}
