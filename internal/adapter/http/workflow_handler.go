package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	mw "simlok-backend/internal/adapter/middleware"
	domain "simlok-backend/internal/domain/submission"
	"simlok-backend/internal/domain/user"
	"simlok-backend/internal/usecase/workflow"
)

type WorkflowHandler struct{ uc *workflow.Usecase }

func NewWorkflowHandler(uc *workflow.Usecase) *WorkflowHandler { return &WorkflowHandler{uc: uc} }

type reviewReq struct {
	Verdict string `json:"verdict" validate:"required,oneof=MEETS_REQUIREMENTS NOT_MEETS_REQUIREMENTS"`
	Note    string `json:"note"`
}

func (h *WorkflowHandler) Review(c echo.Context) error {
	submissionID := c.Param("submission_id")
	if !reHex32.MatchString(submissionID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid submission_id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Review(c.Request().Context(), mw.CurrentUser(c), workflow.ReviewInput{
		SubmissionID: submissionID,
		Verdict:      domain.ReviewStatus(req.Verdict),
		Note:         req.Note,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type decisionReq struct {
	Note string `json:"note"`
}

func (h *WorkflowHandler) Approve(c echo.Context) error {
	return h.decide(c, h.uc.Approve)
}

func (h *WorkflowHandler) Reject(c echo.Context) error {
	return h.decide(c, h.uc.Reject)
}

func (h *WorkflowHandler) decide(c echo.Context, fn func(ctx context.Context, actor *user.User, in workflow.DecisionInput) (*workflow.DecisionDTO, error)) error {
	submissionID := c.Param("submission_id")
	if !reHex32.MatchString(submissionID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid submission_id"})
	}
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := fn(c.Request().Context(), mw.CurrentUser(c), workflow.DecisionInput{SubmissionID: submissionID, Note: req.Note})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
