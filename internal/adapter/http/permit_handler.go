package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	mw "simlok-backend/internal/adapter/middleware"
	domain "simlok-backend/internal/domain/submission"
	"simlok-backend/internal/pdf"
	"simlok-backend/internal/qr"
	"simlok-backend/internal/usecase/submission"
)

// PermitHandler serves the printable artifacts of an approved submission:
// the PDF document and the standalone QR image.
type PermitHandler struct {
	subs     *submission.Usecase
	renderer *pdf.Renderer
}

func NewPermitHandler(subs *submission.Usecase, renderer *pdf.Renderer) *PermitHandler {
	return &PermitHandler{subs: subs, renderer: renderer}
}

func (h *PermitHandler) PDF(c echo.Context) error {
	submissionID := c.Param("submission_id")
	if !reHex32.MatchString(submissionID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid submission_id"})
	}
	s, err := h.subs.GetEntity(c.Request().Context(), mw.CurrentUser(c), submissionID)
	if err != nil {
		return domainError(c, err)
	}
	out, err := h.renderer.Render(s)
	if err != nil {
		return domainError(c, err)
	}

	name := "simlok.pdf"
	if s.SimlokNumber != nil {
		name = "simlok-" + strings.ReplaceAll(*s.SimlokNumber, "/", "-") + ".pdf"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, name))
	return c.Blob(http.StatusOK, "application/pdf", out)
}

func (h *PermitHandler) QRImage(c echo.Context) error {
	submissionID := c.Param("submission_id")
	if !reHex32.MatchString(submissionID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid submission_id"})
	}
	s, err := h.subs.GetEntity(c.Request().Context(), mw.CurrentUser(c), submissionID)
	if err != nil {
		return domainError(c, err)
	}
	if s.ApprovalStatus != domain.ApprovalApproved || s.QRPayload == "" {
		return domainError(c, pdf.ErrNotApproved)
	}
	png, err := qr.PNG(s.QRPayload)
	if err != nil {
		return domainError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
