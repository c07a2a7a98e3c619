package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "simlok-backend/internal/adapter/middleware"
	"simlok-backend/internal/usecase/scan"
)

type ScanHandler struct{ uc *scan.Usecase }

func NewScanHandler(uc *scan.Usecase) *ScanHandler { return &ScanHandler{uc: uc} }

type scanReq struct {
	Token    string `json:"token" validate:"required"`
	Location string `json:"location"`
}

// Scan verifies a presented QR token and appends the result to the
// submission's scan trail.
func (h *ScanHandler) Scan(c echo.Context) error {
	var req scanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Scan(c.Request().Context(), mw.CurrentUser(c), scan.ScanInput{
		Token:    req.Token,
		Location: req.Location,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ScanHandler) History(c echo.Context) error {
	submissionID := c.Param("submission_id")
	if !reHex32.MatchString(submissionID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid submission_id"})
	}
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, total, err := h.uc.History(c.Request().Context(), submissionID, offset, limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items, "total": total})
}
