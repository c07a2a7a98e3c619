package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "simlok-backend/internal/adapter/middleware"
	notifuc "simlok-backend/internal/usecase/notification"
)

type NotificationHandler struct{ uc *notifuc.Usecase }

func NewNotificationHandler(uc *notifuc.Usecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) List(c echo.Context) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	unreadOnly := c.QueryParam("unread") == "true"

	res, err := h.uc.List(c.Request().Context(), mw.CurrentUser(c).ID, unreadOnly, offset, limit)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	nid, err := strconv.ParseUint(c.Param("notification_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification_id"})
	}
	if err := h.uc.MarkRead(c.Request().Context(), mw.CurrentUser(c).ID, nid); err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "read"})
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	if err := h.uc.MarkAllRead(c.Request().Context(), mw.CurrentUser(c).ID); err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "all read"})
}
