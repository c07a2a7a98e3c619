package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	mw "simlok-backend/internal/adapter/middleware"
	"simlok-backend/internal/usecase/auth"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type registerReq struct {
	Email      string `json:"email"        validate:"required,email"`
	Password   string `json:"password"     validate:"required,min=8"`
	Name       string `json:"name"         validate:"required"`
	VendorName string `json:"vendor_name"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Register(c.Request().Context(), auth.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		VendorName: req.VendorName,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.uc.Login(c.Request().Context(), auth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return domainError(c, err)
	}
	c.SetCookie(sessionCookie(res.Token, res.ExpiresAt))
	return c.JSON(http.StatusOK, res)
}

// Logout revokes every session of the user, then expires the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	usr := mw.CurrentUser(c)
	if err := h.uc.Logout(c.Request().Context(), usr.ID); err != nil {
		return domainError(c, err)
	}
	c.SetCookie(sessionCookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) Me(c echo.Context) error {
	usr := mw.CurrentUser(c)
	return c.JSON(http.StatusOK, auth.UserDTO{
		UserID:     usr.UserID,
		Email:      usr.Email,
		Name:       usr.Name,
		VendorName: usr.VendorName,
		Position:   usr.Position,
		Role:       string(usr.Role),
		Verified:   usr.Verified,
		VerifiedAt: usr.VerifiedAt,
		CreatedAt:  usr.CreatedAt,
	})
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

// ChangePassword revokes all sessions as a side effect, so the client must
// log in again.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	usr := mw.CurrentUser(c)
	if err := h.uc.ChangePassword(c.Request().Context(), usr.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return domainError(c, err)
	}
	c.SetCookie(sessionCookie("", time.Unix(0, 0)))
	return c.JSON(http.StatusOK, map[string]string{"status": "password changed"})
}

func sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     mw.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
