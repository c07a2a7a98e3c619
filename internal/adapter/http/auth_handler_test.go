package http

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	mw "simlok-backend/internal/adapter/middleware"
	"simlok-backend/internal/domain/session"
	"simlok-backend/internal/domain/user"
	"simlok-backend/internal/testutil/sessionmock"
	"simlok-backend/internal/testutil/usermock"
	"simlok-backend/internal/usecase/auth"
)

func authApp(users *usermock.Repo, sessions *sessionmock.Repo) (*AuthHandler, *auth.Usecase) {
	uc := auth.NewUsecase(users, sessions, time.Hour)
	return NewAuthHandler(uc), uc
}

func TestRegister_Validation(t *testing.T) {
	h, _ := authApp(&usermock.Repo{}, &sessionmock.Repo{})
	e := newEcho()
	e.POST("/api/auth/register", h.Register)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/register",
		`{"email":"not-an-email","password":"short","name":""}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body ErrorResponse
	decodeBody(t, rec, &body)
	if !containsFieldMsg(body.Details, "Email", "email") {
		t.Fatalf("missing email detail: %+v", body.Details)
	}
	if !containsFieldMsg(body.Details, "Password", "at least 8") {
		t.Fatalf("missing password detail: %+v", body.Details)
	}
}

func TestRegister_Created(t *testing.T) {
	var created *user.User
	users := &usermock.Repo{
		CreateFn: func(_ context.Context, u *user.User) error { created = u; return nil },
	}
	h, _ := authApp(users, &sessionmock.Repo{})
	e := newEcho()
	e.POST("/api/auth/register", h.Register)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/register",
		`{"email":"New@Example.com","password":"password123","name":"New Vendor","vendor_name":"PT Baru"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if created == nil || created.Email != "new@example.com" || created.Role != user.RoleVendor {
		t.Fatalf("created user: %+v", created)
	}
	if created.Verified {
		t.Fatal("new vendor must start unverified")
	}
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	users := &usermock.Repo{
		GetByEmailFn: func(_ context.Context, email string) (*user.User, error) {
			u := testVendorUser()
			u.PasswordHash = string(hash)
			return u, nil
		},
	}
	sessions := &sessionmock.Repo{
		CreateFn: func(_ context.Context, s *session.Session) error { return nil },
	}
	h, _ := authApp(users, sessions)
	e := newEcho()
	e.POST("/api/auth/login", h.Login)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/login",
		`{"email":"vendor@example.com","password":"password123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == mw.SessionCookie {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if len(cookie.Value) != 64 || !cookie.HttpOnly {
		t.Fatalf("cookie: value len=%d httponly=%v", len(cookie.Value), cookie.HttpOnly)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	users := &usermock.Repo{
		GetByEmailFn: func(_ context.Context, _ string) (*user.User, error) {
			u := testVendorUser()
			u.PasswordHash = string(hash)
			return u, nil
		},
	}
	h, _ := authApp(users, &sessionmock.Repo{})
	e := newEcho()
	e.POST("/api/auth/login", h.Login)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/login",
		`{"email":"vendor@example.com","password":"wrong-one"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", rec.Code)
	}
}

func TestLogout_RevokesAndExpiresCookie(t *testing.T) {
	var revoked uint64
	sessions := &sessionmock.Repo{
		DeleteByUserIDFn: func(_ context.Context, userID uint64) error { revoked = userID; return nil },
	}
	h, _ := authApp(&usermock.Repo{}, sessions)
	e := newEcho()
	e.POST("/api/auth/logout", h.Logout, withUser(testVendorUser()))

	rec := doJSON(t, e, http.MethodPost, "/api/auth/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if revoked != testVendorUser().ID {
		t.Fatalf("sessions revoked for user %d", revoked)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == mw.SessionCookie && ck.Expires.After(time.Now()) {
			t.Fatal("cookie not expired")
		}
	}
}

func TestMe_ReturnsSessionUser(t *testing.T) {
	h, _ := authApp(&usermock.Repo{}, &sessionmock.Repo{})
	e := newEcho()
	e.GET("/api/auth/me", h.Me, withUser(testVendorUser()))

	rec := doJSON(t, e, http.MethodGet, "/api/auth/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), testVendorUser().UserID) {
		t.Fatalf("body: %s", rec.Body.String())
	}
}
