package qr

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid QR token")
	ErrOutsideRange = errors.New("permit not valid on this date")
)

// Grace after the implementation end date during which the QR still
// verifies; field checks can lag demobilization by a few days.
const expiryGrace = 7 * 24 * time.Hour

// Claims is the signed payload embedded in a permit QR code.
type Claims struct {
	SubmissionID string `json:"sub_id"`
	SimlokNumber string `json:"simlok_number"`
	// Implementation date range, canonical YYYY-MM-DD
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	jwt.RegisteredClaims
}

// ValidOn reports whether the permit covers the given instant. Scans before
// the implementation start are out of range; the tail end is bounded by the
// token expiry itself.
func (c *Claims) ValidOn(now time.Time) error {
	start, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return ErrInvalidToken
	}
	if now.UTC().Before(start) {
		return ErrOutsideRange
	}
	return nil
}

// Signer mints and verifies permit QR tokens (HS256).
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret), now: time.Now}
}

// WithClock overrides the time source (tests).
func (s *Signer) WithClock(fn func() time.Time) *Signer {
	s.now = fn
	return s
}

// Mint signs a token for an approved submission. The token expires at the
// implementation end date plus a grace window.
func (s *Signer) Mint(submissionID, simlokNumber string, start, end time.Time) (string, error) {
	if submissionID == "" || simlokNumber == "" {
		return "", errors.New("submission id and simlok number are required")
	}
	now := s.now().UTC()
	claims := Claims{
		SubmissionID: submissionID,
		SimlokNumber: simlokNumber,
		StartDate:    start.UTC().Format("2006-01-02"),
		EndDate:      end.UTC().Format("2006-01-02"),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "simlok",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(end.UTC().Add(expiryGrace)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the claims.
func (s *Signer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SubmissionID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
