package qr

import (
	"errors"

	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 320 // px, square

// PNG renders the signed token as a QR image suitable for the permit PDF
// and the vendor dashboard.
func PNG(token string) ([]byte, error) {
	if token == "" {
		return nil, errors.New("empty QR token")
	}
	return qrcode.Encode(token, qrcode.Medium, pngSize)
}
