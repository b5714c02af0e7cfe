package qrcode

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// Gate tokens are signed with their own secret so rotated API credentials
// do not invalidate printed QR codes mid-shift.
var gateSecret = []byte(getGateSecret())

func getGateSecret() string {
	secret := os.Getenv("QR_TOKEN_SECRET")
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		secret = "PORTFLOW"
	}
	return secret
}

// signGateToken issues the signed token embedded in a QR code. The jti claim
// carries the QRCode record id, sub the booking id.
func signGateToken(qrID, bookingID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"jti": qrID,
		"sub": bookingID,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(gateSecret)
}

// parseGateToken verifies signature and expiry and returns the token ids.
func parseGateToken(tokenString string) (qrID, bookingID string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return gateSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	qrID, _ = claims["jti"].(string)
	bookingID, _ = claims["sub"].(string)
	if qrID == "" || bookingID == "" {
		return "", "", errors.New("token missing ids")
	}
	return qrID, bookingID, nil
}
