package core

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AUTH_COOKIE_NAME = "token"
const AUTH_TOKEN_NAME = "auth_token"

// SessionTokenLifetime is both the token expiry and the cookie Max-Age.
// There is no refresh mechanism; expiry forces a new login.
const SessionTokenLifetime = 24 * time.Hour

var (
	ErrJWTUnexpectedClaimsType = errors.New("unexpected claims type")
	ErrJWTInvalid              = errors.New("invalid JWT")
)

// SessionClaims is the session token payload consumed by the frontend:
// the account email, the account reference it uses for dashboard routes,
// and the registered expiry.
type SessionClaims struct {
	Email    string `json:"email"`
	ClientID string `json:"clientId"`
	jwt.RegisteredClaims
}

func JWTGenerateToken(secret []byte, clientID string, email string) (string, error) {
	claims := SessionClaims{
		Email:    email,
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// JWTVerifyToken checks signature and expiry only; there is no server-side
// revocation list.
func JWTVerifyToken(token string, secret []byte) (*SessionClaims, error) {
	validatedToken, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := validatedToken.Claims.(*SessionClaims)
	if !ok {
		return nil, ErrJWTUnexpectedClaimsType
	}

	return claims, nil
}

func SetAuthCookie(w http.ResponseWriter, jwt string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AUTH_COOKIE_NAME,
		Value:    jwt,
		MaxAge:   int(SessionTokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AUTH_COOKIE_NAME,
		Value:    "",
		Expires:  time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

func SendJWT(w http.ResponseWriter, jwt string) {
	w.Header().Set("Authorization", "Bearer "+jwt)
}
