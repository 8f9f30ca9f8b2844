package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frechnel/shop-api/app/api"
)

// Admin tokens are valid for 7 days from issuance.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

type Claims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies admin bearer tokens with a single
// server-held HS256 secret.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

func (t *Tokens) Sign(adminID, email string) (string, error) {
	claims := &Claims{
		AdminID: adminID,
		Email:   email,
		Role:    "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

func (t *Tokens) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(tk *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if c, ok := token.Claims.(*Claims); ok && token.Valid {
		return c, nil
	}
	return nil, ErrInvalidToken
}

// FromRequest extracts and verifies the Authorization: Bearer header.
func (t *Tokens) FromRequest(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrMissingToken
	}
	return t.Parse(strings.TrimPrefix(header, "Bearer "))
}

// RequireAdmin gates mutating routes behind a valid admin token.
func (t *Tokens) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := t.FromRequest(r); err != nil {
			if errors.Is(err, ErrMissingToken) {
				api.Error(w, http.StatusUnauthorized, "missing token")
			} else {
				api.Error(w, http.StatusUnauthorized, "invalid or expired token")
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}
