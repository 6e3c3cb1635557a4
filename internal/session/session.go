// Package session carries the signed-in identity between the browser and the
// console: an opaque API token plus a role string, stored in one signed
// cookie so the role cannot be edited client-side.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "cms_session"

var ErrNoSession = errors.New("no session")

// Session is the explicit session value handed to the route gate and to the
// remote client calls. There is no ambient global copy.
type Session struct {
	Token string
	Role  string
}

// Codec signs sessions into cookies and reads them back.
type Codec struct {
	secret   []byte
	duration time.Duration
}

func NewCodec(secret string, duration time.Duration) *Codec {
	return &Codec{secret: []byte(secret), duration: duration}
}

type sessionClaims struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Codec) encode(s Session) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Token: s.Token,
		Role:  s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing session: %w", err)
	}

	return signed, nil
}

func (c *Codec) decode(value string) (*Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(value, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid session")
	}

	return &Session{Token: claims.Token, Role: claims.Role}, nil
}

// Write sets the session cookie on the response.
func (c *Codec) Write(w http.ResponseWriter, s Session) error {
	value, err := c.encode(s)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.duration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read extracts and verifies the session from the request cookie. A missing,
// expired, or tampered cookie reads as ErrNoSession.
func (c *Codec) Read(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	s, err := c.decode(cookie.Value)
	if err != nil {
		return nil, ErrNoSession
	}

	return s, nil
}

// Clear expires the session cookie.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
