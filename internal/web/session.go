package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"petak-app/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookieName = "petak_admin"
	sessionIssuer     = "petak"
)

var errNoSession = errors.New("no admin session")

type adminCtxKey struct{}

func (s *Server) issueSession(adminID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   adminID,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
}

// parseSession returns the admin id carried by a valid, unexpired token.
func (s *Server) parseSession(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.sessionSecret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", errNoSession
	}
	if claims.Subject == "" {
		return "", errNoSession
	}
	return claims.Subject, nil
}

func (s *Server) currentAdmin(r *http.Request) (model.Admin, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return model.Admin{}, errNoSession
	}
	adminID, err := s.parseSession(cookie.Value)
	if err != nil {
		return model.Admin{}, err
	}
	admin, ok := s.store.GetAdmin(adminID)
	if !ok {
		return model.Admin{}, errNoSession
	}
	return admin, nil
}

func adminFromContext(ctx context.Context) (model.Admin, bool) {
	admin, ok := ctx.Value(adminCtxKey{}).(model.Admin)
	return admin, ok
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   !s.dev,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.sessionTTL),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func checkPassword(hash string, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
