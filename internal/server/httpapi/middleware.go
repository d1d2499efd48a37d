package httpapi

import (
	"context"
	"net/http"
	"time"
)

type ctxKey string

const accountKeyCtxKey ctxKey = "accountKey"

// accountKeyFrom returns the authenticated account key placed in the context
// by requireAuth.
func accountKeyFrom(ctx context.Context) string {
	key, _ := ctx.Value(accountKeyCtxKey).(string)
	return key
}

// requireAuth resolves the session cookie to an account key. Requests
// without a live session are sent back to the index with a flash; no
// side effects happen on that path.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			s.redirectWithFlash(w, r, "/", "Please log in first.")
			return
		}

		key, err := s.accounts.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			clearSessionCookie(w)
			s.redirectWithFlash(w, r, "/", "Please log in first.")
			return
		}

		ctx := context.WithValue(r.Context(), accountKeyCtxKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
