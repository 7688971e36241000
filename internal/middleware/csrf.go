package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/nj-ramadhan/barakah-be/internal/utils"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRFToken"
)

// CSRFMiddleware enforces a double-submit cookie check on mutating
// requests: the X-CSRFToken header must match the csrftoken cookie.
// Safe methods pass through and get a cookie issued when missing.
func CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if _, err := r.Cookie(csrfCookieName); err != nil {
				issueCSRFCookie(w)
			}
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(csrfCookieName)
		if err != nil || cookie.Value == "" {
			utils.WriteJSONError(w, "CSRF cookie missing", http.StatusForbidden)
			return
		}

		header := r.Header.Get(csrfHeaderName)
		if subtle.ConstantTimeCompare([]byte(header), []byte(cookie.Value)) != 1 {
			utils.WriteJSONError(w, "CSRF token mismatch", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func issueCSRFCookie(w http.ResponseWriter) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    hex.EncodeToString(buf),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}
