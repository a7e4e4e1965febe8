package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nebulavault/server/internal/config"
	"github.com/nebulavault/server/internal/utils"
)

type contextKey string

// IdentityKey holds the authenticated username for the request.
const IdentityKey contextKey = "identity"

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "session"

// Auth validates the session cookie and binds the session identity to
// the request context. Requests without a valid session get 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		username, ok := SessionIdentity(r)
		if !ok {
			utils.Fail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), IdentityKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionIdentity extracts and verifies the username bound to the
// request's session cookie. The second return is false when there is no
// usable session.
func SessionIdentity(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.Envs.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// Identity returns the session identity stored by Auth.
func Identity(r *http.Request) string {
	username, _ := r.Context().Value(IdentityKey).(string)
	return username
}
