package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
	"github.com/YelzhanWeb/basecart/internal/domain"
)

// Claims is the session token issued by the identity provider. The subject
// is the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type identityKey struct{}

func identityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

// Authenticator verifies HS256 session tokens from the Authorization header
// or the session cookie.
type Authenticator struct {
	secret     []byte
	cookieName string
	logger     logger.Logger
}

func NewAuthenticator(secret, cookieName string, logger logger.Logger) *Authenticator {
	return &Authenticator{secret: []byte(secret), cookieName: cookieName, logger: logger}
}

func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := a.token(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		identity, err := a.Verify(token)
		if err != nil {
			a.logger.Debug("auth_failed", "Session token rejected", requestID(r.Context()),
				map[string]interface{}{"error": err.Error(), "path": r.URL.Path})
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, identity)))
	})
}

func (a *Authenticator) token(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if c, err := r.Cookie(a.cookieName); err == nil {
		return c.Value
	}
	return ""
}

// Verify checks the signature and expiry and returns the caller identity.
func (a *Authenticator) Verify(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return domain.Identity{}, errors.New("invalid session token")
	}
	return domain.Identity{UserID: claims.Subject, Email: claims.Email}, nil
}
