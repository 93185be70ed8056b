package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/paulikeo/mercadito/internal/api/respond"
	"github.com/paulikeo/mercadito/internal/models"
)

// Claims defines the JWT claims structure. The email is the identity key;
// validity is re-derived on every request by a directory lookup.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type contextKey string

// IdentityKey is the context key under which the middleware stores the
// resolved caller identity.
const IdentityKey = contextKey("identity")

// UserDirectory is the lookup the middleware needs to resolve a token's
// email claim to a live account.
type UserDirectory interface {
	GetUserByEmail(email string) (models.User, error)
}

// Manager issues and verifies signed session tokens. Tokens are stateless:
// nothing is persisted server-side.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager with the given signing secret and
// token lifetime.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a new signed token for a user.
func (m *Manager) Issue(user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a token string and returns its claims.
func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Middleware gates a route group on a valid bearer token. The authorization
// header must carry a scheme prefix ("Bearer <token>"); a malformed header
// fails signature verification and is reported as an invalid token. On
// success the resolved identity is attached to the request context.
func (m *Manager) Middleware(users UserDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Fail(w, http.StatusUnauthorized, "no token provided")
				return
			}

			// Second whitespace-separated field; an empty string fails
			// Parse the same way a tampered token would.
			var tokenStr string
			if parts := strings.Fields(header); len(parts) >= 2 {
				tokenStr = parts[1]
			}

			claims, err := m.Parse(tokenStr)
			if err != nil {
				respond.Fail(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			user, err := users.GetUserByEmail(claims.Email)
			if err != nil {
				respond.Fail(w, http.StatusUnauthorized, "user not found")
				return
			}

			identity := models.Identity{ID: user.ID, Email: user.Email, FullName: user.FullName}
			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity the middleware attached, if any.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(models.Identity)
	return identity, ok
}
