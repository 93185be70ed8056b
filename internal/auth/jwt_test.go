package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paulikeo/mercadito/internal/apperr"
	"github.com/paulikeo/mercadito/internal/models"
)

var testUser = models.User{ID: 7, FullName: "Ana Pérez", Email: "ana@example.com"}

type stubDirectory struct {
	users map[string]models.User
}

func (d *stubDirectory) GetUserByEmail(email string) (models.User, error) {
	u, ok := d.users[email]
	if !ok {
		return models.User{}, apperr.E(apperr.ErrNotFound, "user not found")
	}
	return u, nil
}

func TestIssueParseRoundtrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.Issue(testUser)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, testUser.Email, claims.Email)
	require.NotEmpty(t, claims.ID)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("secret", -time.Minute)

	token, err := m.Issue(testUser)
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.Error(t, err)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, err := NewManager("one", time.Hour).Issue(testUser)
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(token)
	require.Error(t, err)
}

func middlewareResponse(t *testing.T, m *Manager, dir UserDirectory, authHeader string) (*httptest.ResponseRecorder, *models.Identity) {
	t.Helper()

	var got *models.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := IdentityFromContext(r.Context()); ok {
			got = &id
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	res := httptest.NewRecorder()
	m.Middleware(dir)(next).ServeHTTP(res, req)
	return res, got
}

func TestMiddlewareNoHeader(t *testing.T) {
	m := NewManager("secret", time.Hour)
	res, identity := middlewareResponse(t, m, &stubDirectory{}, "")

	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Contains(t, res.Body.String(), "no token provided")
	require.Nil(t, identity)
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	m := NewManager("secret", time.Hour)
	token, err := m.Issue(testUser)
	require.NoError(t, err)

	// A bare token without the scheme prefix must fail like a tampered one.
	res, _ := middlewareResponse(t, m, &stubDirectory{}, token)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Contains(t, res.Body.String(), "invalid or expired token")
}

func TestMiddlewareUnknownUser(t *testing.T) {
	m := NewManager("secret", time.Hour)
	token, err := m.Issue(testUser)
	require.NoError(t, err)

	res, _ := middlewareResponse(t, m, &stubDirectory{}, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.Contains(t, res.Body.String(), "user not found")
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	m := NewManager("secret", time.Hour)
	token, err := m.Issue(testUser)
	require.NoError(t, err)

	dir := &stubDirectory{users: map[string]models.User{testUser.Email: testUser}}
	res, identity := middlewareResponse(t, m, dir, fmt.Sprintf("Bearer %s", token))

	require.Equal(t, http.StatusOK, res.Code)
	require.NotNil(t, identity)
	require.Equal(t, testUser.ID, identity.ID)
	require.Equal(t, testUser.Email, identity.Email)
	require.Equal(t, testUser.FullName, identity.FullName)
}
