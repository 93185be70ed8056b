package cli

import (
	"bufio"
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paulikeo/mercadito/internal/apperr"
	"github.com/paulikeo/mercadito/internal/client/session"
	"github.com/paulikeo/mercadito/internal/models"
)

// stubAPI scripts the REST surface for REPL tests.
type stubAPI struct {
	loginUser  session.User
	loginErr   error
	verifyErr  error
	products   []models.Product
	createErr  error
	lastCreate string
}

func (s *stubAPI) Register(ctx context.Context, fullName, email, password, confirm string) (string, error) {
	return "user registered, please log in", nil
}

func (s *stubAPI) Login(ctx context.Context, email, password string) (session.User, error) {
	if s.loginErr != nil {
		return session.User{}, s.loginErr
	}
	return s.loginUser, nil
}

func (s *stubAPI) VerifyToken(ctx context.Context, token string) error { return s.verifyErr }

func (s *stubAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubAPI) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, apperr.E(apperr.ErrNotFound, "product not found")
}

func (s *stubAPI) CreateProduct(ctx context.Context, token, name string, price float64, stock int64) (models.Product, error) {
	if s.createErr != nil {
		return models.Product{}, s.createErr
	}
	s.lastCreate = name
	return models.Product{ID: 1, Name: name, Price: price, Stock: stock}, nil
}

func (s *stubAPI) UpdateProduct(ctx context.Context, token string, id int64, name string, price float64, stock int64) error {
	return nil
}

func (s *stubAPI) DeleteProduct(ctx context.Context, token string, id int64) error { return nil }

func newTestApp(t *testing.T, api apiClient, sess *session.Store, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &App{
		api:    api,
		sess:   sess,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
		layout: LayoutPublic,
	}, out
}

func emptyStore(t *testing.T) *session.Store {
	t.Helper()
	return session.Load(filepath.Join(t.TempDir(), "session.json"))
}

func TestRunAnonymousList(t *testing.T) {
	api := &stubAPI{products: []models.Product{{
		ID: 1, Name: "Widget", Price: 9.99, Stock: 5,
		Creator: &models.Creator{FullName: "Ana", Email: "ana@example.com"},
	}}}
	app, out := newTestApp(t, api, emptyStore(t), "list\nexit\n")

	app.Run(context.Background())

	require.Contains(t, out.String(), "Widget")
	require.Contains(t, out.String(), "ana@example.com")
	require.Contains(t, out.String(), "[anonymous]")
}

func TestLoginPromotesToPrivate(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	api := &stubAPI{loginUser: session.User{ID: 1, Email: "ana@example.com", FullName: "Ana", Token: "tok"}}
	sess := emptyStore(t)
	app, out := newTestApp(t, api, sess, "login\nana@example.com\nwhoami\nexit\n")

	app.Run(context.Background())

	require.True(t, sess.LoggedIn())
	require.Contains(t, out.String(), "welcome back, Ana")
	require.Contains(t, out.String(), "[ana@example.com]")
	require.Contains(t, out.String(), "Ana <ana@example.com> (id 1)")
}

func TestStartupWithValidSessionEntersPrivate(t *testing.T) {
	sess := emptyStore(t)
	require.NoError(t, sess.Set(session.User{ID: 1, Email: "ana@example.com", FullName: "Ana", Token: "tok"}))

	app, out := newTestApp(t, &stubAPI{}, sess, "exit\n")
	app.Run(context.Background())

	require.Contains(t, out.String(), "[ana@example.com]")
}

func TestStartupWithStaleSessionStaysPublic(t *testing.T) {
	sess := emptyStore(t)
	require.NoError(t, sess.Set(session.User{ID: 1, Email: "ana@example.com", Token: "stale"}))

	api := &stubAPI{verifyErr: apperr.E(apperr.ErrAuth, "invalid or expired token")}
	app, out := newTestApp(t, api, sess, "exit\n")
	app.Run(context.Background())

	require.False(t, sess.LoggedIn(), "stale session must be cleared on startup")
	require.Contains(t, out.String(), "[anonymous]")
}

func TestAuthFailureIsToastNotLogout(t *testing.T) {
	sess := emptyStore(t)
	require.NoError(t, sess.Set(session.User{ID: 1, Email: "ana@example.com", FullName: "Ana", Token: "tok"}))

	api := &stubAPI{createErr: apperr.E(apperr.ErrAuth, "invalid or expired token")}
	app, out := newTestApp(t, api, sess, "add\nWidget\n9.99\n5\nexit\n")
	app.Run(context.Background())

	require.Contains(t, out.String(), "! invalid or expired token")
	require.True(t, sess.LoggedIn(), "a failed API call must not force a logout")
}

func TestLogoutDropsToPublic(t *testing.T) {
	sess := emptyStore(t)
	require.NoError(t, sess.Set(session.User{ID: 1, Email: "ana@example.com", FullName: "Ana", Token: "tok"}))

	app, out := newTestApp(t, &stubAPI{}, sess, "logout\nexit\n")
	app.Run(context.Background())

	require.False(t, sess.LoggedIn())
	require.Contains(t, out.String(), "! logged out")
	require.Contains(t, out.String(), "[anonymous]")
}
