package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paulikeo/mercadito/internal/apperr"
)

func newStubServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestLoginDecodesUser(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ana@example.com", body["email"])

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"error": false,
			"user": map[string]interface{}{
				"id": 1, "email": "ana@example.com", "full_name": "Ana", "token": "tok123",
			},
		})
	})

	user, err := client.Login(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
	require.EqualValues(t, 1, user.ID)
	require.Equal(t, "tok123", user.Token)
}

func TestBearerSchemeOnAuthenticatedCalls(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"error": false})
	})

	require.NoError(t, client.VerifyToken(context.Background(), "tok123"))
}

func TestEnvelopeErrorCarriesKindAndMessage(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"error": true, "msg": "only the creator can modify this product",
		})
	})

	err := client.UpdateProduct(context.Background(), "tok", 1, "Widget", 9.99, 5)
	require.ErrorIs(t, err, apperr.ErrForbidden)
	require.Equal(t, "only the creator can modify this product", err.Error())
}

func TestServerErrorHasNoKind(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": true, "msg": "something went wrong",
		})
	})

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, apperr.ErrAuth)
	require.Equal(t, "something went wrong", err.Error())
}

func TestNetworkFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := New(url)
	_, err := client.ListProducts(context.Background())
	require.ErrorIs(t, err, ErrUnreachable)
}

func TestListProductsDecodesCreators(t *testing.T) {
	client := newStubServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"error": false,
			"data": []map[string]interface{}{
				{"id": 1, "name": "Widget", "price": 9.99, "stock": 5, "userId": 1,
					"creator": map[string]interface{}{"id": 1, "fullName": "Ana", "email": "ana@example.com"}},
			},
		})
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Widget", products[0].Name)
	require.NotNil(t, products[0].Creator)
	require.Equal(t, "Ana", products[0].Creator.FullName)
}
