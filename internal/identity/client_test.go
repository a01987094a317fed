package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{SecretKey: "sk_test", BaseURL: srv.URL}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return client
}

const userJSON = `{
	"id":"user_1",
	"email_addresses":[{"id":"idn_1","email_address":"ava@school.org"}],
	"first_name":"Ava",
	"last_name":null,
	"image_url":"https://img.example/ava.png",
	"public_metadata":{"role":"teacher","schoolId":"recS1"},
	"created_at":1735689600000,
	"last_sign_in_at":null
}`

func TestNew_MissingKey(t *testing.T) {
	_, err := New(Config{}, zap.NewNop().Sugar())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_ListUsers(t *testing.T) {
	t.Run("newest first without query", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			assert.Equal(t, "/users", r.URL.Path)
			assert.Equal(t, "-created_at", r.URL.Query().Get("order_by"))
			assert.Equal(t, "50", r.URL.Query().Get("limit"))
			assert.Empty(t, r.URL.Query().Get("offset"))
			_, _ = io.WriteString(w, "["+userJSON+"]")
		})

		users, err := client.ListUsers(context.Background(), ListParams{Limit: 50})

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "ava@school.org", users[0].PrimaryEmail())
		assert.Equal(t, "teacher", users[0].MetadataString("role"))
		assert.Nil(t, users[0].LastName)
		assert.Nil(t, users[0].LastSignInAt)
	})

	t.Run("query disables ordering", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "ava", r.URL.Query().Get("query"))
			assert.Empty(t, r.URL.Query().Get("order_by"))
			assert.Equal(t, "10", r.URL.Query().Get("offset"))
			_, _ = io.WriteString(w, "[]")
		})

		users, err := client.ListUsers(context.Background(), ListParams{Query: "ava", Offset: 10})

		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("upstream error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"errors":[{"code":"authentication_invalid"}]}`)
		})

		_, err := client.ListUsers(context.Background(), ListParams{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})
}

func TestClient_CountUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/count", r.URL.Path)
		_, _ = io.WriteString(w, `{"object":"total_count","total_count":42}`)
	})

	n, err := client.CountUsers(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestClient_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/user_1", r.URL.Path)
			_, _ = io.WriteString(w, userJSON)
		})

		user, err := client.GetUser(context.Background(), "user_1")

		require.NoError(t, err)
		assert.Equal(t, "Ava", *user.FirstName)
		assert.Equal(t, int64(1735689600000), user.CreatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetUser(context.Background(), "user_x")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestClient_UpdatePublicMetadata(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/user_1/metadata", r.URL.Path)
		var body struct {
			PublicMetadata map[string]any `json:"public_metadata"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin", body.PublicMetadata["role"])
		_, _ = io.WriteString(w, userJSON)
	})

	user, err := client.UpdatePublicMetadata(context.Background(), "user_1", map[string]any{"role": "admin"})

	require.NoError(t, err)
	assert.Equal(t, "user_1", user.ID)
}
