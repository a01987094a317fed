package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/auth"
	"github.com/festy23/pitmstr/internal/auth/authtest"
	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/datastore/datastoretest"
	"github.com/festy23/pitmstr/internal/lookup"
	"github.com/festy23/pitmstr/internal/middleware"
)

type listedEvent struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Status     string   `json:"status"`
	Division   string   `json:"division"`
	Categories []string `json:"categories"`
}

func setupRouter(t *testing.T, store datastore.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop().Sugar()

	r := gin.New()
	r.Use(middleware.Authenticate(authtest.Verifier(t), logger))
	RegisterRoutes(r.Group("/api"), store, lookup.New(store, nil, logger), auth.DefaultPolicy(), time.UTC, logger)
	return r
}

func request(r *gin.Engine, method, target, authHeader string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIntegration_EventLifecycle(t *testing.T) {
	store := datastoretest.NewSQLite(t)
	division := datastoretest.MustCreate(t, store, datastore.TableDivisions, datastore.Fields{"Division Name": "MSBBQ"})
	ribs := datastoretest.MustCreate(t, store, datastore.TableCategories, datastore.Fields{"Category Name": "Ribs"})
	r := setupRouter(t, store)
	admin := authtest.Bearer(t, "user_a", "admin")

	future := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
	past := time.Now().UTC().AddDate(0, -1, 0).Format("2006-01-02")

	payload, err := json.Marshal(map[string]any{
		"name":        "Spring Smoke",
		"date":        future,
		"location":    "Austin, TX",
		"divisionId":  division,
		"categoryIds": []string{ribs},
	})
	require.NoError(t, err)

	w := request(r, http.MethodPost, "/api/events", authtest.Bearer(t, "user_t", "teacher"), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, http.MethodPost, "/api/events", admin, payload)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data listedEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "upcoming", created.Data.Status)
	assert.Equal(t, "MSBBQ", created.Data.Division)
	assert.Equal(t, []string{"Ribs"}, created.Data.Categories)

	datastoretest.MustCreate(t, store, datastore.TableEvents, datastore.Fields{"Event Name": "Fall Smoke", "Event Date": past})

	t.Run("list filters by status", func(t *testing.T) {
		w := request(r, http.MethodGet, "/api/events?status=completed", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data []listedEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "Fall Smoke", body.Data[0].Name)
	})

	t.Run("invalid status", func(t *testing.T) {
		w := request(r, http.MethodGet, "/api/events?status=soon", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := request(r, http.MethodDelete, "/api/events?id="+created.Data.ID, admin, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = request(r, http.MethodGet, "/api/events/"+created.Data.ID, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
