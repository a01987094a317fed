package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	schoolModel "github.com/festy23/pitmstr/internal/school/model"
	"github.com/festy23/pitmstr/internal/school/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Search(ctx context.Context, query string) ([]schoolModel.School, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]schoolModel.School), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id string) (*schoolModel.SchoolDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schoolModel.SchoolDetail), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, zap.NewNop().Sugar())
	r := gin.New()
	r.GET("/api/schools", h.Search)
	r.GET("/api/schools/:id", h.Get)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandler_Search(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Search", mock.Anything, "austin").Return([]schoolModel.School{{ID: "recS1", Name: "Lincoln High"}}, nil)

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools?q=austin", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["data"], 1)
	})

	t.Run("failure", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Search", mock.Anything, "").Return(nil, errors.New("boom"))

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to fetch schools", decode(t, w)["error"])
	})
}

func TestHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Get", mock.Anything, "recS1").Return(&schoolModel.SchoolDetail{
			School: &schoolModel.School{ID: "recS1", Name: "Lincoln High"},
			Teams:  []schoolModel.TeamSummary{{ID: "recT1", Name: "Smoke Kings"}},
		}, nil)

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools/recS1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "Lincoln High", data["school"].(map[string]any)["name"])
		assert.Len(t, data["teams"], 1)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Get", mock.Anything, "recMissing").Return(nil, schoolModel.ErrSchoolNotFound)

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools/recMissing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "School not found", decode(t, w)["error"])
	})

	t.Run("failure", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Get", mock.Anything, "recS1").Return(nil, errors.New("boom"))

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schools/recS1", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
