package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/datastore/datastoretest"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handler.Check)
	return router
}

func check(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Check(t *testing.T) {
	t.Run("healthy datastore", func(t *testing.T) {
		router := setupRouter(New(datastoretest.NewSQLite(t), zap.NewNop().Sugar()))

		w := check(router)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","datastore":"ok"}`, w.Body.String())
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("unreachable datastore", func(t *testing.T) {
		router := setupRouter(New(pingFunc(func(context.Context) error {
			return errors.New("dial tcp: connection refused")
		}), zap.NewNop().Sugar()))

		w := check(router)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	})

	t.Run("ping is bounded by a deadline", func(t *testing.T) {
		var deadline atomic.Value
		router := setupRouter(New(pingFunc(func(ctx context.Context) error {
			d, ok := ctx.Deadline()
			if ok {
				deadline.Store(d)
			}
			return nil
		}), zap.NewNop().Sugar()))

		check(router)

		d, ok := deadline.Load().(time.Time)
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(checkTimeout), d, time.Second)
	})

	t.Run("concurrent checks", func(t *testing.T) {
		router := setupRouter(New(datastoretest.NewSQLite(t), zap.NewNop().Sugar()))

		results := make(chan int, 10)
		for i := 0; i < 10; i++ {
			go func() {
				results <- check(router).Code
			}()
		}
		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, <-results)
		}
	})
}
