package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

// counterValue sums a gathered metric family across label sets matching labels.
func counterValue(registry *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := registry.Gather()
	if err != nil {
		return -1
	}
	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if !matches(metric.GetLabel(), labels) {
				continue
			}
			switch {
			case metric.GetCounter() != nil:
				total += metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				total += float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return total
}

func matches(pairs []*dto.LabelPair, labels map[string]string) bool {
	for k, v := range labels {
		found := false
		for _, p := range pairs {
			if p.GetName() == k && p.GetValue() == v {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithRegistry(registry), WithNamespace("test"))

		Convey("When HTTP requests are observed", func() {
			m.ObserveHTTPRequest("GET", "/api/events", 200, 10*time.Millisecond)
			m.ObserveHTTPRequest("GET", "/api/events", 200, 20*time.Millisecond)
			m.ObserveHTTPRequest("GET", "/api/events", 500, time.Millisecond)

			Convey("Then counters are split by status", func() {
				So(counterValue(registry, "test_http_requests_total", map[string]string{"status": "200"}), ShouldEqual, 2)
				So(counterValue(registry, "test_http_requests_total", map[string]string{"status": "500"}), ShouldEqual, 1)
				So(counterValue(registry, "test_http_request_duration_seconds", nil), ShouldEqual, 3)
			})
		})

		Convey("When a leaderboard skips teams", func() {
			m.ObserveLeaderboard(5*time.Millisecond, 2)
			m.ObserveLeaderboard(5*time.Millisecond, 0)

			Convey("Then skipped teams accumulate", func() {
				So(counterValue(registry, "test_leaderboard_skipped_teams_total", nil), ShouldEqual, 2)
				So(counterValue(registry, "test_leaderboard_compute_duration_seconds", nil), ShouldEqual, 2)
			})
		})

		Convey("When lookups and datastore calls are recorded", func() {
			m.RecordLookupLoad("division", nil)
			m.RecordLookupLoad("division", errors.New("boom"))
			m.RecordDatastoreCall("list", "Teams", nil)
			m.RecordWebhookEvent("user.created", nil)

			Convey("Then results are labelled", func() {
				So(counterValue(registry, "test_lookup_loads_total", map[string]string{"result": "error"}), ShouldEqual, 1)
				So(counterValue(registry, "test_lookup_loads_total", map[string]string{"result": "ok"}), ShouldEqual, 1)
				So(counterValue(registry, "test_datastore_calls_total", map[string]string{"table": "Teams"}), ShouldEqual, 1)
				So(counterValue(registry, "test_webhook_events_total", nil), ShouldEqual, 1)
			})
		})

		Convey("When the handler is scraped", func() {
			m.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			body, _ := io.ReadAll(rec.Body)

			Convey("Then the exposition contains the metrics", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(string(body), ShouldContainSubstring, "test_http_requests_total")
			})
		})
	})

	Convey("Given a nil manager", t, func() {
		var m *Manager

		Convey("Then recording is a no-op", func() {
			So(func() {
				m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)
				m.ObserveLeaderboard(time.Millisecond, 1)
				m.RecordLookupLoad("state", nil)
				m.RecordDatastoreCall("find", "Events", nil)
				m.RecordWebhookEvent("user.deleted", nil)
			}, ShouldNotPanic)
			So(m.Registry(), ShouldBeNil)
		})
	})
}
