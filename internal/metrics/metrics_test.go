package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", rec.Code)
	}
	return rec.Body.String()
}

func TestObserveRequest_LabelsByRoute(t *testing.T) {
	ObserveRequest("GET", "/api/awards", http.StatusOK, 15*time.Millisecond)

	body := scrape(t)
	if !strings.Contains(body, `petak_http_requests_total{method="GET",route="/api/awards",status="200"}`) {
		t.Errorf("expected request counter with route labels in:\n%s", body)
	}
	if !strings.Contains(body, `petak_http_request_duration_seconds_count{method="GET",route="/api/awards"}`) {
		t.Errorf("expected duration histogram for the route")
	}
}

func TestObserveRequest_UnmatchedRoute(t *testing.T) {
	ObserveRequest("GET", "", http.StatusNotFound, time.Millisecond)
	if !strings.Contains(scrape(t), `route="unmatched",status="404"`) {
		t.Errorf("expected empty route to be recorded as unmatched")
	}
}

func TestHandler_ExposesDomainCounters(t *testing.T) {
	AwardsComputed.WithLabelValues("year").Inc()
	AdminLogins.WithLabelValues("success").Inc()

	body := scrape(t)
	for _, want := range []string{`petak_awards_computed_total{mode="year"}`, `petak_admin_logins_total{result="success"}`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s in scrape output", want)
		}
	}
}
