package routes_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/testutil/fixture"
)

type noopCache struct{}

func (noopCache) Invalidate() {}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := fixture.New()
	env.Service("Haircut", 30, "40.00")

	r := gin.New()
	routes.RegisterRoutes(r, routes.Infra{
		Config: &config.Config{
			JWTSecret:   "secret",
			CronSecret:  "cron",
			CORSOrigins: []string{"https://shop.example"},
		},
		Deps:     env.Deps(fixture.At(2025, 3, 4, 12, 0)),
		Bus:      events.NewLocalBus(),
		Calendar: noopCache{},
		Gatherer: env.Registry,
	})
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOpsEndpoints(t *testing.T) {
	r := newEngine(t)

	if w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil)); w.Code != http.StatusOK {
		t.Fatalf("health: status %d", w.Code)
	}

	// a request first so the histogram has a sample
	serve(r, httptest.NewRequest(http.MethodGet, "/api/public/availability?date=2025-03-05&service_id=1", nil))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "test_appointments_created_total") {
		t.Fatalf("metrics output misses the scheduling counters")
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newEngine(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/admin/walkins/queue", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	token, err := handlers.SignToken("secret", &models.AdminUser{ID: 7, Role: "owner"}, time.Now())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/walkins/queue", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d body %s", w.Code, w.Body.String())
	}
}

func TestBatchRoutesRequireCronSecret(t *testing.T) {
	r := newEngine(t)

	w := serve(r, httptest.NewRequest(http.MethodPost, "/api/batch/auto-complete", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/batch/reminders", nil)
	req.Header.Set("X-Cron-Secret", "cron")
	if w := serve(r, req); w.Code != http.StatusOK {
		t.Fatalf("expected 200 with secret, got %d body %s", w.Code, w.Body.String())
	}
}

func TestPublicAvailabilityRoute(t *testing.T) {
	r := newEngine(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/public/availability?date=2025-03-05&service_id=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"time":"09:00"`) {
		t.Fatalf("expected the 09:00 slot, got %s", w.Body.String())
	}
}
