package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/testutil/fixture"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	ucBatch "github.com/BruksfildServices01/barbershop-booking/internal/usecase/batch"
	ucWalkin "github.com/BruksfildServices01/barbershop-booking/internal/usecase/walkin"
)

// Tuesday 2025-03-04, before opening.
var morning = fixture.At(2025, 3, 4, 8, 0)

func newRouter(env *fixture.Env, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)

	d := env.Deps(now)
	log := logger.NewNop()
	create := ucAppointment.NewCreateAppointment(d)

	public := handlers.NewPublicHandler(
		ucAppointment.NewGetAvailability(d),
		ucAppointment.NewNextAvailableDates(d),
		create,
		ucAppointment.NewCancelByToken(d),
		log,
	)
	appointments := handlers.NewAppointmentHandler(
		create,
		ucAppointment.NewUpdateAppointment(d),
		ucAppointment.NewDeleteAppointment(d),
		ucAppointment.NewPurgeAppointments(d),
		ucAppointment.NewListAppointmentsByDate(d),
		ucAppointment.NewListAppointmentsByMonth(d),
		log,
	)
	walkins := handlers.NewWalkinHandler(
		ucWalkin.NewCheckIn(d),
		ucWalkin.NewCallNext(d),
		ucWalkin.NewListQueue(d),
		log,
	)
	batch := handlers.NewBatchHandler(
		ucBatch.NewAutoComplete(d),
		ucBatch.NewSendReminders(d),
		timezone.FixedClock{T: now},
		log,
	)

	r := gin.New()
	r.GET("/public/availability", public.Availability)
	r.GET("/public/available-dates", public.AvailableDates)
	r.POST("/public/appointments", public.CreateAppointment)
	r.POST("/public/appointments/cancel", public.Cancel)

	r.POST("/admin/appointments", appointments.Create)
	r.GET("/admin/appointments", appointments.ListByDate)
	r.GET("/admin/appointments/month", appointments.ListByMonth)
	r.PATCH("/admin/appointments/:id", appointments.Update)
	r.DELETE("/admin/appointments/:id", appointments.Delete)
	r.DELETE("/admin/appointments", appointments.Purge)

	r.POST("/admin/walkins/checkin", walkins.CheckIn)
	r.POST("/admin/walkins/call-next", walkins.CallNext)
	r.GET("/admin/walkins/queue", walkins.Queue)

	r.POST("/batch/auto-complete", batch.AutoComplete)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

type availability struct {
	Date   string `json:"date"`
	Closed bool   `json:"closed"`
	Slots  []struct {
		Time      string `json:"time"`
		Available bool   `json:"available"`
	} `json:"slots"`
}

func slotAvailable(t *testing.T, r http.Handler, serviceID uint, date, hm string) bool {
	t.Helper()
	w := do(t, r, http.MethodGet, fmt.Sprintf("/public/availability?date=%s&service_id=%d", date, serviceID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("availability: status %d body %s", w.Code, w.Body.String())
	}
	res := decode[availability](t, w)
	for _, s := range res.Slots {
		if s.Time == hm {
			return s.Available
		}
	}
	t.Fatalf("slot %s not listed", hm)
	return false
}

type errorBody struct {
	Code string `json:"error_code"`
	Kind string `json:"kind"`
}

func TestPublicBookingAndCancelFlow(t *testing.T) {
	env := fixture.New()
	svc := env.Service("Haircut", 30, "40.00")
	r := newRouter(env, morning)

	if !slotAvailable(t, r, svc, "2025-03-04", "10:00") {
		t.Fatalf("expected 10:00 to start free")
	}

	booking := map[string]any{
		"client_name":  "Ana",
		"client_phone": "11987654321",
		"service_id":   svc,
		"date":         "2025-03-04",
		"time":         "10:00",
	}

	w := do(t, r, http.MethodPost, "/public/appointments", booking)
	if w.Code != http.StatusCreated {
		t.Fatalf("book: status %d body %s", w.Code, w.Body.String())
	}
	created := decode[handlers.PublicAppointment](t, w)
	if created.CancellationToken == "" || created.ServiceName != "Haircut" {
		t.Fatalf("unexpected booking response %+v", created)
	}

	if slotAvailable(t, r, svc, "2025-03-04", "10:00") {
		t.Fatalf("10:00 still offered after booking")
	}

	w = do(t, r, http.MethodPost, "/public/appointments", booking)
	if w.Code != http.StatusConflict {
		t.Fatalf("double booking: status %d body %s", w.Code, w.Body.String())
	}
	if e := decode[errorBody](t, w); e.Code != "slot_conflict" {
		t.Fatalf("expected slot_conflict, got %+v", e)
	}

	w = do(t, r, http.MethodPost, "/public/appointments/cancel", map[string]string{"token": created.CancellationToken})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: status %d body %s", w.Code, w.Body.String())
	}
	if got := decode[handlers.PublicAppointment](t, w); got.Status != "cancelled" {
		t.Fatalf("expected cancelled, got %q", got.Status)
	}

	if !slotAvailable(t, r, svc, "2025-03-04", "10:00") {
		t.Fatalf("10:00 not freed by cancellation")
	}
}

func TestPublicErrorMapping(t *testing.T) {
	env := fixture.New()
	svc := env.Service("Haircut", 30, "40.00")
	r := newRouter(env, morning)

	book := func(date, hm string) map[string]any {
		return map[string]any{
			"client_name":  "Bia",
			"client_phone": "11987654321",
			"service_id":   svc,
			"date":         date,
			"time":         hm,
		}
	}

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"availability without params", http.MethodGet, "/public/availability", nil, http.StatusBadRequest, "missing_params"},
		{"availability bad service id", http.MethodGet, "/public/availability?date=2025-03-04&service_id=x", nil, http.StatusBadRequest, "invalid_service_id"},
		{"unknown service", http.MethodGet, "/public/availability?date=2025-03-04&service_id=999", nil, http.StatusNotFound, "service_not_found"},
		{"closed weekday", http.MethodPost, "/public/appointments", book("2025-03-10", "10:00"), http.StatusUnprocessableEntity, ""},
		{"past closing", http.MethodPost, "/public/appointments", book("2025-03-04", "19:30"), http.StatusBadRequest, "past_closing"},
		{"missing fields", http.MethodPost, "/public/appointments", map[string]any{"client_name": "x"}, http.StatusBadRequest, "invalid_request"},
		{"unknown token", http.MethodPost, "/public/appointments/cancel", map[string]string{"token": "nope"}, http.StatusNotFound, ""},
		{"bad count", http.MethodGet, "/public/available-dates?count=0", nil, http.StatusBadRequest, "invalid_count"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, tc.method, tc.path, tc.body)
			if w.Code != tc.status {
				t.Fatalf("status %d, want %d, body %s", w.Code, tc.status, w.Body.String())
			}
			if tc.code != "" {
				if e := decode[errorBody](t, w); e.Code != tc.code {
					t.Fatalf("code %q, want %q", e.Code, tc.code)
				}
			}
		})
	}
}

func TestAvailableDatesSkipsClosedDays(t *testing.T) {
	env := fixture.New()
	r := newRouter(env, morning)

	w := do(t, r, http.MethodGet, "/public/available-dates?count=5", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}

	got := decode[struct {
		Dates []string `json:"dates"`
	}](t, w)

	// Sunday 9 and Monday 10 are closed.
	want := []string{"2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07", "2025-03-08"}
	if fmt.Sprint(got.Dates) != fmt.Sprint(want) {
		t.Fatalf("dates %v, want %v", got.Dates, want)
	}
}

func TestAdminAppointmentLifecycle(t *testing.T) {
	env := fixture.New()
	svc := env.Service("Beard", 20, "25.00")
	r := newRouter(env, morning)

	w := do(t, r, http.MethodPost, "/admin/appointments", map[string]any{
		"client_name": "Caio",
		"service_id":  svc,
		"date":        "2025-03-05",
		"time":        "11:00",
		"status":      "confirmed",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	created := decode[struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}](t, w)
	if created.Status != "confirmed" {
		t.Fatalf("expected confirmed, got %q", created.Status)
	}

	w = do(t, r, http.MethodPatch, fmt.Sprintf("/admin/appointments/%d", created.ID), map[string]any{"time": "14:00"})
	if w.Code != http.StatusOK {
		t.Fatalf("reschedule: status %d body %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/admin/appointments?date=2025-03-05", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d body %s", w.Code, w.Body.String())
	}
	list := decode[struct {
		Data []struct {
			Time    string `json:"time"`
			EndTime string `json:"end_time"`
		} `json:"data"`
		Total int `json:"total"`
	}](t, w)
	if list.Total != 1 || list.Data[0].Time != "14:00" || list.Data[0].EndTime != "14:20" {
		t.Fatalf("unexpected listing %+v", list)
	}

	w = do(t, r, http.MethodGet, "/admin/appointments/month?year=2025&month=3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("month: status %d body %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/admin/appointments/%d", created.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d body %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/admin/appointments/%d", created.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status %d", w.Code)
	}
}

func TestAdminRequestValidation(t *testing.T) {
	env := fixture.New()
	r := newRouter(env, morning)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"non numeric id", http.MethodPatch, "/admin/appointments/abc", map[string]any{}, http.StatusBadRequest},
		{"unknown id", http.MethodPatch, "/admin/appointments/42", map[string]any{"notes": "x"}, http.StatusNotFound},
		{"unknown status", http.MethodPost, "/admin/appointments", map[string]any{
			"client_name": "x", "service_id": 1, "date": "2025-03-05", "time": "10:00", "status": "bogus",
		}, http.StatusBadRequest},
		{"list without date", http.MethodGet, "/admin/appointments", nil, http.StatusBadRequest},
		{"month without params", http.MethodGet, "/admin/appointments/month", nil, http.StatusBadRequest},
		{"purge without cutoff", http.MethodDelete, "/admin/appointments", nil, http.StatusBadRequest},
		{"purge in the future", http.MethodDelete, "/admin/appointments?before=2030-01-01", nil, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := do(t, r, tc.method, tc.path, tc.body); w.Code != tc.status {
				t.Fatalf("status %d, want %d, body %s", w.Code, tc.status, w.Body.String())
			}
		})
	}
}

func TestWalkinQueueEndpoints(t *testing.T) {
	env := fixture.New()
	svc := env.Service("Haircut", 30, "40.00")
	r := newRouter(env, fixture.At(2025, 3, 4, 10, 0))

	w := do(t, r, http.MethodPost, "/admin/walkins/call-next", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("empty queue: status %d", w.Code)
	}

	for _, name := range []string{"Dani", "Edu"} {
		w = do(t, r, http.MethodPost, "/admin/walkins/checkin", map[string]any{
			"client_name": name,
			"service_id":  svc,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("checkin %s: status %d body %s", name, w.Code, w.Body.String())
		}
	}

	w = do(t, r, http.MethodGet, "/admin/walkins/queue", nil)
	queue := decode[struct {
		Total int `json:"total"`
	}](t, w)
	if queue.Total != 2 {
		t.Fatalf("expected 2 in queue, got %d", queue.Total)
	}

	w = do(t, r, http.MethodPost, "/admin/walkins/call-next", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("call-next: status %d body %s", w.Code, w.Body.String())
	}
	called := decode[struct {
		ClientName string `json:"client_name"`
		Status     string `json:"status"`
	}](t, w)
	if called.ClientName != "Dani" || called.Status != "inservice" {
		t.Fatalf("unexpected call-next result %+v", called)
	}
}

func TestBatchAutoCompleteEndpoint(t *testing.T) {
	env := fixture.New()
	svc := env.Service("Haircut", 30, "40.00")

	r := newRouter(env, morning)
	w := do(t, r, http.MethodPost, "/admin/appointments", map[string]any{
		"client_name": "Fabi",
		"service_id":  svc,
		"date":        "2025-03-04",
		"time":        "09:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}

	later := newRouter(env, fixture.At(2025, 3, 4, 12, 0))
	w = do(t, later, http.MethodPost, "/batch/auto-complete", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("auto-complete: status %d body %s", w.Code, w.Body.String())
	}

	res := decode[ucBatch.Result](t, w)
	if res.CompletedCount != 1 || res.ErrorCount != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}
