package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", ErrBusiness("invalid_date_or_time"), KindValidation},
		{"wrapped conflict", fmt.Errorf("create: %w", ErrConflict("slot_conflict")), KindConflict},
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, KindConflict},
		{"exclusion violation", fmt.Errorf("save: %w", &pgconn.PgError{Code: "23P01"}), KindConflict},
		{"other pg error", &pgconn.PgError{Code: "40001"}, KindInternal},
		{"plain", errors.New("boom"), KindInternal},
		{"closed", ErrClosed("shop_closed"), KindClosed},
	}

	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestRespondStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err      error
		status   int
		code     string
		internal bool
	}{
		{ErrBusiness("in_break"), http.StatusBadRequest, "in_break", false},
		{ErrConflict("slot_conflict"), http.StatusConflict, "slot_conflict", false},
		{&pgconn.PgError{Code: "23505"}, http.StatusConflict, "slot_conflict", false},
		{ErrNotFound("queue_empty"), http.StatusNotFound, "queue_empty", false},
		{ErrClosed("shop_closed"), http.StatusUnprocessableEntity, "shop_closed", false},
		{errors.New("db down"), http.StatusInternalServerError, "internal_error", true},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		internal := Respond(c, tc.err)

		if w.Code != tc.status {
			t.Errorf("%v: status %d, want %d", tc.err, w.Code, tc.status)
		}
		if internal != tc.internal {
			t.Errorf("%v: internal=%v", tc.err, internal)
		}

		var body HTTPError
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Code != tc.code {
			t.Errorf("%v: code %s, want %s", tc.err, body.Code, tc.code)
		}
		if body.Message == "" {
			t.Errorf("%v: empty message", tc.err)
		}
	}
}

func TestConflictMessageIsActionable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Respond(c, ErrConflict("slot_conflict"))

	var body HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Message != "This time is no longer available. Please pick another slot." {
		t.Fatalf("got %q", body.Message)
	}
}
