package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond writes err using its Kind. It reports whether the error was
// an internal one so the caller can log it.
func Respond(c *gin.Context, err error) bool {
	kind := KindOf(err)

	code := string(kind)
	var be BusinessError
	if errors.As(err, &be) {
		code = be.Code
	}

	switch kind {
	case KindValidation:
		c.JSON(http.StatusBadRequest, HTTPError{Code: code, Kind: kind, Message: messageFor(code, "Invalid request.")})
	case KindConflict:
		c.JSON(http.StatusConflict, HTTPError{Code: "slot_conflict", Kind: kind, Message: "This time is no longer available. Please pick another slot."})
	case KindNotFound:
		c.JSON(http.StatusNotFound, HTTPError{Code: code, Kind: kind, Message: messageFor(code, "Record not found.")})
	case KindClosed:
		c.JSON(http.StatusUnprocessableEntity, HTTPError{Code: code, Kind: kind, Message: messageFor(code, "The shop is closed on this date.")})
	default:
		c.JSON(http.StatusInternalServerError, HTTPError{Code: "internal_error", Kind: KindInternal, Message: "Something went wrong, please try again."})
		return true
	}

	return false
}

var messages = map[string]string{
	"invalid_date_or_time":  "Invalid date or time.",
	"invalid_state":         "This appointment cannot move to the requested status.",
	"outside_working_hours": "The shop is not open at this time.",
	"in_break":              "The requested time falls in the break.",
	"past_closing":          "The service would end after closing time.",
	"service_not_found":     "Service not found.",
	"appointment_not_found": "Appointment not found.",
	"queue_empty":           "Nobody is waiting in the queue.",
	"shop_closed":           "The shop is closed on this date.",
	"in_the_past":           "This time has already passed.",
	"client_name_required":  "Please tell us your name.",
	"service_required":      "Please choose a service.",
	"invalid_status":        "Unknown status.",
	"token_required":        "Missing cancellation token.",
	"invalid_email":         "Invalid e-mail address.",
	"invalid_phone":         "Invalid phone number.",
	"status_changed":        "This appointment was changed meanwhile. Reload it and try again.",
	"service_inactive":      "This service is no longer offered.",
}

func messageFor(code, fallback string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return fallback
}
