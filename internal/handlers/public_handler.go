package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	availability *ucAppointment.GetAvailability
	dates        *ucAppointment.NextAvailableDates
	create       *ucAppointment.CreateAppointment
	cancel       *ucAppointment.CancelByToken
	log          logger.Logger
}

func NewPublicHandler(
	availability *ucAppointment.GetAvailability,
	dates *ucAppointment.NextAvailableDates,
	create *ucAppointment.CreateAppointment,
	cancel *ucAppointment.CancelByToken,
	log logger.Logger,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		dates:        dates,
		create:       create,
		cancel:       cancel,
		log:          log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

type CancelRequest struct {
	Token string `json:"token" binding:"required"`
}

// PublicAppointment is what the booking client gets back. The
// cancellation token is only ever shown here.
type PublicAppointment struct {
	ID                uint   `json:"id"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Status            string `json:"status"`
	ServiceName       string `json:"service_name,omitempty"`
	CancellationToken string `json:"cancellation_token,omitempty"`
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityInput{
		Date:      dateStr,
		ServiceID: uint(serviceID),
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PublicHandler) AvailableDates(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "14"))
	if err != nil {
		httperr.BadRequest(c, "invalid_count", "Invalid count.")
		return
	}

	dates, err := h.dates.Execute(c.Request.Context(), c.Query("from"), count)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	out := PublicAppointment{
		ID:                ap.ID,
		Date:              ap.Date,
		Time:              ap.Time,
		Status:            ap.Status,
		CancellationToken: ap.CancellationToken,
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}

	c.JSON(http.StatusCreated, out)
}

func (h *PublicHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), req.Token)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, PublicAppointment{
		ID:     ap.ID,
		Date:   ap.Date,
		Time:   ap.Time,
		Status: ap.Status,
	})
}
