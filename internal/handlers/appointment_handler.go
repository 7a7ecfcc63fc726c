package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      *ucAppointment.CreateAppointment
	update      *ucAppointment.UpdateAppointment
	remove      *ucAppointment.DeleteAppointment
	purge       *ucAppointment.PurgeAppointments
	listByDate  *ucAppointment.ListAppointmentsByDate
	listByMonth *ucAppointment.ListAppointmentsByMonth
	log         logger.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	remove *ucAppointment.DeleteAppointment,
	purge *ucAppointment.PurgeAppointments,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	log logger.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		update:      update,
		remove:      remove,
		purge:       purge,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		log:         log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Barber      string `json:"barber"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
	Status      string `json:"status"`
}

type UpdateAppointmentRequest struct {
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	ServiceID *uint   `json:"service_id"`
	Barber    *string `json:"barber"`
	Notes     *string `json:"notes"`
	Status    *string `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Barber:      req.Barber,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
		Status:      req.Status,
		ActorID:     middleware.ActorID(c),
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:        id,
		Date:      req.Date,
		Time:      req.Time,
		ServiceID: req.ServiceID,
		Barber:    req.Barber,
		Notes:     req.Notes,
		Status:    req.Status,
		ActorID:   middleware.ActorID(c),
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id, middleware.ActorID(c)); err != nil {
		fail(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Purge deletes everything dated before ?before=YYYY-MM-DD.
func (h *AppointmentHandler) Purge(c *gin.Context) {
	before := c.Query("before")
	if before == "" {
		httperr.BadRequest(c, "missing_before", "Query parameter before is required.")
		return
	}

	res, err := h.purge.Execute(c.Request.Context(), before, middleware.ActorID(c))
	if err != nil {
		fail(c, h.log, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), date)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "missing_year_or_month", "Query parameters year and month are required.")
		return
	}

	items, err := h.listByMonth.Execute(c.Request.Context(), year, month)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}
