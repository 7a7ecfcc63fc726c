package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucWalkin "github.com/BruksfildServices01/barbershop-booking/internal/usecase/walkin"
)

type WalkinHandler struct {
	checkIn  *ucWalkin.CheckIn
	callNext *ucWalkin.CallNext
	queue    *ucWalkin.ListQueue
	log      logger.Logger
}

func NewWalkinHandler(
	checkIn *ucWalkin.CheckIn,
	callNext *ucWalkin.CallNext,
	queue *ucWalkin.ListQueue,
	log logger.Logger,
) *WalkinHandler {
	return &WalkinHandler{checkIn: checkIn, callNext: callNext, queue: queue, log: log}
}

type CheckInRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ServiceID   *uint  `json:"service_id"`
	Barber      string `json:"barber"`
	Notes       string `json:"notes"`
}

func (h *WalkinHandler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.checkIn.Execute(c.Request.Context(), ucWalkin.CheckInInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ServiceID:   req.ServiceID,
		Barber:      req.Barber,
		Notes:       req.Notes,
		ActorID:     middleware.ActorID(c),
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *WalkinHandler) CallNext(c *gin.Context) {
	ap, err := h.callNext.Execute(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		fail(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *WalkinHandler) Queue(c *gin.Context) {
	apps, err := h.queue.Execute(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}

	httpresp.List(c, apps)
}
