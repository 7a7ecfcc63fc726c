package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucBatch "github.com/BruksfildServices01/barbershop-booking/internal/usecase/batch"
)

// BatchHandler exposes the sweeps to an external scheduler.
type BatchHandler struct {
	autoComplete *ucBatch.AutoComplete
	reminders    *ucBatch.SendReminders
	clock        timezone.Clock
	log          logger.Logger
}

func NewBatchHandler(
	autoComplete *ucBatch.AutoComplete,
	reminders *ucBatch.SendReminders,
	clock timezone.Clock,
	log logger.Logger,
) *BatchHandler {
	return &BatchHandler{autoComplete: autoComplete, reminders: reminders, clock: clock, log: log}
}

func (h *BatchHandler) AutoComplete(c *gin.Context) {
	res, err := h.autoComplete.Execute(c.Request.Context(), h.clock.Now())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *BatchHandler) Reminders(c *gin.Context) {
	res, err := h.reminders.Execute(c.Request.Context(), h.clock.Now())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	httpresp.OK(c, res)
}
