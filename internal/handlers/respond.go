package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
)

// fail writes err and logs it when it is not a business error.
func fail(c *gin.Context, log logger.Logger, err error) {
	if httperr.Respond(c, err) {
		log.Error("http.internal_error",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
