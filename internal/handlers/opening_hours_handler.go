package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// Invalidator drops cached calendar data after an edit.
type Invalidator interface {
	Invalidate()
}

type CalendarHandler struct {
	db    *gorm.DB
	cache Invalidator
}

func NewCalendarHandler(db *gorm.DB, cache Invalidator) *CalendarHandler {
	return &CalendarHandler{db: db, cache: cache}
}

type OpeningDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	IsClosed   bool   `json:"is_closed"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type OpeningHoursUpdateRequest struct {
	Days []OpeningDayConfig `json:"days" binding:"required,dive"`
}

type ClosedDayRequest struct {
	Date      string `json:"date" binding:"required"`
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	Recurring bool   `json:"recurring"`
}

// ======================================================
// OPENING HOURS
// ======================================================

func (h *CalendarHandler) GetOpeningHours(c *gin.Context) {
	var hours []models.OpeningHour
	if err := h.db.Order("weekday ASC").Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_get_opening_hours", "Could not load opening hours.")
		return
	}

	httpresp.List(c, hours)
}

// validDay rejects malformed clocks and inverted ranges on open days.
func validDay(d OpeningDayConfig) bool {
	if d.IsClosed {
		return true
	}

	open, err := schedule.ParseClock(d.OpenTime)
	if err != nil {
		return false
	}
	closing, err := schedule.ParseClock(d.CloseTime)
	if err != nil || closing <= open {
		return false
	}

	if d.BreakStart == "" && d.BreakEnd == "" {
		return true
	}
	bs, err := schedule.ParseClock(d.BreakStart)
	if err != nil {
		return false
	}
	be, err := schedule.ParseClock(d.BreakEnd)
	if err != nil {
		return false
	}
	return bs < be && bs >= open && be <= closing
}

func (h *CalendarHandler) UpdateOpeningHours(c *gin.Context) {
	var req OpeningHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	seen := make(map[int]bool, len(req.Days))
	rows := make([]models.OpeningHour, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Each weekday can only appear once.")
			return
		}
		seen[d.Weekday] = true

		if !validDay(d) {
			httperr.BadRequest(c, "invalid_opening_hours", "Invalid opening hours.")
			return
		}

		rows = append(rows, models.OpeningHour{
			Weekday:    d.Weekday,
			IsClosed:   d.IsClosed,
			OpenTime:   d.OpenTime,
			CloseTime:  d.CloseTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.OpeningHour{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_opening_hours", "Could not save opening hours.")
		return
	}

	h.cache.Invalidate()
	httpresp.List(c, rows)
}

// ======================================================
// CLOSED DAYS
// ======================================================

func (h *CalendarHandler) ListClosedDays(c *gin.Context) {
	var days []models.ClosedDay
	if err := h.db.Order("date ASC").Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_list_closed_days", "Could not list closed days.")
		return
	}

	httpresp.List(c, days)
}

func (h *CalendarHandler) CreateClosedDay(c *gin.Context) {
	var req ClosedDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if _, err := timezone.ParseDate(req.Date, time.UTC); err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date.")
		return
	}

	kind := strings.ToLower(strings.TrimSpace(req.Type))
	switch kind {
	case "":
		kind = models.ClosedDayHoliday
	case models.ClosedDayHoliday, models.ClosedDayVacation, models.ClosedDaySpecial:
	default:
		httperr.BadRequest(c, "invalid_closed_day_type", "Unknown closed day type.")
		return
	}

	day := models.ClosedDay{
		Date:      req.Date,
		Type:      kind,
		Reason:    req.Reason,
		Recurring: req.Recurring,
	}
	if err := h.db.Create(&day).Error; err != nil {
		httperr.Internal(c, "failed_to_create_closed_day", "Could not save the closed day.")
		return
	}

	h.cache.Invalidate()
	c.JSON(http.StatusCreated, day)
}

func (h *CalendarHandler) DeleteClosedDay(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.Delete(&models.ClosedDay{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_closed_day", "Could not delete the closed day.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "closed_day_not_found", "Closed day not found.")
		return
	}

	h.cache.Invalidate()
	c.Status(http.StatusNoContent)
}
