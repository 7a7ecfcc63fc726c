package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	ucBatch "github.com/BruksfildServices01/barbershop-booking/internal/usecase/batch"
	ucWalkin "github.com/BruksfildServices01/barbershop-booking/internal/usecase/walkin"
)

// Infra is what the process built before routing.
type Infra struct {
	DB       *gorm.DB
	Config   *config.Config
	Deps     ucAppointment.Deps
	Bus      events.Bus
	Calendar handlers.Invalidator
	Gatherer prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, in Infra) {
	cfg := in.Config
	db := in.DB
	d := in.Deps
	log := d.Log

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(log, d.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(d)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(d)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(d)
	purgeAppointmentsUC := ucAppointment.NewPurgeAppointments(d)
	cancelByTokenUC := ucAppointment.NewCancelByToken(d)
	availabilityUC := ucAppointment.NewGetAvailability(d)
	availableDatesUC := ucAppointment.NewNextAvailableDates(d)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(d)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(d)

	checkInUC := ucWalkin.NewCheckIn(d)
	callNextUC := ucWalkin.NewCallNext(d)
	queueUC := ucWalkin.NewListQueue(d)

	autoCompleteUC := ucBatch.NewAutoComplete(d)
	remindersUC := ucBatch.NewSendReminders(d)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg.JWTSecret, log)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	calendarHandler := handlers.NewCalendarHandler(db, in.Calendar)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	eventsHandler := handlers.NewEventsHandler(in.Bus)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		purgeAppointmentsUC,
		listByDateUC,
		listByMonthUC,
		log,
	)

	publicHandler := handlers.NewPublicHandler(
		availabilityUC,
		availableDatesUC,
		createAppointmentUC,
		cancelByTokenUC,
		log,
	)

	walkinHandler := handlers.NewWalkinHandler(checkInUC, callNextUC, queueUC, log)
	batchHandler := handlers.NewBatchHandler(autoCompleteUC, remindersUC, d.Clock, log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(in.Gatherer, promhttp.HandlerOpts{})))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", serviceHandler.ListActive)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.GET("/available-dates", publicHandler.AvailableDates)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.POST("/appointments/cancel", publicHandler.Cancel)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// BATCH
		// ------------------------------
		batch := api.Group("/batch")
		batch.Use(middleware.CronSecret(cfg.CronSecret))
		{
			batch.POST("/auto-complete", batchHandler.AutoComplete)
			batch.POST("/reminders", batchHandler.Reminders)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			admin.GET("/me", meHandler.GetMe)

			admin.POST("/appointments", appointmentHandler.Create)
			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.GET("/appointments/month", appointmentHandler.ListByMonth)
			admin.PATCH("/appointments/:id", appointmentHandler.Update)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)
			admin.DELETE("/appointments", appointmentHandler.Purge)

			admin.POST("/walkins/checkin", walkinHandler.CheckIn)
			admin.POST("/walkins/call-next", walkinHandler.CallNext)
			admin.GET("/walkins/queue", walkinHandler.Queue)

			admin.GET("/opening-hours", calendarHandler.GetOpeningHours)
			admin.PUT("/opening-hours", calendarHandler.UpdateOpeningHours)
			admin.GET("/closed-days", calendarHandler.ListClosedDays)
			admin.POST("/closed-days", calendarHandler.CreateClosedDay)
			admin.DELETE("/closed-days/:id", calendarHandler.DeleteClosedDay)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.GET("/clients", clientHandler.List)
			admin.GET("/clients/:id", clientHandler.Get)

			admin.GET("/audit-logs", auditLogsHandler.List)

			admin.GET("/events", eventsHandler.Stream)
		}
	}
}
