package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/app"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	ucBatch "github.com/BruksfildServices01/barbershop-booking/internal/usecase/batch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("db.init_failed", "error", err)
	}

	infra, err := app.Build(ctx, cfg, db, log)
	if err != nil {
		log.Fatal("app.init_failed", "error", err)
	}
	defer infra.Close()

	sweeper := &app.Sweeper{
		AutoComplete:         ucBatch.NewAutoComplete(infra.Deps),
		Reminders:            ucBatch.NewSendReminders(infra.Deps),
		Clock:                infra.Deps.Clock,
		Log:                  log,
		AutoCompleteInterval: cfg.AutoCompleteInterval,
		ReminderInterval:     cfg.ReminderInterval,
	}
	sweeper.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Infra{
		DB:       db,
		Config:   cfg,
		Deps:     infra.Deps,
		Bus:      infra.Bus,
		Calendar: infra.Calendar,
		Gatherer: infra.Registry,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server.started", "addr", cfg.Addr(), "timezone", cfg.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server.listen_failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("server.shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server.shutdown_failed", "error", err)
	}
}
