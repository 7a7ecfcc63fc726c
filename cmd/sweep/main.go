// Command sweep runs the auto-complete and reminder jobs once and exits.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/BruksfildServices01/barbershop-booking/internal/app"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
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
		AutoComplete: ucBatch.NewAutoComplete(infra.Deps),
		Reminders:    ucBatch.NewSendReminders(infra.Deps),
		Clock:        infra.Deps.Clock,
		Log:          log,
	}
	sweeper.RunOnce(ctx)
}
