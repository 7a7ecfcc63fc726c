// Package app assembles the process-wide collaborators from config.
package app

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/archive"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/notify"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/clientstats"
)

const (
	metricsNamespace = "barbershop"
	eventsChannel    = "barbershop:events"
)

type Infra struct {
	Deps     ucAppointment.Deps
	Bus      events.Bus
	Calendar *cache.Calendar
	Registry *prometheus.Registry

	closers []func()
}

// Close releases brokers and connections in reverse order of creation.
func (in *Infra) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		in.closers[i]()
	}
}

// Build wires the optional backends: Redis for locks and events, RabbitMQ
// for notifications and S3 for the purge archive. Each falls back to an
// in-process implementation when unset.
func Build(ctx context.Context, cfg *config.Config, db *gorm.DB, log logger.Logger) (*Infra, error) {
	if !timezone.IsValid(cfg.Timezone) {
		return nil, fmt.Errorf("invalid SHOP_TIMEZONE %q", cfg.Timezone)
	}

	in := &Infra{}

	// --------- Metrics ---------
	in.Registry = prometheus.NewRegistry()
	in.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(metricsNamespace, in.Registry)

	// --------- Locks + events ---------
	var (
		locker lock.Locker
		bus    events.Bus
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		in.closers = append(in.closers, func() { _ = client.Close() })

		locker = lock.NewRedisLocker(client, cfg.LockTTL)
		bus = events.NewRedisBus(client, eventsChannel, log)
		log.Info("app.redis_enabled")
	} else {
		locker = lock.NewLocalLocker()
		bus = events.NewLocalBus()
	}
	in.Bus = bus

	// --------- Notifications ---------
	var sender notify.Sender = notify.LogSender{Log: log}
	if cfg.AMQPURL != "" {
		amqpSender, err := notify.NewAMQPSender(cfg.AMQPURL, cfg.NotifyExchange)
		if err != nil {
			in.Close()
			return nil, err
		}
		in.closers = append(in.closers, func() { _ = amqpSender.Close() })
		sender = amqpSender
		log.Info("app.amqp_enabled", "exchange", cfg.NotifyExchange)
	}
	notifier := notify.NewDispatcher(sender, log)
	in.closers = append(in.closers, notifier.Close)

	// --------- Archive ---------
	var archiver archive.Archiver = archive.Noop{}
	if cfg.S3Bucket != "" {
		archiver = archive.NewS3Archiver(archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		log.Info("app.s3_archive_enabled", "bucket", cfg.S3Bucket)
	}

	// --------- Repositories ---------
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	in.Calendar = cache.NewCalendar(appointmentRepo, cfg.CalendarCacheTTL)

	in.Deps = ucAppointment.Deps{
		Repo:     appointmentRepo,
		Calendar: in.Calendar,
		Clients:  clientRepo,
		Stats:    clientstats.NewReconciler(clientRepo),
		Locker:   locker,
		Events:   bus,
		Notifier: notifier,
		Audit:    audit.NewDispatcher(audit.New(db), log),
		Archiver: archiver,
		Clock:    timezone.NewShopClock(cfg.Timezone),
		Log:      log,
		Metrics:  m,
		SlotStep: cfg.SlotStepMinutes,
	}

	return in, nil
}
