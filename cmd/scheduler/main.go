package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/taruntejajangila/expensetracker-sub000/internal/cache"
	"github.com/taruntejajangila/expensetracker-sub000/internal/config"
	"github.com/taruntejajangila/expensetracker-sub000/internal/logger"
	"github.com/taruntejajangila/expensetracker-sub000/internal/repository"
	"github.com/taruntejajangila/expensetracker-sub000/internal/service"
)

// reconcileTimeout bounds a single reconciliation run.
const reconcileTimeout = 30 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.FromConfig(cfg)
	log.Info("Starting schedule reconciler...")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	redisOpts, err := cfg.RedisOptions()
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize redis")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	loanService := service.NewLoanService(
		repository.NewLoanRepository(db),
		cache.NewRedisScheduleCache(redisClient, cfg.Redis.CacheTTL),
		cfg,
		log,
	)

	// Initialize cron scheduler
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.GetSchedulerLocation()),
		cron.WithLogger(cronLogger{log}),
		cron.WithChain(cron.Recover(cronLogger{log}), cron.SkipIfStillRunning(cronLogger{log})),
	)

	if err := setupCronJobs(c, cfg, loanService, log); err != nil {
		log.WithError(err).Fatal("Error scheduling reconciliation job")
	}

	// Start the scheduler
	c.Start()
	log.WithFields(logrus.Fields{
		"spec":     cfg.Scheduler.ReconcileSpec,
		"timezone": cfg.Scheduler.Timezone,
	}).Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, loanService *service.LoanService, log *logrus.Logger) error {
	_, err := c.AddFunc(cfg.Scheduler.ReconcileSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()

		log.Info("Running schedule reconciliation job...")
		rebuilt, err := loanService.ReconcileSchedules(ctx)
		if err != nil {
			log.WithError(err).Error("Schedule reconciliation failed")
			return
		}
		log.WithField("rebuilt", rebuilt).Info("Schedule reconciliation job done")
	})
	return err
}

// cronLogger adapts logrus to cron.Logger.
type cronLogger struct {
	log *logrus.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithError(err).WithFields(fields(keysAndValues)).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			f[key] = keysAndValues[i+1]
		}
	}
	return f
}
