package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DavidGamba/go-getoptions"
	config "github.com/anjiri1684/mentorship/configs"
	"github.com/anjiri1684/mentorship/database"
	"github.com/anjiri1684/mentorship/database/memstore"
	"github.com/anjiri1684/mentorship/jobs"
	"github.com/anjiri1684/mentorship/logger"
	"github.com/anjiri1684/mentorship/notifications"
	"github.com/anjiri1684/mentorship/routes"
	"github.com/anjiri1684/mentorship/services"
	"github.com/anjiri1684/mentorship/websocket"
	"go.uber.org/zap"
)

type commandLineOptionValues struct {
	EnvFile     string
	MigrateOnly bool
}

func parseCommandLine() *commandLineOptionValues {
	optionValues := &commandLineOptionValues{}
	opt := getoptions.New()

	opt.Bool("help", false, opt.Alias("h", "?"))
	opt.StringVar(&optionValues.EnvFile, "env-file", ".env",
		opt.Alias("e"),
		opt.Description("the path to a .env file loaded before reading the environment"))
	opt.BoolVar(&optionValues.MigrateOnly, "migrate-only", false,
		opt.Description("apply database migrations and exit"))

	_, err := opt.Parse(os.Args[1:])
	if opt.Called("help") {
		fmt.Fprint(os.Stderr, opt.Help())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n\n", err)
		fmt.Fprint(os.Stderr, opt.Help(getoptions.HelpSynopsis))
		os.Exit(1)
	}
	return optionValues
}

type storeSet struct {
	bookings      services.BookingStore
	mentors       services.MentorStore
	notifications services.NotificationStore
	users         services.UserStore
	close         func() error
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storeSet, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("using the in-memory store, data is lost on restart")
		mem := memstore.New()
		return &storeSet{
			bookings:      mem.Bookings,
			mentors:       mem.Mentors,
			notifications: mem.Notifications,
			users:         mem.Users,
			close:         func() error { return nil },
		}, nil
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	version, err := database.Version(ctx, db)
	if err == nil {
		log.Info("database ready", zap.Int64("schema_version", version))
	}
	return &storeSet{
		bookings:      database.NewBookingStore(db),
		mentors:       database.NewMentorStore(db),
		notifications: database.NewNotificationStore(db),
		users:         database.NewUserStore(db),
		close:         func() error { return database.Close(db) },
	}, nil
}

func main() {
	optionValues := parseCommandLine()

	cfg, err := config.Load(optionValues.EnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal("unable to open stores", zap.Error(err))
	}
	defer func() {
		if err := stores.close(); err != nil {
			log.Warn("unable to close database", zap.Error(err))
		}
	}()
	if optionValues.MigrateOnly {
		log.Info("migrations applied, exiting")
		return
	}

	hub := websocket.NewHub(log)
	go hub.Run(ctx)

	mailer := notifications.FromConfig(cfg, log)
	notificationService := services.NewNotificationService(stores.notifications, stores.users, hub, mailer, cfg.AppBaseURL, log)
	gamificationService := services.NewGamificationService(stores.users, log)
	bookingService := services.NewBookingService(stores.bookings, stores.mentors, notificationService, gamificationService, cfg.AppBaseURL, log)
	authService := services.NewAuthService(stores.users, cfg.JWTSecret, cfg.TokenTTL, mailer, log)

	scheduler, err := jobs.NewScheduler(log,
		jobs.NewReminderJob(bookingService, cfg.ReminderAfter, log),
		jobs.NewDigestJob(notificationService, log))
	if err != nil {
		log.Fatal("unable to schedule jobs", zap.Error(err))
	}
	scheduler.Start()
	log.Info("cron jobs scheduled", zap.String("reminders", jobs.ReminderSpec), zap.String("digest", jobs.DigestSpec))

	app := routes.NewApp(routes.Deps{
		Config:        cfg,
		Log:           log,
		Auth:          authService,
		Bookings:      bookingService,
		Mentors:       services.NewMentorService(stores.mentors),
		Notifications: notificationService,
		Gamification:  gamificationService,
		Hub:           hub,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Warn("server shutdown incomplete", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server failed", zap.Error(err))
	}

	<-scheduler.Stop().Done()
	notificationService.Wait()
	authService.Wait()
}
