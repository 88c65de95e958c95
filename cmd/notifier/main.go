package main

import (
	"fmt"
	"log"
	"os"

	"cubicle_notifier/cmd/notifier/commands"
	"cubicle_notifier/internal/app"
	"cubicle_notifier/internal/infra/config"
	idb "cubicle_notifier/internal/infra/database"
	"cubicle_notifier/internal/infra/email"
	"cubicle_notifier/internal/infra/logger"
	"cubicle_notifier/internal/infra/monday"
	islack "cubicle_notifier/internal/infra/slack"
)

func main() {
	fmt.Println("Cubicle Notifier starting...")

	mainLogger := log.New(os.Stdout, "MAIN: ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger.Printf("INFO: Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	mainLogger.Println("INFO: Database connection established successfully.")

	// Initialize Repositories
	reservationRepo := idb.NewPostgresReservationRepository(db)
	auditRepo := idb.NewPostgresNotificationRepository(db)
	mainLogger.Println("INFO: Repositories initialized.")

	// Initialize Delivery Channels
	channelLogger := log.New(os.Stdout, "CHANNEL: ", log.LstdFlags|log.Lshortfile)
	emailChannel := email.NewChannel(cfg, channelLogger)
	slackChannel := islack.NewChannel(cfg, channelLogger)
	mondayChannel := monday.NewChannel(cfg, slackChannel, channelLogger)
	mainLogger.Printf("INFO: Channels initialized. email=%t slack=%t monday=%t",
		emailChannel.IsConfigured(), slackChannel.IsConfigured(), mondayChannel.IsConfigured())

	// Initialize Services
	statsLogger := log.New(os.Stdout, "STATS_SVC: ", log.LstdFlags|log.Lshortfile)
	statsService := app.NewUserStatsService(reservationRepo, statsLogger)

	notifLogger := log.New(os.Stdout, "NOTIF_SVC: ", log.LstdFlags|log.Lshortfile)
	notifService := app.NewNotificationService(
		statsService, emailChannel, slackChannel, mondayChannel,
		auditRepo, cfg.SendTimeout, notifLogger,
	)
	mainLogger.Println("INFO: Notification service initialized.")

	appCtx := &commands.AppContext{
		Cfg:          cfg,
		DB:           db,
		Stats:        statsService,
		NotifService: notifService,
		Audit:        auditRepo,
		Logger:       mainLogger,
	}

	if err := commands.RootCmd(appCtx).Execute(); err != nil {
		os.Exit(1)
	}
}
