package commands

import (
	"database/sql"
	"log"

	"cubicle_notifier/internal/app"
	"cubicle_notifier/internal/domain/notification"
	"cubicle_notifier/internal/infra/config"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg          *config.AppConfig
	DB           *sql.DB
	Stats        *app.UserStatsService
	NotifService *app.NotificationService
	Audit        notification.Repository
	Logger       *log.Logger
}
