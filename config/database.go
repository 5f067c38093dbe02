// ejournal/config/database.go

package config

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ejournal/internal/retry"
	"ejournal/models"
)

// ConnectDB opens the Postgres connection with a bounded retry: the database
// may still be starting alongside the server, so we try 5 times, 5 seconds
// apart, and give up after that.
func ConnectDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	var db *gorm.DB

	policy := retry.Policy{Attempts: 5, Interval: 5 * time.Second}
	err := policy.Do(ctx, "подключение к БД", func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Успешное подключение к базе данных!")
	return db, nil
}

// AutoMigrate приводит схему к моделям приложения.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.School{},
		&models.User{},
		&models.UserRole{},
		&models.Class{},
		&models.Subgroup{},
		&models.Subject{},
		&models.LessonSlot{},
		&models.Schedule{},
		&models.Grade{},
		&models.Attendance{},
		&models.Homework{},
		&models.Notification{},
	)
}
