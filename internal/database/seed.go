package database

import (
	"fmt"

	"github.com/taskhub/task-tracker-api/internal/logger"
	"github.com/taskhub/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// SeedDemoUser creates the demo user the frontend expects on a fresh
// instance. Idempotent: an existing demo user is left alone.
func SeedDemoUser(db *gorm.DB) error {
	demo := models.User{
		Email:    "demo@example.com",
		Username: "demo",
		FullName: "Demo User",
		IsActive: true,
	}

	err := db.Where(models.User{Username: demo.Username}).
		FirstOrCreate(&demo).Error
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	logger.Log.Infow("demo user ready", "id", demo.ID, "username", demo.Username)
	return nil
}
