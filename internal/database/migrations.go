package database

import (
	"fmt"

	"github.com/taskhub/task-tracker-api/internal/logger"
	"gorm.io/gorm"
)

// AddIndexes adds the indexes the task listing and stats queries lean on
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for filtering and ordering
		{"tasks", "idx_tasks_owner_id", "owner_id"},
		{"tasks", "idx_tasks_completed", "completed"},
		{"tasks", "idx_tasks_priority", "priority"},
		{"tasks", "idx_tasks_created_at", "created_at"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Log.Infow("created index", "index", idx.name, "table", idx.table)
	}

	return nil
}
