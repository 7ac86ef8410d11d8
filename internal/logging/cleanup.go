package logging

import (
	"log/slog"
	"time"

	"github.com/heartwatch-app/backend/internal/models"
	"gorm.io/gorm"
)

const logRetention = 30 * 24 * time.Hour

// StartCleanup deletes system_logs rows older than the retention window,
// once on startup and then daily, until done is closed.
func StartCleanup(db *gorm.DB, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		cleanup(db)
		for {
			select {
			case <-ticker.C:
				cleanup(db)
			case <-done:
				return
			}
		}
	}()
}

func cleanup(db *gorm.DB) {
	cutoff := time.Now().Add(-logRetention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("system log cleanup failed", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		slog.Info("system log cleanup", "deleted", result.RowsAffected)
	}
}
