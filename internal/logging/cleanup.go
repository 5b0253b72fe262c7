package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/models"
	"gorm.io/gorm"
)

const LogRetention = 30 * 24 * time.Hour

// StartCleanup runs a daily goroutine that deletes system_logs older than
// retention.
func StartCleanup(db *gorm.DB, retention time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected)
				}
			case <-done:
				return
			}
		}
	}()
}

// Sweeper is anything holding expiring entries, such as in-memory wizard
// drafts.
type Sweeper interface {
	Sweep() int
}

// StartSweep calls s.Sweep every interval until done is closed.
func StartSweep(name string, s Sweeper, interval time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					slog.Info("expired entries swept", "sweeper", name, "removed", n)
				}
			case <-done:
				return
			}
		}
	}()
}
