package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

// SessionMonitor membatalkan sesi aktif yang sudah melewati expires_at
// secara periodik, melengkapi pengecekan lazy di SessionService.
type SessionMonitor struct {
	DB       *gorm.DB
	Interval time.Duration
	StopChan chan struct{}
}

func NewSessionMonitor(db *gorm.DB) *SessionMonitor {
	return &SessionMonitor{
		DB:       db,
		Interval: 1 * time.Minute,
		StopChan: make(chan struct{}),
	}
}

func (sm *SessionMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.sweepExpired()
			case <-sm.StopChan:
				return
			}
		}
	}()
	utils.InfoLogger.Println("Session expiry monitor started")
}

func (sm *SessionMonitor) Stop() {
	close(sm.StopChan)
}

func (sm *SessionMonitor) sweepExpired() {
	now := time.Now()
	result := sm.DB.Model(&models.TableSession{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?",
			models.SessionStatusActive, now).
		Updates(map[string]interface{}{
			"status":       models.SessionStatusCancelled,
			"cancelled_at": now,
		})

	if result.Error != nil {
		utils.ErrorLogger.Printf("Error sweeping expired sessions: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		utils.InfoLogger.Printf("Cancelled %d expired table session(s)", result.RowsAffected)
	}
}
