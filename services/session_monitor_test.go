package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

func TestSweepExpiredCancelsOverdueSessions(t *testing.T) {
	db := setupSessionTestDB(t)
	tableA, _ := seedTable(t, db, "M1")
	tableB, _ := seedTable(t, db, "M2")

	past := time.Now().Add(-5 * time.Minute)
	future := time.Now().Add(1 * time.Hour)

	expired := models.TableSession{
		TableID:      tableA.ID,
		Status:       models.SessionStatusActive,
		TmpCode:      utils.GenerateTmpCode(),
		SessionToken: utils.GenerateSessionToken(),
		ExpiresAt:    &past,
	}
	assert.NoError(t, db.Create(&expired).Error)

	alive := models.TableSession{
		TableID:      tableB.ID,
		Status:       models.SessionStatusActive,
		TmpCode:      utils.GenerateTmpCode(),
		SessionToken: utils.GenerateSessionToken(),
		ExpiresAt:    &future,
	}
	assert.NoError(t, db.Create(&alive).Error)

	monitor := NewSessionMonitor(db)
	monitor.sweepExpired()

	var swept models.TableSession
	assert.NoError(t, db.First(&swept, expired.ID).Error)
	assert.Equal(t, models.SessionStatusCancelled, swept.Status)
	assert.NotNil(t, swept.CancelledAt)

	var untouched models.TableSession
	assert.NoError(t, db.First(&untouched, alive.ID).Error)
	assert.Equal(t, models.SessionStatusActive, untouched.Status)
	assert.Nil(t, untouched.CancelledAt)
}

func TestSweepExpiredIgnoresTerminalSessions(t *testing.T) {
	db := setupSessionTestDB(t)
	table, _ := seedTable(t, db, "M3")

	past := time.Now().Add(-5 * time.Minute)
	done := time.Now().Add(-10 * time.Minute)

	completed := models.TableSession{
		TableID:      table.ID,
		Status:       models.SessionStatusCompleted,
		TmpCode:      utils.GenerateTmpCode(),
		SessionToken: utils.GenerateSessionToken(),
		ExpiresAt:    &past,
		CompletedAt:  &done,
	}
	assert.NoError(t, db.Create(&completed).Error)

	monitor := NewSessionMonitor(db)
	monitor.sweepExpired()

	var after models.TableSession
	assert.NoError(t, db.First(&after, completed.ID).Error)
	assert.Equal(t, models.SessionStatusCompleted, after.Status)
	assert.Nil(t, after.CancelledAt)
}
