package services

import (
	"errors"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/table-order-app/models"
	"github.com/yeremiapane/table-order-app/utils"
)

const defaultSessionTTL = 3 * time.Hour

type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// SessionUpdate berisi field yang boleh diubah lewat update parsial.
type SessionUpdate struct {
	Status        *string
	CustomerCount *int
	Cart          *string
	ExpiresAt     *time.Time
}

// findTableByQRCode mencocokkan token mentah dengan kolom qr_code meja yang hidup.
// Token wajib cocok dengan baris meja; payload hasil dekripsi saja tidak cukup.
func (s *SessionService) findTableByQRCode(tx *gorm.DB, token string) (*models.Table, error) {
	var table models.Table
	err := tx.Where("qr_code = ? AND is_active = ? AND is_deleted = ?", token, true, false).
		First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// ValidateQRCode -> true jika token QR cocok dengan salah satu meja aktif.
// Mengembalikan bool (bukan error) supaya caller HTTP bisa merespons
// "invalid code" tanpa penanganan error.
func (s *SessionService) ValidateQRCode(token string) bool {
	_, err := s.findTableByQRCode(s.DB, token)
	return err == nil
}

// FindActiveSession mencari sesi aktif terbaru untuk meja yang cocok dengan token.
// Sesi yang sudah lewat expires_at dibatalkan secara lazy dan dianggap tidak ada.
func (s *SessionService) FindActiveSession(token string) (*models.TableSession, bool) {
	table, err := s.findTableByQRCode(s.DB, token)
	if err != nil {
		return nil, false
	}

	var session models.TableSession
	err = s.DB.Where("table_id = ? AND status = ?", table.ID, models.SessionStatusActive).
		Order("id DESC").
		First(&session).Error
	if err != nil {
		return nil, false
	}

	if session.IsExpired(time.Now()) {
		s.cancelExpired(s.DB, &session)
		return nil, false
	}

	session.Table = *table
	return &session, true
}

// ValidateSessionCode -> true hanya jika ada sesi dengan id tersebut,
// tmp code yang sama persis, dan status masih active.
func (s *SessionService) ValidateSessionCode(sessionID uint, code string) bool {
	var session models.TableSession
	err := s.DB.Where("id = ? AND tmp_code = ? AND status = ?",
		sessionID, code, models.SessionStatusActive).
		First(&session).Error
	if err != nil {
		return false
	}

	if session.IsExpired(time.Now()) {
		s.cancelExpired(s.DB, &session)
		return false
	}
	return true
}

// RequireSessionByQRAndCode adalah varian yang mengembalikan error, dipakai
// untuk menolak handshake WebSocket sebelum socket diterima. Jangan disatukan
// dengan ValidateSessionCode: caller HTTP butuh respons negatif terstruktur,
// caller WebSocket butuh penolakan keras.
func (s *SessionService) RequireSessionByQRAndCode(token, code string) (*models.TableSession, error) {
	table, err := s.findTableByQRCode(s.DB, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewValidationError("Invalid QR code")
		}
		return nil, err
	}

	var session models.TableSession
	err = s.DB.Where("table_id = ? AND tmp_code = ? AND status = ?",
		table.ID, code, models.SessionStatusActive).
		Order("id DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("No active session found for this code")
		}
		return nil, err
	}

	if session.IsExpired(time.Now()) {
		s.cancelExpired(s.DB, &session)
		return nil, utils.NewNotFoundError("Session has expired")
	}

	session.Table = *table
	return &session, nil
}

// GetOrCreateSession mengembalikan sesi aktif untuk meja yang cocok dengan
// token, atau membuat sesi baru jika belum ada. Check-then-insert dibungkus
// transaksi dengan row lock pada baris meja supaya dua scan pertama yang
// bersamaan tidak menghasilkan dua sesi aktif untuk satu meja.
func (s *SessionService) GetOrCreateSession(token string) (*models.TableSession, bool, error) {
	var (
		session *models.TableSession
		created bool
	)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		locked := tx
		// SQLite tidak mendukung SELECT ... FOR UPDATE
		if tx.Dialector.Name() == "mysql" {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		table, err := s.findTableByQRCode(locked, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewValidationError("Invalid QR code")
			}
			return err
		}

		var existing models.TableSession
		err = tx.Where("table_id = ? AND status = ?", table.ID, models.SessionStatusActive).
			Order("id DESC").
			First(&existing).Error
		switch {
		case err == nil:
			if !existing.IsExpired(time.Now()) {
				existing.Table = *table
				session = &existing
				return nil
			}
			if err := s.cancelExpired(tx, &existing); err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		fresh, err := s.createSession(tx, table)
		if err != nil {
			return err
		}
		session = fresh
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return session, created, nil
}

// createSession menyisipkan sesi baru dengan status active, tmp code 6 digit,
// dan session token unik.
func (s *SessionService) createSession(tx *gorm.DB, table *models.Table) (*models.TableSession, error) {
	expiresAt := time.Now().Add(sessionTTL())
	session := models.TableSession{
		TableID:      table.ID,
		Status:       models.SessionStatusActive,
		TmpCode:      utils.GenerateTmpCode(),
		SessionToken: utils.GenerateSessionToken(),
		ExpiresAt:    &expiresAt,
	}

	if err := tx.Create(&session).Error; err != nil {
		return nil, err
	}
	if session.ID == 0 {
		// Guard terhadap insert yang gagal diam-diam
		return nil, utils.NewDatabaseError("failed to create table session")
	}

	utils.InfoLogger.Printf("New table session created (ID=%d) for table %s", session.ID, table.Identifier)

	session.Table = *table
	return &session, nil
}

// UpdateTableSession melakukan update parsial pada sesi, dan menandai
// waktu selesai/batal saat status berpindah ke terminal.
func (s *SessionService) UpdateTableSession(id uint, update SessionUpdate) (*models.TableSession, error) {
	var session models.TableSession
	if err := s.DB.First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Table session not found")
		}
		return nil, err
	}

	if update.Status != nil {
		switch *update.Status {
		case models.SessionStatusActive, models.SessionStatusCompleted, models.SessionStatusCancelled:
		default:
			return nil, utils.NewValidationError("Invalid session status")
		}

		now := time.Now()
		session.Status = *update.Status
		if *update.Status == models.SessionStatusCompleted {
			session.CompletedAt = &now
		}
		if *update.Status == models.SessionStatusCancelled {
			session.CancelledAt = &now
		}
	}
	if update.CustomerCount != nil {
		session.CustomerCount = *update.CustomerCount
	}
	if update.Cart != nil {
		session.Cart = update.Cart
	}
	if update.ExpiresAt != nil {
		session.ExpiresAt = update.ExpiresAt
	}

	if err := s.DB.Save(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func (s *SessionService) cancelExpired(tx *gorm.DB, session *models.TableSession) error {
	now := time.Now()
	session.Status = models.SessionStatusCancelled
	session.CancelledAt = &now
	if err := tx.Save(session).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Table session %d expired and cancelled", session.ID)
	return nil
}

func sessionTTL() time.Duration {
	if raw := os.Getenv("SESSION_TTL_MINUTES"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultSessionTTL
}
