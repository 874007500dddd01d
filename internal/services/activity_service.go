package services

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/models"
)

// ActivityService writes the append-only audit trails. Every write here is
// best-effort: a failed audit insert is a warning, never a failed operation.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Log appends an application activity entry.
func (s *ActivityService) Log(userID, adminUserID *uuid.UUID, action string, details map[string]interface{}) {
	entry := models.ActivityLog{
		ID:          uuid.New(),
		UserID:      userID,
		AdminUserID: adminUserID,
		Action:      action,
		Details:     marshalDetails(details),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Warn("activity log insert failed", "action", action, "error", err)
	}
}

// LogSecurityEvent appends a security audit entry.
func (s *ActivityService) LogSecurityEvent(event, severity string, userID, actorID *uuid.UUID, ip string, details map[string]interface{}) {
	entry := models.SecurityEvent{
		ID:        uuid.New(),
		Event:     event,
		Severity:  severity,
		UserID:    userID,
		ActorID:   actorID,
		IP:        ip,
		Details:   marshalDetails(details),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Warn("security event insert failed", "event", event, "error", err)
	}
}

func (s *ActivityService) List(limit, offset int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := s.db.Order("created_at DESC").Limit(clampLimit(limit)).Offset(offset).Find(&logs).Error
	return logs, err
}

func (s *ActivityService) ListForUser(userID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(clampLimit(limit)).Find(&logs).Error
	return logs, err
}

func (s *ActivityService) ListSecurityEvents(limit, offset int) ([]models.SecurityEvent, error) {
	var events []models.SecurityEvent
	err := s.db.Order("created_at DESC").Limit(clampLimit(limit)).Offset(offset).Find(&events).Error
	return events, err
}

func (s *ActivityService) LoginHistory(userID uuid.UUID) ([]models.LoginRecord, error) {
	var records []models.LoginRecord
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	return records, err
}

func marshalDetails(details map[string]interface{}) datatypes.JSON {
	if len(details) == 0 {
		return datatypes.JSON([]byte("{}"))
	}
	b, err := json.Marshal(details)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(b)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}
