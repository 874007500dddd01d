package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/permissions"
	"github.com/showcall/showcall-backend/internal/realtime"
	"github.com/showcall/showcall-backend/internal/storage"
)

var ErrTalentNotFound = errors.New("talent not found")

const talentTable = "talent_profiles"

// TalentService backs the public showcase and talent self-management.
type TalentService struct {
	db    *gorm.DB
	store storage.Store
	hub   *realtime.Hub
}

func NewTalentService(db *gorm.DB, store storage.Store, hub *realtime.Hub) *TalentService {
	return &TalentService{db: db, store: store, hub: hub}
}

// Showcase lists publicly visible, active talents in display order.
func (s *TalentService) Showcase() ([]models.TalentProfile, error) {
	var talents []models.TalentProfile
	err := s.db.Where("active = ? AND public_visibility = ?", true, true).
		Order("sort_rank ASC, name ASC").Find(&talents).Error
	return talents, err
}

func (s *TalentService) BySlug(slug string) (*models.TalentProfile, error) {
	var talent models.TalentProfile
	if err := s.db.First(&talent, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTalentNotFound
		}
		return nil, err
	}
	if !talent.Active || !talent.PublicVisibility {
		return nil, ErrTalentNotFound
	}
	return &talent, nil
}

// ListAll is the staff/admin directory view, inactive talents included.
func (s *TalentService) ListAll(actor Actor) ([]models.TalentProfile, error) {
	if !actor.Can(permissions.CalendarEdit) {
		return nil, ErrNotAuthorized
	}
	var talents []models.TalentProfile
	err := s.db.Order("sort_rank ASC, name ASC").Find(&talents).Error
	return talents, err
}

func (s *TalentService) get(id uuid.UUID) (*models.TalentProfile, error) {
	var talent models.TalentProfile
	if err := s.db.First(&talent, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTalentNotFound
		}
		return nil, err
	}
	return &talent, nil
}

// Update edits showcase fields. Talents edit their own profile; anyone else
// needs users:manage.
func (s *TalentService) Update(actor Actor, id uuid.UUID, req *dto.TalentUpdateRequest) (*models.TalentProfile, error) {
	talent, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if talent.UserID != actor.UserID && !actor.Can(permissions.UsersManage) {
		return nil, ErrNotAuthorized
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.PublicVisibility != nil {
		updates["public_visibility"] = *req.PublicVisibility
	}

	if len(updates) > 0 {
		if err := s.db.Model(talent).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.hub.Publish(talentTable, "update", talent.ID)
	}
	return talent, nil
}

// SetHeadshot stores a headshot image under the owning user's prefix and
// records its public URL.
func (s *TalentService) SetHeadshot(actor Actor, id uuid.UUID, filename string, data []byte) (string, error) {
	talent, err := s.get(id)
	if err != nil {
		return "", err
	}
	if talent.UserID != actor.UserID && !actor.Can(permissions.UsersManage) {
		return "", ErrNotAuthorized
	}

	url, err := s.store.Upload(storage.BucketHeadshots, talent.UserID.String()+"/"+filename, data, true)
	if err != nil {
		return "", fmt.Errorf("headshot upload failed: %w", err)
	}
	if err := s.db.Model(talent).Update("headshot_url", url).Error; err != nil {
		return "", err
	}

	s.hub.Publish(talentTable, "update", talent.ID)
	return url, nil
}

// Reorder persists the showcase display order.
func (s *TalentService) Reorder(actor Actor, orderedIDs []uuid.UUID) error {
	if !actor.Can(permissions.ContentManage) {
		return ErrNotAuthorized
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for rank, id := range orderedIDs {
			if err := tx.Model(&models.TalentProfile{}).
				Where("id = ?", id).Update("sort_rank", rank).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.Publish(talentTable, "update", uuid.Nil)
	return nil
}
