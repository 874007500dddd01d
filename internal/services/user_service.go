package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/permissions"
	"github.com/showcall/showcall-backend/internal/storage"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles admin-side user lifecycle: creation with provisioning
// verification and permanent deletion with full dependent cleanup.
type UserService struct {
	db       *gorm.DB
	store    storage.Store
	activity *ActivityService
}

func NewUserService(db *gorm.DB, store storage.Store, activity *ActivityService) *UserService {
	return &UserService{db: db, store: store, activity: activity}
}

// Create provisions an auth identity; the model hooks create the baseline
// profile, role grant and (for talents) talent profile. The service then
// verifies the derived rows exist and warns, without failing, when the
// verification comes up short.
func (s *UserService) Create(actor Actor, req *dto.CreateUserRequest) (*models.UserProfile, error) {
	if !actor.Can(permissions.UsersManage) {
		return nil, ErrNotAuthorized
	}
	if req.Email == "" || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}
	if !models.ValidRole(req.Role) {
		return nil, ErrUnknownRole
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:              uuid.New(),
		Email:           req.Email,
		Password:        string(hash),
		AuthProvider:    "email",
		Confirmed:       true, // admin-created accounts skip confirmation
		SignupRole:      req.Role,
		SignupFirstName: req.FirstName,
		SignupLastName:  req.LastName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := s.verifyProvisioning(user.ID)
	if profile != nil && req.Phone != "" {
		if err := s.db.Model(profile).Update("phone", req.Phone).Error; err != nil {
			slog.Warn("failed to set phone on new profile", "user_id", user.ID, "error", err)
		}
	}

	if req.Role == models.RoleBusiness {
		if _, err := ensureBusinessAccount(s.db, user.ID); err != nil {
			slog.Warn("failed to ensure business account for new user", "user_id", user.ID, "error", err)
		}
	}

	s.activity.Log(&user.ID, &actor.UserID, "user_created", map[string]interface{}{
		"email": req.Email,
		"role":  req.Role,
	})

	if profile == nil {
		return nil, fmt.Errorf("user created but profile provisioning could not be verified")
	}
	return profile, nil
}

// verifyProvisioning checks the hook-created rows. Missing rows are warned
// about, not fatal: the identity exists and an admin can repair the rest.
func (s *UserService) verifyProvisioning(userID uuid.UUID) *models.UserProfile {
	var profile models.UserProfile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		slog.Warn("provisioning verification: profile missing", "user_id", userID, "error", err)
		return nil
	}

	var grantCount int64
	if err := s.db.Model(&models.RoleGrant{}).Where("user_id = ?", userID).Count(&grantCount).Error; err != nil || grantCount == 0 {
		slog.Warn("provisioning verification: role grant missing", "user_id", userID, "error", err)
	}

	if profile.Role == models.RoleTalent {
		var talentCount int64
		if err := s.db.Model(&models.TalentProfile{}).Where("user_id = ?", userID).Count(&talentCount).Error; err != nil || talentCount == 0 {
			slog.Warn("provisioning verification: talent profile missing", "user_id", userID, "error", err)
		}
	}

	return &profile
}

func (s *UserService) List(actor Actor) ([]models.UserProfile, error) {
	if !actor.Can(permissions.UsersManage) {
		return nil, ErrNotAuthorized
	}
	var profiles []models.UserProfile
	err := s.db.Order("created_at ASC").Find(&profiles).Error
	return profiles, err
}

func (s *UserService) Get(userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial profile update. Users may edit their own
// profile; everyone else needs users:manage.
func (s *UserService) UpdateProfile(actor Actor, userID uuid.UUID, req *dto.ProfileUpdateRequest) (*models.UserProfile, error) {
	if actor.UserID != userID && !actor.Can(permissions.UsersManage) {
		return nil, ErrNotAuthorized
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	if len(updates) > 0 {
		res := s.db.Model(&models.UserProfile{}).Where("user_id = ?", userID).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrUserNotFound
		}
	}
	return s.Get(userID)
}

// SetAvatar stores an avatar image and records its public URL.
func (s *UserService) SetAvatar(actor Actor, userID uuid.UUID, filename string, data []byte) (string, error) {
	if actor.UserID != userID && !actor.Can(permissions.UsersManage) {
		return "", ErrNotAuthorized
	}

	url, err := s.store.Upload(storage.BucketAvatars, userID.String()+"/"+filename, data, true)
	if err != nil {
		return "", fmt.Errorf("avatar upload failed: %w", err)
	}
	if err := s.db.Model(&models.UserProfile{}).Where("user_id = ?", userID).Update("avatar_url", url).Error; err != nil {
		return "", err
	}
	return url, nil
}

// SetBackgroundImage stores a profile background image and records its
// public URL.
func (s *UserService) SetBackgroundImage(actor Actor, userID uuid.UUID, filename string, data []byte) (string, error) {
	if actor.UserID != userID && !actor.Can(permissions.UsersManage) {
		return "", ErrNotAuthorized
	}

	url, err := s.store.Upload(storage.BucketBackgrounds, userID.String()+"/"+filename, data, true)
	if err != nil {
		return "", fmt.Errorf("background image upload failed: %w", err)
	}
	if err := s.db.Model(&models.UserProfile{}).Where("user_id = ?", userID).Update("background_image_url", url).Error; err != nil {
		return "", err
	}
	return url, nil
}

// HardDelete permanently removes a user: profile, role grants, talent
// profiles, calendar events and their logistics, business accounts, tokens,
// login records and stored files, all in one transaction. Only after that
// succeeds is the auth identity removed, best-effort: losing auth-identity
// consistency is preferred over losing cleanup completeness. Activity logs
// are append-only and survive the purge.
func (s *UserService) HardDelete(actor Actor, userID uuid.UUID) error {
	if !actor.Can(permissions.UsersManage) {
		return ErrNotAuthorized
	}

	var profile models.UserProfile
	if err := s.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var talentIDs []uuid.UUID
		if err := tx.Model(&models.TalentProfile{}).Where("user_id = ?", userID).
			Pluck("id", &talentIDs).Error; err != nil {
			return err
		}

		if len(talentIDs) > 0 {
			var eventIDs []uuid.UUID
			if err := tx.Model(&models.CalendarEvent{}).Where("talent_id IN ?", talentIDs).
				Pluck("id", &eventIDs).Error; err != nil {
				return err
			}
			if len(eventIDs) > 0 {
				for _, m := range []interface{}{
					&models.EventTravel{}, &models.EventHotel{},
					&models.EventTransport{}, &models.EventContact{},
				} {
					if err := tx.Where("event_id IN ?", eventIDs).Delete(m).Error; err != nil {
						return err
					}
				}
				if err := tx.Where("id IN ?", eventIDs).Delete(&models.CalendarEvent{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.TalentProfile{}).Error; err != nil {
				return err
			}
		}

		for _, m := range []interface{}{
			&models.RoleGrant{}, &models.BusinessAccount{},
			&models.RefreshToken{}, &models.PasswordResetToken{},
			&models.LoginRecord{},
		} {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.UserProfile{}).Error; err != nil {
			return err
		}

		// File purge participates in the transaction's success: a failed
		// removal rolls the row cleanup back.
		for _, bucket := range []string{storage.BucketAvatars, storage.BucketBackgrounds, storage.BucketHeadshots, storage.BucketDocuments} {
			if err := s.store.RemovePrefix(bucket, userID.String()); err != nil {
				return fmt.Errorf("failed to purge %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Best-effort tail: the cleanup already succeeded.
	if err := s.db.Where("id = ?", userID).Delete(&models.User{}).Error; err != nil {
		slog.Warn("auth identity removal failed after cleanup", "user_id", userID, "error", err)
	}

	s.activity.Log(&userID, &actor.UserID, "user_deleted", map[string]interface{}{
		"email": profile.Email,
	})
	s.activity.LogSecurityEvent("user_hard_delete", "critical", &userID, &actor.UserID, "", nil)

	return nil
}
