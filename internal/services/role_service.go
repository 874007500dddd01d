package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/permissions"
)

var (
	ErrSelfRoleChange  = errors.New("cannot change your own role")
	ErrUnknownRole     = errors.New("unknown role")
	ErrProfileNotFound = errors.New("user profile not found")
	// ErrVersionConflict means another role transition won the version check.
	ErrVersionConflict = errors.New("profile was modified concurrently, retry")
)

// RoleService coordinates role transitions. The whole transition runs in one
// transaction guarded by the profile version column, so a failure rolls back
// every step and concurrent transitions for the same user cannot interleave.
// Audit writes stay best-effort outside the transaction.
type RoleService struct {
	db       *gorm.DB
	activity *ActivityService
}

func NewRoleService(db *gorm.DB, activity *ActivityService) *RoleService {
	return &RoleService{db: db, activity: activity}
}

// ChangeRole moves a user to newRole and keeps the dependent records (role
// grant, talent profile activation, business account linkage) consistent
// with it. Self-role-change is rejected unconditionally, regardless of
// privilege.
func (s *RoleService) ChangeRole(actor Actor, targetUserID uuid.UUID, newRole string) (*models.UserProfile, error) {
	if !models.ValidRole(newRole) {
		return nil, ErrUnknownRole
	}
	if actor.UserID == targetUserID {
		return nil, ErrSelfRoleChange
	}
	if !actor.Can(permissions.UsersManage) {
		return nil, ErrNotAuthorized
	}

	var oldRole string
	var updated models.UserProfile

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var profile models.UserProfile
		if err := tx.First(&profile, "user_id = ?", targetUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		oldRole = profile.Role

		// Optimistic version check: zero rows means a concurrent writer won.
		res := tx.Model(&models.UserProfile{}).
			Where("user_id = ? AND version = ?", targetUserID, profile.Version).
			Updates(map[string]interface{}{
				"role":    newRole,
				"version": profile.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		// Replace the role grant: remove stale rows, insert the new one.
		// The grant hook provisions a talent profile on a first talent grant.
		if err := tx.Where("user_id = ?", targetUserID).Delete(&models.RoleGrant{}).Error; err != nil {
			return fmt.Errorf("failed to remove stale role grants: %w", err)
		}
		grant := models.RoleGrant{ID: uuid.New(), UserID: targetUserID, Role: newRole}
		if err := tx.Create(&grant).Error; err != nil {
			return fmt.Errorf("failed to persist role grant: %w", err)
		}

		// Leaving talent: soft-deactivate, never delete; bookings reference it.
		if oldRole == models.RoleTalent && newRole != models.RoleTalent {
			if err := tx.Model(&models.TalentProfile{}).
				Where("user_id = ?", targetUserID).
				Updates(map[string]interface{}{
					"active":            false,
					"public_visibility": false,
				}).Error; err != nil {
				return fmt.Errorf("failed to deactivate talent profile: %w", err)
			}
		}

		// Returning to talent: reactivate the existing row, keeping history.
		if oldRole != models.RoleTalent && newRole == models.RoleTalent {
			if err := tx.Model(&models.TalentProfile{}).
				Where("user_id = ?", targetUserID).
				Update("active", true).Error; err != nil {
				return fmt.Errorf("failed to reactivate talent profile: %w", err)
			}
		}

		if newRole == models.RoleBusiness {
			if _, err := ensureBusinessAccount(tx, targetUserID); err != nil {
				return err
			}
		}

		return tx.First(&updated, "user_id = ?", targetUserID).Error
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(&targetUserID, &actor.UserID, "role_changed", map[string]interface{}{
		"old_role": oldRole,
		"new_role": newRole,
	})
	s.activity.LogSecurityEvent("role_change", "warning", &targetUserID, &actor.UserID, "", map[string]interface{}{
		"old_role": oldRole,
		"new_role": newRole,
	})

	return &updated, nil
}
