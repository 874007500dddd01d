package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showcall/showcall-backend/internal/models"
)

func TestChangeRoleRejectsSelfChange(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	actor := Actor{UserID: admin.ID, Role: models.RoleAdmin}

	// even full privileges never allow changing your own role
	_, err := svc.ChangeRole(actor, admin.ID, models.RoleStaff)
	assert.ErrorIs(t, err, ErrSelfRoleChange)

	assert.Equal(t, models.RoleAdmin, profileFor(t, db, admin.ID).Role)
}

func TestChangeRoleRequiresUsersManage(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))

	staff := seedUser(t, db, "staff@example.com", models.RoleStaff)
	target := seedUser(t, db, "talent@example.com", models.RoleTalent)

	_, err := svc.ChangeRole(Actor{UserID: staff.ID, Role: models.RoleStaff}, target.ID, models.RoleBusiness)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))

	target := seedUser(t, db, "talent@example.com", models.RoleTalent)

	_, err := svc.ChangeRole(adminActor(t, db), target.ID, "superuser")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestChangeRoleMissingProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))

	_, err := svc.ChangeRole(adminActor(t, db), uuid.New(), models.RoleStaff)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestChangeRoleReplacesGrantAndBumpsVersion(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))

	target := seedUser(t, db, "talent@example.com", models.RoleTalent)
	before := profileFor(t, db, target.ID)

	updated, err := svc.ChangeRole(adminActor(t, db), target.ID, models.RoleStaff)
	require.NoError(t, err)

	assert.Equal(t, models.RoleStaff, updated.Role)
	assert.Equal(t, before.Version+1, updated.Version)

	var grants []models.RoleGrant
	require.NoError(t, db.Where("user_id = ?", target.ID).Find(&grants).Error)
	require.Len(t, grants, 1)
	assert.Equal(t, models.RoleStaff, grants[0].Role)
}

func TestTalentRoundTripKeepsSameProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))
	actor := adminActor(t, db)

	target := seedUser(t, db, "talent@example.com", models.RoleTalent)

	var original models.TalentProfile
	require.NoError(t, db.First(&original, "user_id = ?", target.ID).Error)
	require.True(t, original.Active)

	// leaving talent deactivates the profile but keeps the row
	_, err := svc.ChangeRole(actor, target.ID, models.RoleStaff)
	require.NoError(t, err)

	var deactivated models.TalentProfile
	require.NoError(t, db.First(&deactivated, "user_id = ?", target.ID).Error)
	assert.Equal(t, original.ID, deactivated.ID)
	assert.False(t, deactivated.Active)
	assert.False(t, deactivated.PublicVisibility)

	// returning reactivates the same row instead of creating a second one
	_, err = svc.ChangeRole(actor, target.ID, models.RoleTalent)
	require.NoError(t, err)

	var talents []models.TalentProfile
	require.NoError(t, db.Where("user_id = ?", target.ID).Find(&talents).Error)
	require.Len(t, talents, 1)
	assert.Equal(t, original.ID, talents[0].ID)
	assert.True(t, talents[0].Active)
}

func TestChangeRoleToBusinessProvisionsOneAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))
	actor := adminActor(t, db)

	target := seedUser(t, db, "talent@example.com", models.RoleTalent)

	_, err := svc.ChangeRole(actor, target.ID, models.RoleBusiness)
	require.NoError(t, err)

	// transitioning into business again keeps the account unique
	_, err = svc.ChangeRole(actor, target.ID, models.RoleStaff)
	require.NoError(t, err)
	_, err = svc.ChangeRole(actor, target.ID, models.RoleBusiness)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.BusinessAccount{}).
		Where("user_id = ?", target.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestStaleVersionWriteAffectsNoRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db, NewActivityService(db))

	target := seedUser(t, db, "talent@example.com", models.RoleTalent)
	stale := profileFor(t, db, target.ID)

	_, err := svc.ChangeRole(adminActor(t, db), target.ID, models.RoleStaff)
	require.NoError(t, err)

	// a writer still holding the pre-transition version loses the check
	res := db.Model(&models.UserProfile{}).
		Where("user_id = ? AND version = ?", target.ID, stale.Version).
		Update("role", models.RoleBusiness)
	require.NoError(t, res.Error)
	assert.EqualValues(t, 0, res.RowsAffected)

	assert.Equal(t, models.RoleStaff, profileFor(t, db, target.ID).Role)
}
