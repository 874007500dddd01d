package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
)

func newAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	return NewAuthService(db, testConfig(), NewActivityService(db))
}

func registerUser(t *testing.T, svc *AuthService, email, role string) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(&dto.RegisterRequest{
		Email:     email,
		Password:  "long-enough-pw",
		FirstName: "Sam",
		LastName:  "Reed",
		Role:      role,
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterSelfServiceRoles(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	resp := registerUser(t, svc, "talent@example.com", models.RoleTalent)
	assert.Equal(t, models.RoleTalent, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// privileged roles are not self-assignable and fall back to talent
	resp = registerUser(t, svc, "sneaky@example.com", models.RoleAdmin)
	assert.Equal(t, models.RoleTalent, resp.User.Role)

	resp = registerUser(t, svc, "biz@example.com", models.RoleBusiness)
	assert.Equal(t, models.RoleBusiness, resp.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	registerUser(t, svc, "dup@example.com", models.RoleTalent)
	_, err := svc.Register(&dto.RegisterRequest{Email: "dup@example.com", Password: "long-enough-pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRefreshTokenStoredHashed(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	resp := registerUser(t, svc, "talent@example.com", models.RoleTalent)

	var stored models.RefreshToken
	require.NoError(t, db.First(&stored, "user_id = ?", resp.User.ID).Error)
	assert.NotEqual(t, resp.RefreshToken, stored.TokenHash)
	assert.Len(t, stored.TokenHash, 64) // hex sha256
}

func TestLoginRecordsAndStampsLastLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	resp := registerUser(t, svc, "talent@example.com", models.RoleTalent)

	loginResp, err := svc.Login(&dto.LoginRequest{
		Email: "talent@example.com", Password: "long-enough-pw",
	}, "10.0.0.5", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, loginResp.User.ID)

	profile := profileFor(t, db, resp.User.ID)
	require.NotNil(t, profile.LastLogin)

	var record models.LoginRecord
	require.NoError(t, db.First(&record, "user_id = ?", resp.User.ID).Error)
	assert.Equal(t, "10.0.0.5", record.IP)
	assert.Equal(t, "test-agent", record.UserAgent)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	resp := registerUser(t, svc, "talent@example.com", models.RoleTalent)

	_, err := svc.Login(&dto.LoginRequest{Email: "talent@example.com", Password: "wrong-password"}, "10.0.0.5", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// failed attempts land in the security audit
	var count int64
	require.NoError(t, db.Model(&models.SecurityEvent{}).
		Where("event = ? AND user_id = ?", "login_failed", resp.User.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	resp := registerUser(t, svc, "talent@example.com", models.RoleTalent)
	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("user_id = ?", resp.User.ID).Update("active", false).Error)

	_, err := svc.Login(&dto.LoginRequest{Email: "talent@example.com", Password: "long-enough-pw"}, "", "")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshRotation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	resp := registerUser(t, svc, "talent@example.com", models.RoleTalent)

	rotated, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// the presented token is revoked on use
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: rotated.RefreshToken})
	require.NoError(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	resp := registerUser(t, svc, "talent@example.com", models.RoleTalent)
	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	registerUser(t, svc, "talent@example.com", models.RoleTalent)

	raw, err := svc.RequestPasswordReset("talent@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	require.NoError(t, svc.ResetPassword(raw, "brand-new-password"))

	_, err = svc.Login(&dto.LoginRequest{Email: "talent@example.com", Password: "brand-new-password"}, "", "")
	require.NoError(t, err)

	// the token is single-use
	err = svc.ResetPassword(raw, "another-password")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordResetUnknownEmailLeaksNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	raw, err := svc.RequestPasswordReset("ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, raw)

	var count int64
	require.NoError(t, db.Model(&models.PasswordResetToken{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdminSetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	resp := registerUser(t, svc, "talent@example.com", models.RoleTalent)
	userID := resp.User.ID

	err := svc.AdminSetPassword(Actor{UserID: uuid.New(), Role: models.RoleStaff}, userID, "admin-set-pass")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	require.NoError(t, svc.AdminSetPassword(adminActor(t, db), userID, "admin-set-pass"))

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("admin-set-pass")))

	// all refresh tokens are revoked
	var live int64
	require.NoError(t, db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = false", userID).Count(&live).Error)
	assert.Zero(t, live)

	err = svc.AdminSetPassword(adminActor(t, db), uuid.New(), "admin-set-pass")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
