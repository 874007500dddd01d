package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/config"
	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/models"
	"github.com/showcall/showcall-backend/internal/permissions"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAccountDisabled    = errors.New("account is disabled")
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	activity *ActivityService
}

func NewAuthService(db *gorm.DB, cfg *config.Config, activity *ActivityService) *AuthService {
	return &AuthService{db: db, cfg: cfg, activity: activity}
}

// Register handles public signup. Only the self-service roles are accepted;
// staff and admin accounts are created by admins through the user service.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role != models.RoleTalent && role != models.RoleBusiness {
		role = models.RoleTalent
	}

	user := models.User{
		ID:              uuid.New(),
		Email:           req.Email,
		Password:        string(hash),
		AuthProvider:    "email",
		SignupRole:      role,
		SignupFirstName: req.FirstName,
		SignupLastName:  req.LastName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	var profile models.UserProfile
	if err := s.db.First(&profile, "user_id = ?", user.ID).Error; err != nil {
		slog.Warn("signup provisioning verification failed", "user_id", user.ID, "error", err)
		profile = models.UserProfile{UserID: user.ID, Email: user.Email, Role: role}
	}

	return s.generateTokenPair(&user, &profile)
}

// Login verifies credentials, stamps last_login and appends a login record.
func (s *AuthService) Login(req *dto.LoginRequest, ip, userAgent string) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.activity.LogSecurityEvent("login_failed", "warning", &user.ID, nil, ip, map[string]interface{}{
			"email": req.Email,
		})
		return nil, ErrInvalidCredentials
	}

	var profile models.UserProfile
	if err := s.db.First(&profile, "user_id = ?", user.ID).Error; err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}
	if !profile.Active {
		return nil, ErrAccountDisabled
	}

	now := time.Now().UTC()
	if err := s.db.Model(&profile).Update("last_login", now).Error; err != nil {
		slog.Warn("failed to stamp last_login", "user_id", user.ID, "error", err)
	}

	record := models.LoginRecord{
		ID:        uuid.New(),
		UserID:    user.ID,
		Email:     user.Email,
		IP:        ip,
		UserAgent: userAgent,
	}
	if err := s.db.Create(&record).Error; err != nil {
		slog.Warn("failed to append login record", "user_id", user.ID, "error", err)
	}

	return s.generateTokenPair(&user, &profile)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	var profile models.UserProfile
	if err := s.db.First(&profile, "user_id = ?", user.ID).Error; err != nil {
		return nil, fmt.Errorf("profile not found: %w", err)
	}
	if !profile.Active {
		return nil, ErrAccountDisabled
	}

	return s.generateTokenPair(&user, &profile)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// RequestPasswordReset mints a one-time reset token. The raw token is
// returned to the caller for out-of-band delivery; only its hash is stored.
// An unknown email yields no error and no token, so the endpoint does not
// leak which addresses exist.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil
	}

	raw, err := randomToken()
	if err != nil {
		return "", err
	}

	record := models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	s.activity.LogSecurityEvent("password_reset_requested", "info", &user.ID, nil, "", nil)
	return raw, nil
}

// ResetPassword consumes a reset token and sets the new password. All
// refresh tokens for the user are revoked.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	var record models.PasswordResetToken
	if err := s.db.Where("token_hash = ? AND used = false", hashToken(token)).First(&record).Error; err != nil {
		return ErrInvalidToken
	}
	if time.Now().After(record.ExpiresAt) {
		return ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", record.UserID).
			Update("password", string(hash)).Error; err != nil {
			return err
		}
		if err := tx.Model(&record).Update("used", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.RefreshToken{}).Where("user_id = ?", record.UserID).
			Update("revoked", true).Error
	})
}

// AdminSetPassword lets a privileged actor replace a user's password.
func (s *AuthService) AdminSetPassword(actor Actor, userID uuid.UUID, newPassword string) error {
	if !actor.Can(permissions.UsersManage) {
		return ErrNotAuthorized
	}
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("password", string(hash))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	if err := s.db.Model(&models.RefreshToken{}).Where("user_id = ?", userID).
		Update("revoked", true).Error; err != nil {
		slog.Warn("failed to revoke refresh tokens after password set", "user_id", userID, "error", err)
	}

	s.activity.LogSecurityEvent("admin_password_set", "warning", &userID, &actor.UserID, "", nil)
	return nil
}

func (s *AuthService) generateTokenPair(user *models.User, profile *models.UserProfile) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user, profile)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Role:      profile.Role,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User, profile *models.UserProfile) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  profile.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawToken, err := randomToken()
	if err != nil {
		return "", err
	}

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func randomToken() (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(rawBytes), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
