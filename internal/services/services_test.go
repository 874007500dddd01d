package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/showcall/showcall-backend/internal/config"
	"github.com/showcall/showcall-backend/internal/database"
	"github.com/showcall/showcall-backend/internal/models"
)

// newTestDB opens an isolated in-memory database migrated to the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		ResetTokenExpiry: time.Hour,
	}
}

// seedUser creates an auth identity and lets the model hooks provision the
// profile, role grant and (for talents) talent profile.
func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := &models.User{
		ID:              uuid.New(),
		Email:           email,
		Password:        "$2a$10$not.a.real.hash",
		SignupRole:      role,
		SignupFirstName: "Jamie",
		SignupLastName:  "Doe",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func profileFor(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.UserProfile {
	t.Helper()
	var profile models.UserProfile
	require.NoError(t, db.First(&profile, "user_id = ?", userID).Error)
	return &profile
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func adminActor(t *testing.T, db *gorm.DB) Actor {
	t.Helper()
	u := seedUser(t, db, "admin-"+uuid.NewString()[:8]+"@example.com", models.RoleAdmin)
	return Actor{UserID: u.ID, Role: models.RoleAdmin}
}
