package handlers

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/dto"
	"github.com/showcall/showcall-backend/internal/services"
)

func newAuthApp(t *testing.T, db *gorm.DB, sink ResetTokenSink) (*fiber.App, *services.AuthService) {
	t.Helper()
	activity := services.NewActivityService(db)
	authSvc := services.NewAuthService(db, testConfig(), activity)
	userSvc := services.NewUserService(db, nil, activity)
	h := NewAuthHandler(authSvc, userSvc, sink)

	app := fiber.New()
	app.Post("/auth/password-reset", h.RequestReset)
	app.Post("/auth/password-reset/confirm", h.ConfirmReset)
	return app, authSvc
}

func TestPasswordResetFlowDeliversUsableToken(t *testing.T) {
	db := newTestDB(t)

	var gotEmail, gotToken string
	app, authSvc := newAuthApp(t, db, func(email, token string) {
		gotEmail, gotToken = email, token
	})

	_, err := authSvc.Register(&dto.RegisterRequest{
		Email: "resetme@example.com", Password: "original-pw-123",
		FirstName: "Kai", LastName: "Rowe",
	})
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/password-reset",
		dto.ResetRequest{Email: "resetme@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "resetme@example.com", gotEmail)
	require.NotEmpty(t, gotToken, "the issued token must reach the delivery sink")

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/auth/password-reset/confirm",
		dto.ResetConfirmRequest{Token: gotToken, Password: "brand-new-pw-456"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = authSvc.Login(&dto.LoginRequest{
		Email: "resetme@example.com", Password: "brand-new-pw-456",
	}, "127.0.0.1", "test")
	assert.NoError(t, err, "the delivered token completes the reset")
}

func TestPasswordResetUnknownEmailStaysQuiet(t *testing.T) {
	db := newTestDB(t)

	sinkCalled := false
	app, _ := newAuthApp(t, db, func(email, token string) { sinkCalled = true })

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/auth/password-reset",
		dto.ResetRequest{Email: "nobody@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "unknown addresses still answer 200")
	assert.False(t, sinkCalled, "no token leaves the service for unknown addresses")
}
