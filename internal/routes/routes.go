package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/showcall/showcall-backend/internal/config"
	"github.com/showcall/showcall-backend/internal/handlers"
	"github.com/showcall/showcall-backend/internal/middleware"
	"github.com/showcall/showcall-backend/internal/permissions"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	calendarHandler *handlers.CalendarHandler,
	talentHandler *handlers.TalentHandler,
	businessHandler *handlers.BusinessHandler,
	productHandler *handlers.ProductHandler,
	contentHandler *handlers.ContentHandler,
	activityHandler *handlers.ActivityHandler,
	exportHandler *handlers.ExportHandler,
	healthHandler *handlers.HealthHandler,
	realtimeHandler *handlers.RealtimeHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Public surfaces: talent showcase, storefront catalog, site content
	api.Get("/talents", talentHandler.Showcase)
	api.Get("/talents/:slug", talentHandler.BySlug)
	api.Get("/products", productHandler.List)
	api.Get("/content/:section", contentHandler.GetSection)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/password-reset", authHandler.RequestReset)
	auth.Post("/password-reset/confirm", authHandler.ConfirmReset)

	// Session endpoints (JWT required, any active account)
	jwt := middleware.JWTProtected(cfg)
	me := api.Group("/me", jwt, middleware.LoadProfile(db))
	me.Get("/", authHandler.Me)
	me.Put("/", authHandler.UpdateMe)
	me.Post("/avatar", authHandler.UploadAvatar)
	me.Post("/background", authHandler.UploadBackground)
	api.Post("/auth/logout", jwt, authHandler.Logout)

	// Calendar: listing gated on view, write authorization is per-event
	cal := api.Group("/calendar", jwt, middleware.RequireCapability(db, permissions.CalendarView))
	cal.Get("/", calendarHandler.List)
	cal.Post("/", calendarHandler.Create)
	cal.Put("/:id", calendarHandler.Update)
	cal.Delete("/:id", calendarHandler.Delete)
	cal.Get("/export/ics", calendarHandler.ExportICS)
	cal.Get("/export/csv", calendarHandler.ExportCSV)

	// Business accounts and event logistics
	api.Get("/business/account", jwt, middleware.LoadProfile(db), businessHandler.MyAccount)
	biz := api.Group("/business/events", jwt, middleware.RequireCapability(db, permissions.BusinessEvents))
	biz.Get("/:event_id/logistics", businessHandler.Logistics)
	biz.Post("/:event_id/travel", businessHandler.AddTravel)
	biz.Post("/:event_id/hotels", businessHandler.AddHotel)
	biz.Post("/:event_id/transport", businessHandler.AddTransport)
	biz.Post("/:event_id/contacts", businessHandler.AddContact)
	biz.Delete("/:event_id/:kind/:id", businessHandler.DeleteLogistics)

	// Talent management: per-record ownership is checked in the service
	talents := api.Group("/manage/talents", jwt, middleware.LoadProfile(db))
	talents.Get("/", talentHandler.ListAll)
	talents.Put("/:id", talentHandler.Update)
	talents.Post("/:id/headshot", talentHandler.UploadHeadshot)
	api.Put("/manage/talents-order", jwt,
		middleware.RequireCapability(db, permissions.ContentManage), talentHandler.Reorder)

	// Storefront management
	store := api.Group("/manage/products", jwt, middleware.RequireCapability(db, permissions.StoreManage))
	store.Get("/", productHandler.ListAll)
	store.Post("/", productHandler.Create)
	store.Put("/:id", productHandler.Update)
	store.Delete("/:id", productHandler.Delete)

	// Site content management
	content := api.Group("/manage/content", jwt, middleware.RequireCapability(db, permissions.ContentManage))
	content.Put("/:section/:key", contentHandler.SetKey)
	content.Delete("/:section/:key", contentHandler.DeleteKey)

	// Admin: user lifecycle and audit trails
	admin := api.Group("/admin", jwt, middleware.RequireCapability(db, permissions.UsersManage))
	admin.Get("/users", userHandler.List)
	admin.Post("/users", userHandler.Create)
	admin.Get("/users/:user_id", userHandler.Get)
	admin.Put("/users/:user_id/role", userHandler.ChangeRole)
	admin.Put("/users/:user_id/password", userHandler.SetPassword)
	admin.Delete("/users/:user_id", userHandler.Delete)
	admin.Get("/users/:user_id/activity", activityHandler.ListForUser)
	admin.Get("/export/login-history/:user_id", exportHandler.LoginHistory)
	admin.Get("/activity", activityHandler.List)
	admin.Get("/security-events", activityHandler.SecurityEvents)

	// Realtime change feed
	app.Use("/ws", jwt, realtimeHandler.Upgrade)
	app.Get("/ws", realtimeHandler.Stream())
}
