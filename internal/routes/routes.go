package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/resqr-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Legal     *handlers.LegalHandler
	Profile   *handlers.ProfileHandler
	Emergency *handlers.EmergencyHandler
	QR        *handlers.QRHandler
	Dashboard *handlers.DashboardHandler
	Catalog   *handlers.CatalogHandler
	Checkout  *handlers.CheckoutHandler
	Admin     *handlers.AdminHandler
}

// AppConfig is the Fiber configuration these routes rely on. Stores keep
// params, cookies and headers past the request, and scanned tags send
// percent-encoded slugs.
func AppConfig(errorHandler fiber.ErrorHandler) fiber.Config {
	return fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
		Immutable:    true,
		UnescapePath: true,
	}
}

func ipLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	// Responder page, scanned from the QR tag
	app.Get("/e/:slug", ipLimiter(120), h.Emergency.Page)

	api := app.Group("/api")

	// Profile event streams are long-lived; keep them out of the limiter
	api.Get("/profiles/:slug/events", h.Profile.Events)

	// General API rate limiter: 60 req/min per IP
	api.Use(ipLimiter(60))

	api.Get("/health", h.Health.Check)

	api.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	api.Get("/legal/terms", h.Legal.TermsOfService)
	api.Get("/legal/refunds", h.Legal.RefundPolicy)
	api.Get("/legal/shipping", h.Legal.ShippingPolicy)

	// Emergency lookups (public)
	api.Get("/emergency/:slug", h.Emergency.Profile)
	api.Post("/emergency/:slug/location", h.Emergency.SendLocation)

	// Wizard: anonymous allowed, a valid token changes where submit leads
	wiz := api.Group("/wizard", middleware.OptionalAuth(cfg))
	wiz.Post("/", h.Profile.StartWizard)
	wiz.Get("/:id", h.Profile.GetWizard)
	wiz.Patch("/:id", h.Profile.UpdateWizard)
	wiz.Post("/:id/next", h.Profile.NextStep)
	wiz.Post("/:id/back", h.Profile.PrevStep)

	// Session-pointer views
	api.Get("/dashboard", h.Dashboard.Get)
	api.Put("/profiles/:slug", h.Profile.UpdateProfile)
	api.Delete("/session", h.Profile.ClearSession)
	api.Get("/qr", h.QR.Image)
	api.Get("/qr/download", h.QR.Download)
	api.Get("/qr/url", h.QR.URL)

	// Catalog (public)
	api.Get("/products", h.Catalog.ListProducts)
	api.Get("/ads/promoted", h.Catalog.PromotedAd)

	// Hosted checkout: stricter limit on the callbacks
	checkout := api.Group("/checkout")
	checkout.Get("/:productID", h.Checkout.Descriptor)
	checkout.Post("/success", ipLimiter(10), h.Checkout.Success)
	checkout.Post("/failure", ipLimiter(10), h.Checkout.Failure)

	// Admin panel (token or admin identity required)
	admin := api.Group("/admin", middleware.OptionalAuth(cfg), middleware.AdminRequired(cfg))
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/profiles", h.Admin.ListProfiles)
	admin.Delete("/profiles/:slug", h.Admin.DeleteProfile)
	admin.Get("/orders", h.Admin.ListOrders)

	admin.Post("/products", h.Catalog.CreateProduct)
	admin.Put("/products/:id", h.Catalog.UpdateProduct)
	admin.Delete("/products/:id", h.Catalog.DeleteProduct)

	admin.Get("/ads", h.Catalog.ListAds)
	admin.Post("/ads", h.Catalog.CreateAd)
	admin.Put("/ads/:id", h.Catalog.UpdateAd)
	admin.Delete("/ads/:id", h.Catalog.DeleteAd)
}
