// Package router defines how HTTP routes are registered for the API. The
// surface splits three ways: unauthenticated public routes (catalog reads
// and submission intake), the login/refresh endpoints, and the bearer-gated
// administrative routes.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sokakpati/shelter-api/internal/config"
	"github.com/sokakpati/shelter-api/internal/handler"
	"github.com/sokakpati/shelter-api/internal/middleware"
)

// Handlers bundles every handler the route tables need.
type Handlers struct {
	Auth       *handler.AuthHandler
	AdminUsers *handler.AdminUserHandler
	Pets       *handler.PetHandler
	Forms      *handler.FormHandler
	Donations  *handler.DonationHandler
	Team       *handler.TeamHandler
	Upload     *handler.UploadHandler
}

// RegisterRoutes registers the health check on the provided Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated surface: catalog reads and
// submission intake (rate limited). The middlewares degrade to
// pass-throughs when Redis is unavailable.
func RegisterPublic(e *echo.Echo, h Handlers, rdb *redis.Client) {
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Pet reads are served fresh, never cached: an adoption decision must
	// be visible on the very next catalog read, and nothing invalidates
	// cache entries when the reconciler flips the flag.
	e.GET("/v1/pets", h.Pets.ListAvailable)
	e.GET("/v1/pets/:id", h.Pets.Get)

	// Slow-moving catalog reads
	e.GET("/v1/donations/approved", h.Donations.ListApproved, cache)
	e.GET("/v1/team", h.Team.List, cache)

	// Submission intake, always created in the pending state
	e.POST("/v1/adoption-forms", h.Forms.CreateAdoption, limit)
	e.POST("/v1/volunteer-forms", h.Forms.CreateVolunteer, limit)
	e.POST("/v1/contact-forms", h.Forms.CreateContact, limit)
	e.POST("/v1/donations", h.Donations.Create, limit)

	// Image upload; unauthenticated like the rest of the intake surface,
	// which is why it shares the rate limiter.
	e.POST("/v1/upload", h.Upload.Upload, limit)
}

// RegisterAuth registers login and token exchange under /v1/admin. Logout
// accepts either a refresh token in the body or a bearer header, so it is
// registered twice: once open, once behind the gate.
func RegisterAuth(e *echo.Echo, h Handlers) {
	e.POST("/v1/admin/login", h.Auth.Login)
	e.POST("/v1/admin/refresh", h.Auth.Refresh)
	e.POST("/v1/admin/logout", h.Auth.Logout)
}

// RegisterAdmin registers every bearer-gated route. Any valid credential
// grants full administrative capability; there is no role separation.
func RegisterAdmin(e *echo.Echo, h Handlers, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.GET("/me", h.Auth.Me)
	g.POST("/logout", h.Auth.Logout)

	// Staff accounts
	g.POST("/admin/register", h.Auth.Register)
	g.GET("/admin/users", h.AdminUsers.List)
	g.PUT("/admin/users/:id", h.AdminUsers.Update)
	g.DELETE("/admin/users/:id", h.AdminUsers.Delete)

	// Pet catalog management
	g.GET("/admin/pets", h.Pets.ListAll)
	g.POST("/pets", h.Pets.Create)
	g.PUT("/pets/:id", h.Pets.Update)
	g.DELETE("/pets/:id", h.Pets.Delete)

	// Adoption form review
	g.GET("/adoption-forms", h.Forms.ListAdoption)
	g.PUT("/adoption-forms/:id/status", h.Forms.UpdateAdoptionStatus)
	g.DELETE("/adoption-forms/:id", h.Forms.Delete)

	// Generic form management across kinds
	g.GET("/admin/forms", h.Forms.List)
	g.PUT("/admin/forms/:id/status", h.Forms.UpdateStatus)
	g.DELETE("/admin/forms/:id", h.Forms.Delete)

	// Donations
	g.GET("/admin/donations", h.Donations.ListAll)
	g.PUT("/admin/donations/:id/status", h.Donations.UpdateStatus)
	g.DELETE("/admin/donations/:id", h.Donations.Delete)

	// Team page
	g.POST("/admin/team", h.Team.Create)
	g.PUT("/admin/team/:id", h.Team.Update)
	g.DELETE("/admin/team/:id", h.Team.Delete)
}
