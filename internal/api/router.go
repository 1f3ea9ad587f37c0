package api

import (
	"time"                              // Cache and token lifetimes
	"waste_tracker/internal/domain"     // Permissions
	"waste_tracker/internal/middleware" // Custom middleware
	"waste_tracker/internal/utils"      // Read cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps are the dependencies shared by every handler
type Deps struct {
	DB        *gorm.DB      // Database pool
	Redis     *redis.Client // Optional read cache, nil disables caching
	JWTSecret string        // Token signing secret
	TokenTTL  time.Duration // Token lifetime
	CacheTTL  time.Duration // Cached read lifetime
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, d Deps) {
	auth := middleware.JWTAuthMiddleware(d.JWTSecret)
	cache := utils.NewCache(d.Redis, d.CacheTTL)

	r.GET("/healthz", HealthHandler(d.DB))

	// Auth routes
	r.POST("/register", RegisterHandler(d.DB))
	r.POST("/login", LoginHandler(d.DB, d.JWTSecret, d.TokenTTL))
	r.GET("/userinfo", auth, UserInfoHandler())

	api := r.Group("/api")

	// Public reads
	api.GET("/waste_data", ListWasteDataHandler(d.DB, cache))
	api.GET("/waste_data/weekly", WeeklyWasteDataHandler(d.DB, cache))
	api.GET("/markers", ListMarkersHandler(d.DB, cache))
	api.GET("/routes/:truckNum", GetRoutesHandler(d.DB))

	// Marker management, admin only
	api.POST("/markers", auth, middleware.RequirePermission(domain.PermManageMarkers), CreateMarkerHandler(d.DB, cache))
	api.DELETE("/markers/:id", auth, middleware.RequirePermission(domain.PermManageMarkers), DeleteMarkerHandler(d.DB, cache))

	// Route management and the collector's own routes
	api.POST("/routes", auth, middleware.RequirePermission(domain.PermManageRoutes), CreateRouteHandler(d.DB))
	api.GET("/collector/routes", auth, middleware.RequirePermission(domain.PermViewOwnRoutes), MyRoutesHandler(d.DB))
}
