package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-marketplace/controllers"
	"hotel-marketplace/middleware"
	"hotel-marketplace/models"
)

// Deps carries the controllers and cross-cutting pieces the router mounts.
type Deps struct {
	Auth      *controllers.AuthController
	Hotel     *controllers.HotelController
	Admin     *controllers.AdminController
	Merchant  *controllers.MerchantController
	Upload    *controllers.UploadController
	Media     *controllers.MediaController
	Assistant *controllers.AssistantController
	Geo       *controllers.GeoController

	JWTSecret   string
	CorsOrigins []string
	Cache       *middleware.ResponseCache
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.MaxMultipartMemory = 32 << 20

	origins := d.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "Range"},
		ExposeHeaders:    []string{"Content-Length", "Content-Range", "Accept-Ranges", "ETag", "X-Cache"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := middleware.Auth(d.JWTSecret)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.Auth.Register)
			auth.POST("/login", d.Auth.Login)
			auth.GET("/me", authed, d.Auth.Me)
			auth.PUT("/profile", authed, d.Auth.UpdateProfile)
			auth.PUT("/password", authed, d.Auth.ChangePassword)
		}

		hotel := api.Group("/hotel", d.Cache.Middleware())
		{
			hotel.GET("/list", d.Hotel.List)
			hotel.GET("/detail/:id", d.Hotel.Detail)
		}

		admin := api.Group("/admin", authed, middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/audit", d.Admin.ListAudit)
			admin.POST("/audit/:id/approve", d.Admin.Approve)
			admin.POST("/audit/:id/reject", d.Admin.Reject)
			admin.POST("/hotel/:id/offline", d.Admin.Offline)
			admin.POST("/hotel/:id/online", d.Admin.Online)
		}

		merchant := api.Group("/merchant", authed, middleware.RequireRole(models.RoleMerchant))
		{
			// list must be registered before :id
			merchant.GET("/hotel/list", d.Merchant.ListOwn)
			merchant.GET("/hotel/:id", d.Merchant.GetOwn)
			merchant.POST("/hotel", d.Merchant.Create)
			merchant.PUT("/hotel/:id", d.Merchant.Update)
		}

		api.POST("/upload/single", authed, middleware.RequireRole(models.RoleMerchant), d.Upload.UploadSingle)
		api.GET("/media/:bucket/*object", d.Media.Stream)
		api.HEAD("/media/:bucket/*object", d.Media.Stream)

		api.POST("/assistant/chat", d.Assistant.Chat)

		geo := api.Group("/geo")
		{
			geo.POST("/geocode", d.Geo.Geocode)
			geo.GET("/nearby", d.Geo.Nearby)
		}
	}

	return r
}
