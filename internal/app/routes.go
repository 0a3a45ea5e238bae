package app

import (
	"net/http"

	"github.com/DennisRussell0/cereal-api/internal/auth"
	"github.com/DennisRussell0/cereal-api/internal/config"
	"github.com/DennisRussell0/cereal-api/internal/handlers"
	"github.com/DennisRussell0/cereal-api/internal/images"
	"github.com/DennisRussell0/cereal-api/internal/repo"
	"github.com/DennisRussell0/cereal-api/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Deps are the storage-backed collaborators behind the routes.
type Deps struct {
	Cereals  repo.CerealRepo
	Users    repo.UserRepo
	Sessions auth.Store
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, d Deps) {
	r.GET("/", rootHandler())
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	userSvc := service.NewUserService(d.Users)
	authHandler := handlers.NewAuthHandler(d.Sessions, userSvc, cfg.Session.TTL.Duration(), cfg.Session.CookieSecure)
	requireSession := auth.RequireSession(d.Sessions, userSvc)
	registerAuthRoutes(r, authHandler, requireSession)

	cerealSvc := service.NewCerealService(d.Cereals)
	resolver := images.NewResolver(cfg.Catalog.ImageDir, cfg.Catalog.DefaultImage)
	cerealHandler := handlers.NewCerealHandler(cerealSvc, resolver)
	registerCerealRoutes(r, cerealHandler, requireSession)
}

func rootHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Cereal app is running!")
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerCerealRoutes(r *gin.Engine, h *handlers.CerealHandler, requireSession gin.HandlerFunc) {
	r.GET("/cereals", h.List)
	r.GET("/cereal/:id", h.GetByID)
	r.GET("/cereal/:id/image", h.Image)
	r.POST("/cereal", requireSession, h.Save)
	r.DELETE("/cereal/:id", requireSession, h.Delete)
}

func registerAuthRoutes(r *gin.Engine, h *handlers.AuthHandler, requireSession gin.HandlerFunc) {
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", requireSession, h.Logout)
}
