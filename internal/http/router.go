package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterDeps agrupa los handlers que el router necesita montar.
type RouterDeps struct {
	Users         *UserHandler
	Projects      *ProjectHandler
	Pages         *PageHandler
	Elements      *ElementHandler
	Texts         *TextHandler
	CanvasImages  *CanvasImageHandler
	Devices       *DeviceHandler
	ImageGroups   *ImageGroupHandler
	Uploads       *UploadHandler
	ProjectImages *ProjectImageHandler
	Auth          gin.HandlerFunc
	UploadDir     string
	// DBPing verifica conectividad con la base; alimenta el health check.
	DBPing func(ctx context.Context) error
}

// NewRouter configura el router de Gin con middlewares y rutas base.
func NewRouter(logger *zap.Logger, deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging y recovery.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		if deps.DBPing != nil {
			if err := deps.DBPing(c.Request.Context()); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Archivos subidos se sirven estáticos bajo /uploads.
	if deps.UploadDir != "" {
		r.Static("/uploads", deps.UploadDir)
	}

	v1 := r.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("/register", deps.Users.Register)
	users.POST("/login", deps.Users.Login)
	users.POST("/send-otp", deps.Users.SendOTP)
	users.POST("/change-password", deps.Users.ChangePassword)
	users.POST("/refresh-token", deps.Users.RefreshToken)
	users.POST("/logout", deps.Users.Logout)
	if deps.Auth != nil {
		users.GET("/:id", deps.Auth, deps.Users.GetUser)
		users.PUT("/profile/:id", deps.Auth, deps.Users.UpdateProfile)
	} else {
		users.GET("/:id", deps.Users.GetUser)
		users.PUT("/profile/:id", deps.Users.UpdateProfile)
	}

	projects := v1.Group("/projects")
	projects.POST("", deps.Projects.Create)
	projects.GET("", deps.Projects.List)
	projects.GET("/user/:user_id", deps.Projects.ListByUser)
	projects.GET("/:id", deps.Projects.Get)
	projects.PUT("/:id", deps.Projects.Update)
	projects.DELETE("/:id", deps.Projects.Delete)

	pages := v1.Group("/pages")
	pages.POST("", deps.Pages.Create)
	pages.GET("", deps.Pages.List)
	pages.GET("/project", deps.Pages.ListByProject)
	pages.GET("/:id", deps.Pages.Get)
	pages.PUT("/:id", deps.Pages.Update)
	pages.DELETE("/:id", deps.Pages.Delete)

	elements := v1.Group("/elements")
	elements.POST("", deps.Elements.Create)
	elements.GET("", deps.Elements.List)
	elements.GET("/page/:page_id", deps.Elements.ListByPage)
	elements.GET("/:id", deps.Elements.Get)
	elements.PUT("/:id", deps.Elements.Update)
	elements.DELETE("/:id", deps.Elements.Delete)

	texts := v1.Group("/texts")
	texts.POST("", deps.Texts.Create)
	texts.GET("", deps.Texts.List)
	texts.GET("/page/:page_id", deps.Texts.ListByPage)
	texts.GET("/:id", deps.Texts.Get)
	texts.PUT("/:id", deps.Texts.Update)
	texts.DELETE("/:id", deps.Texts.Delete)

	images := v1.Group("/images")
	images.POST("", deps.CanvasImages.Create)
	images.GET("", deps.CanvasImages.List)
	images.GET("/page/:page_id", deps.CanvasImages.ListByPage)
	images.GET("/:id", deps.CanvasImages.Get)
	images.PUT("/:id", deps.CanvasImages.Update)
	images.DELETE("/:id", deps.CanvasImages.Delete)

	devices := v1.Group("/devices")
	devices.POST("", deps.Devices.Create)
	devices.GET("", deps.Devices.List)
	devices.GET("/page/:page_id", deps.Devices.ListByPage)
	devices.GET("/:id", deps.Devices.Get)
	devices.PUT("/:id", deps.Devices.Update)
	devices.DELETE("/:id", deps.Devices.Delete)

	groups := v1.Group("/image-groups")
	groups.POST("", deps.ImageGroups.Create)
	groups.GET("", deps.ImageGroups.List)
	groups.GET("/:id", deps.ImageGroups.Get)
	groups.PUT("/:id", deps.ImageGroups.Update)
	groups.DELETE("/:id", deps.ImageGroups.Delete)

	upload := v1.Group("/upload")
	upload.POST("/image", deps.Uploads.UploadImage)
	upload.GET("/image", deps.Uploads.ListImages)
	upload.PUT("/image/:id", deps.Uploads.ReplaceImage)
	upload.DELETE("/image/:id", deps.Uploads.DeleteImage)

	projectImages := v1.Group("/project-images")
	projectImages.POST("/images", deps.ProjectImages.Upload)
	projectImages.GET("/:project_id", deps.ProjectImages.ListByProject)
	projectImages.PUT("/:id", deps.ProjectImages.Replace)
	projectImages.DELETE("/:id", deps.ProjectImages.Delete)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
