package app

import (
	"net/http"

	_ "omanvat/api/swagger" // swagger docs
	"omanvat/internal/handler"
	"omanvat/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the HTTP API. hub receives the /ws subscriptions.
func NewRouter(a *App, hub *websocket.Hub) *gin.Engine {
	gin.SetMode(a.Config.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = a.Config.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(hub, c, a.Auth)
	})

	// API Routing
	api := router.Group("")
	handler.NewCompanyHandler(a.Companies, a.Auth).RegisterRoutes(api)
	handler.NewVATSettingHandler(a.VATSettings, a.TaxTemplates, a.Auth).RegisterRoutes(api)
	handler.NewSetupHandler(a.Setup, a.TaxTemplates, a.Auth).RegisterRoutes(api)
	handler.NewAuditHandler(a.Audit, a.Auth).RegisterRoutes(api)

	return router
}
