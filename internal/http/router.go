package httpapi

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/techserve_ng/backend/internal/chatbot"
	"github.com/techserve_ng/backend/internal/config"
	"github.com/techserve_ng/backend/internal/http/handlers"
	"github.com/techserve_ng/backend/internal/http/middleware"
	"github.com/techserve_ng/backend/internal/metrics"
	"github.com/techserve_ng/backend/internal/service"

	_ "github.com/techserve_ng/backend/docs"
)

func Router(cfg config.Config, store handlers.LeadRepository, intake *service.IntakeService, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(metrics.GinMiddleware())

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		MaxAge:       12 * time.Hour,
	}
	if cfg.CORSAllowed == "" || cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		for _, o := range strings.Split(cfg.CORSAllowed, ",") {
			if o = strings.TrimSpace(o); o != "" {
				corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, o)
			}
		}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:          store,
		Intake:         intake,
		Chat:           chatbot.NewEngine(),
		Validator:      validator.New(),
		Logger:         logger,
		CompanyPhone:   cfg.CompanyPhone,
		ContactPageURL: cfg.ContactPageURL,
	}

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/leads", h.CreateLead)
		api.GET("/chat/greeting", h.ChatGreeting)
		api.GET("/chat/categories", h.ChatCategories)
	}

	chat := api.Group("/chat")
	chat.Use(middleware.NewIPRateLimiter(cfg.ChatRatePerMinute, logger).RateLimit())
	{
		chat.POST("/messages", h.ChatMessage)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/leads", h.LeadsList)
		admin.GET("/leads/:id", h.LeadDetails)
		admin.PATCH("/leads/:id", h.UpdateLead)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
