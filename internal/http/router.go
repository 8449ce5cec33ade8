package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/config"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/db"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/geoplot"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/http/handlers"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/http/middleware"
	"github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/internal/routes"

	_ "github.com/ncarvajalc/Proyecto-final-MISO-202520-G2-sub001/docs"
)

func Router(cfg config.Config, gateway routes.Gateway, runs db.RunRecorder, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Gateway:   gateway,
		Runs:      runs,
		Validator: validator.New(),
		Logger:    logger,
		Canvas:    geoplot.Canvas{Width: cfg.CanvasWidth, Height: cfg.CanvasHeight},
		Defaults: routes.OptimizeParams{
			StartLat:    cfg.StartLat,
			StartLon:    cfg.StartLon,
			AvgSpeedKmh: cfg.AvgSpeedKmh,
		},
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/vehicles/:id/routes", h.VehicleRoutes)
		api.GET("/route-workflow/:wid", h.WorkflowState)
		api.GET("/runs/latest", h.RunsLatest)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/vehicles/:id/route-workflow", h.OpenWorkflow)
		admin.POST("/route-workflow/:wid/optimize", h.OptimizeWorkflow)
		admin.DELETE("/route-workflow/:wid", h.CloseWorkflow)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
