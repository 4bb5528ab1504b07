package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/flightarcs-backend-go/internal/config"
	"github.com/jengzang/flightarcs-backend-go/internal/handler"
	"github.com/jengzang/flightarcs-backend-go/internal/metrics"
	"github.com/jengzang/flightarcs-backend-go/internal/middleware"
	"github.com/jengzang/flightarcs-backend-go/internal/service"
)

// Services are the dependencies the routes need
type Services struct {
	Auth     *service.AuthService
	Airports *service.AirportService
	Trips    *service.TripService
	Maps     *service.MapService
	// AuthLimiter guards login and registration
	AuthLimiter *middleware.RateLimiter
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), metrics.Middleware())

	// CORS 中间件
	origins := strings.Join(cfg.Server.CorsOrigins, ", ")
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origins)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Flight Arcs API is running",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", metrics.Handler())

	authHandler := handler.NewAuthHandler(svc.Auth)
	airportHandler := handler.NewAirportHandler(svc.Airports)
	tripHandler := handler.NewTripHandler(svc.Trips)
	mapHandler := handler.NewMapHandler(svc.Maps)

	// API 路由组
	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth", middleware.RateLimit(svc.AuthLimiter))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// 机场查询接口
		airports := api.Group("/airports")
		{
			airports.GET("", airportHandler.Search)
			airports.GET("/:code", airportHandler.GetAirport)
		}

		protected := api.Group("", middleware.Auth(cfg.Auth.JWTSecret))

		// 航班行程接口
		trips := protected.Group("/trips")
		{
			trips.GET("", tripHandler.GetTrips)
			trips.POST("", tripHandler.CreateTrip)
			trips.GET("/summary", tripHandler.GetSummary)
			trips.GET("/:id", tripHandler.GetTripByID)
			trips.DELETE("/:id", tripHandler.DeleteTrip)
			trips.GET("/:id/geometry", tripHandler.GetGeometry)
		}

		// 地图接口
		maps := protected.Group("/map")
		{
			maps.GET("/geojson", mapHandler.GetGeoJSON)
			maps.GET("/polylines", mapHandler.GetPolylines)
			maps.GET("/kml", mapHandler.GetKML)
			maps.GET("/layers", mapHandler.GetLayers)
			maps.PUT("/layers", mapHandler.SaveLayers)
		}
	}

	return r
}
