package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/upnext/internal/container"
	"github.com/joshua-takyi/upnext/internal/handlers"
	"github.com/joshua-takyi/upnext/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	// Set Gin mode for production
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "upnext-api",
			})
		})
	}

	artistRoutes := v1.Group("/artists")
	{
		artistRoutes.GET("", handlers.SearchArtists(container.QueryService))
		artistRoutes.GET("/:id", handlers.GetArtistByID(container.QueryService))
		artistRoutes.GET("/:id/events", handlers.GetArtistEvents(container.QueryService))
		artistRoutes.POST("", handlers.UpsertArtistHandler(container.IngestService))
	}

	venueRoutes := v1.Group("/venues")
	{
		venueRoutes.GET("/near", handlers.VenuesNear(container.QueryService))
		venueRoutes.GET("/:id", handlers.GetVenueByID(container.QueryService))
		venueRoutes.POST("", handlers.InsertVenueHandler(container.IngestService))
	}

	eventRoutes := v1.Group("/events")
	{
		eventRoutes.GET("", handlers.ListEvents(container.QueryService))
		eventRoutes.GET("/:id", handlers.GetEventByID(container.QueryService))
		eventRoutes.POST("", handlers.InsertEventHandler(container.IngestService))
		eventRoutes.PUT("", handlers.ReingestEventHandler(container.IngestService))
	}

	listRoutes := v1.Group("/lists")
	{
		listRoutes.GET("", handlers.GetLists(container.ListService))
		listRoutes.POST("", handlers.CreateList(container.ListService))
		listRoutes.GET("/:id", handlers.GetListByID(container.ListService))
		listRoutes.GET("/:id/items", handlers.GetListItems(container.ListService))
		listRoutes.POST("/:id/items", handlers.AddListItem(container.ListService))
		listRoutes.POST("/:id/items/:event_id/attended", handlers.MarkItemAttended(container.ListService))
		listRoutes.DELETE("/:id/items/:event_id", handlers.RemoveListItem(container.ListService))
	}

	return r
}
