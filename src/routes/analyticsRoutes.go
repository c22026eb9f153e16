package routes

import (
	"github.com/LibroTrack/LibroTrack-Backend/src/controllers"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(router *gin.Engine, service *services.AnalyticsService) {

	analyticsController := controllers.NewAnalyticsController(service)

	analytics := router.Group("/analytics")
	{
		analytics.GET("/top-borrowed", analyticsController.GetTopBorrowedBooks)
		analytics.GET("/borrower-activity", analyticsController.GetBorrowerActivity)
		analytics.GET("/similar-books/:bookId", analyticsController.GetSimilarBooks)
		analytics.GET("/availability-summary", analyticsController.GetAvailabilitySummary)
	}
}
