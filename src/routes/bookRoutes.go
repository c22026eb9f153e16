package routes

import (
	"github.com/LibroTrack/LibroTrack-Backend/src/controllers"
	"github.com/LibroTrack/LibroTrack-Backend/src/middleware"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupBookRoutes(router *gin.Engine, service *services.BookService) {

	bookController := controllers.NewBookController(service)

	// Public reads
	books := router.Group("/books")
	{
		books.GET("/", bookController.GetBooks)
		books.GET("/search", bookController.SearchBooks)
		books.GET("/available", bookController.GetAvailableBooks)
		books.GET("/category/:category", bookController.GetBooksByCategory)
		books.GET("/:id", bookController.GetBookByID)
	}

	// Protected mutations
	protected := router.Group("/books")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/", bookController.CreateBook)
		protected.POST("/import", bookController.ImportBooks)
		protected.PUT("/:id", bookController.UpdateBook)
		protected.DELETE("/:id", bookController.DeleteBook)
	}
}
