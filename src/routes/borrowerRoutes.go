package routes

import (
	"github.com/LibroTrack/LibroTrack-Backend/src/controllers"
	"github.com/LibroTrack/LibroTrack-Backend/src/middleware"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupBorrowerRoutes(router *gin.Engine, service *services.BorrowerService) {

	borrowerController := controllers.NewBorrowerController(service)

	// Public reads
	borrowers := router.Group("/borrowers")
	{
		borrowers.GET("/", borrowerController.GetBorrowers)
		borrowers.GET("/search", borrowerController.SearchBorrowers)
		borrowers.GET("/overdue", borrowerController.GetBorrowersWithOverdueBooks)
		borrowers.GET("/:id", borrowerController.GetBorrowerByID)
	}

	// Protected mutations
	protected := router.Group("/borrowers")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/", borrowerController.RegisterBorrower)
		protected.PUT("/:id", borrowerController.UpdateBorrower)
		protected.DELETE("/:id", borrowerController.DeactivateBorrower)
	}
}
