package routes

import (
	"github.com/LibroTrack/LibroTrack-Backend/src/controllers"
	"github.com/LibroTrack/LibroTrack-Backend/src/middleware"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupBorrowRoutes(router *gin.Engine, service *services.BorrowService) {

	borrowController := controllers.NewBorrowController(service)

	api := router.Group("/api")
	{
		api.GET("/records/active", borrowController.GetActiveBorrowRecords)
		api.GET("/records/overdue", borrowController.GetOverdueBorrowRecords)
		api.GET("/records/borrower/:borrowerId", borrowController.GetBorrowHistoryByBorrower)
	}

	// Borrow and return are protected
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/borrow", borrowController.BorrowBook)
		protected.POST("/return", borrowController.ReturnBook)
	}
}
