package routes

import (
	"github.com/LibroTrack/LibroTrack-Backend/src/controllers"
	"github.com/LibroTrack/LibroTrack-Backend/src/middleware"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupFinePolicyRoutes(router *gin.Engine, service *services.FinePolicyService) {

	finePolicyController := controllers.NewFinePolicyController(service)

	policies := router.Group("/fine-policies")
	{
		policies.GET("/", finePolicyController.GetPolicies)
		policies.GET("/:id", finePolicyController.GetPolicyByID)
	}

	protected := router.Group("/fine-policies")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/", finePolicyController.CreatePolicy)
		protected.PUT("/:id", finePolicyController.UpdatePolicy)
		protected.DELETE("/:id", finePolicyController.DeletePolicy)
	}
}
