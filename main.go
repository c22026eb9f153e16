package main

import (
	"log"
	"os"
	"time"

	"github.com/LibroTrack/LibroTrack-Backend/src/db"
	"github.com/LibroTrack/LibroTrack-Backend/src/middleware"
	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/LibroTrack/LibroTrack-Backend/src/routes"
	"github.com/LibroTrack/LibroTrack-Backend/src/seed"
	"github.com/LibroTrack/LibroTrack-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func main() {

	// Database connection
	db, err := db.Connect()
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.BookModel{},
		&models.BorrowerModel{},
		&models.BorrowRecordModel{},
		&models.FinePolicyModel{},
		&models.UserModel{},
	); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	// JWT secret setup
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	middleware.SetSecretKey(secret)

	// Seed data
	seed.Seed(db)

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":8080"
	}

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS())

	// Services setup: the borrow workflow owns references to the stores it
	// coordinates, wired here explicitly.
	bookService := services.NewBookService(db)
	borrowerService := services.NewBorrowerService(db)
	finePolicyService := services.NewFinePolicyService(db)
	borrowService := services.NewBorrowService(db, bookService)
	analyticsService := services.NewAnalyticsService(db)
	userService := services.NewUserService(db)

	// Daily overdue sweep
	scheduler := services.NewSchedulerService(borrowService, 24*time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	// Routes setup
	routes.SetupBookRoutes(router, bookService)
	routes.SetupBorrowerRoutes(router, borrowerService)
	routes.SetupFinePolicyRoutes(router, finePolicyService)
	routes.SetupBorrowRoutes(router, borrowService)
	routes.SetupAnalyticsRoutes(router, analyticsService)
	routes.SetupUserRoutes(router, userService)

	router.GET("/", func(c *gin.Context) {
		c.String(200, "LibroTrack API is running")
	})

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
