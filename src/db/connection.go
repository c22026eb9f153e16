package db

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	// Load environment variables from .env file; a missing file is fine when
	// the variables come from the real environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}

	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Println("Error connecting to the database:", err)
		return nil, err
	}

	log.Println("LibroTrack DB connected successfully!")

	return db, nil
}
