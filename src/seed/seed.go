package seed

import (
	"log"

	"github.com/LibroTrack/LibroTrack-Backend/src/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB) {
	seedAdminUser(db)
	seedFinePolicies(db)
	seedBooks(db)
	seedBorrowers(db)
}

func seedAdminUser(db *gorm.DB) {
	var user models.UserModel
	result := db.Where("username = ?", "librotrack").First(&user)
	if result.Error == nil {
		log.Println("User 'librotrack' already exists")
		return
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("librotrack"), bcrypt.DefaultCost)

	newUser := models.UserModel{
		Username: "librotrack",
		Password: string(hashedPassword),
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user: %v\n", err)
	} else {
		log.Println("User 'librotrack' created")
	}
}

func seedFinePolicies(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.FinePolicyModel{}).Count(&count).Error; err != nil {
		log.Printf("Failed to count fine policies: %v\n", err)
		return
	}
	if count > 0 {
		log.Println("Fine policies already seeded")
		return
	}

	policies := []models.FinePolicyModel{
		{Category: "Fiction", FinePerDay: decimal.NewFromFloat(0.50), IsActive: true},
		{Category: "Tech", FinePerDay: decimal.NewFromFloat(1.00), IsActive: true},
		{Category: "History", FinePerDay: decimal.NewFromFloat(0.75), IsActive: true},
	}
	for _, policy := range policies {
		if err := db.Create(&policy).Error; err != nil {
			log.Printf("Failed to create fine policy %s: %v\n", policy.Category, err)
		}
	}
	log.Printf("Seeded %d fine policies\n", len(policies))
}

func seedBooks(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.BookModel{}).Count(&count).Error; err != nil {
		log.Printf("Failed to count books: %v\n", err)
		return
	}
	if count > 0 {
		log.Println("Books already seeded")
		return
	}

	type seedBook struct {
		title    string
		author   string
		category string
		copies   int
	}
	books := []seedBook{
		{"The Great Gatsby", "F. Scott Fitzgerald", "Fiction", 3},
		{"To Kill a Mockingbird", "Harper Lee", "Fiction", 2},
		{"1984", "George Orwell", "Fiction", 4},
		{"Pride and Prejudice", "Jane Austen", "Fiction", 2},
		{"Clean Code", "Robert C. Martin", "Tech", 2},
		{"Design Patterns", "Gang of Four", "Tech", 3},
		{"The Go Programming Language", "Donovan & Kernighan", "Tech", 2},
		{"Java: The Complete Reference", "Herbert Schildt", "Tech", 1},
		{"Sapiens", "Yuval Noah Harari", "History", 2},
		{"The Guns of August", "Barbara Tuchman", "History", 1},
		{"A People's History", "Howard Zinn", "History", 3},
	}
	for _, b := range books {
		book := models.BookModel{
			Title:           b.title,
			Author:          b.author,
			Category:        b.category,
			TotalCopies:     b.copies,
			AvailableCopies: b.copies,
		}
		if err := db.Create(&book).Error; err != nil {
			log.Printf("Failed to create book %q: %v\n", b.title, err)
		}
	}
	log.Printf("Seeded %d books\n", len(books))
}

func seedBorrowers(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.BorrowerModel{}).Count(&count).Error; err != nil {
		log.Printf("Failed to count borrowers: %v\n", err)
		return
	}
	if count > 0 {
		log.Println("Borrowers already seeded")
		return
	}

	type seedBorrower struct {
		name       string
		email      string
		membership models.MembershipType
	}
	borrowers := []seedBorrower{
		{"John Doe", "john.doe@email.com", models.MembershipBasic},
		{"Jane Smith", "jane.smith@email.com", models.MembershipBasic},
		{"Bob Johnson", "bob.johnson@email.com", models.MembershipBasic},
		{"Alice Brown", "alice.brown@email.com", models.MembershipPremium},
		{"Charlie Wilson", "charlie.wilson@email.com", models.MembershipPremium},
	}
	for _, b := range borrowers {
		borrower := models.BorrowerModel{
			Name:           b.name,
			Email:          b.email,
			MembershipType: b.membership,
			IsActive:       true,
		}
		if err := db.Create(&borrower).Error; err != nil {
			log.Printf("Failed to create borrower %q: %v\n", b.name, err)
		}
	}
	log.Printf("Seeded %d borrowers\n", len(borrowers))
}
