package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookModel struct {
	Id              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title           string    `json:"title" gorm:"type:varchar(255);not null"`
	Author          string    `json:"author" gorm:"type:varchar(255);not null"`
	Category        string    `json:"category" gorm:"type:varchar(100);not null"`
	TotalCopies     int       `json:"totalCopies" gorm:"not null"`
	AvailableCopies int       `json:"availableCopies" gorm:"not null"`
	IsAvailable     bool      `json:"isAvailable" gorm:"not null;default:true"`
	IsDeleted       bool      `json:"isDeleted" gorm:"not null;default:false"`
}

func (BookModel) TableName() string { return "books" }

func (b *BookModel) BeforeCreate(tx *gorm.DB) error {
	if b.Id == uuid.Nil {
		b.Id = uuid.New()
	}
	b.IsAvailable = b.AvailableCopies > 0
	return nil
}

func (b *BookModel) BeforeUpdate(tx *gorm.DB) error {
	b.IsAvailable = b.AvailableCopies > 0
	return nil
}
