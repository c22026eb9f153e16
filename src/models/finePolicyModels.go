package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultFinePerDay applies when a category has no active fine policy.
var DefaultFinePerDay = decimal.NewFromFloat(1.00)

type FinePolicyModel struct {
	Id         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	// One ACTIVE policy per category is enforced by the service; retired
	// policies keep their rows, so the column is indexed but not unique.
	Category   string          `json:"category" gorm:"type:varchar(100);not null;index"`
	FinePerDay decimal.Decimal `json:"finePerDay" gorm:"type:decimal(10,2);not null"`
	IsActive   bool            `json:"isActive" gorm:"not null;default:true"`
}

func (FinePolicyModel) TableName() string { return "fine_policies" }

func (p *FinePolicyModel) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}
