package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipType string

const (
	MembershipBasic   MembershipType = "BASIC"
	MembershipPremium MembershipType = "PREMIUM"
)

// MaxBorrowLimit is the fixed concurrent-loan ceiling for the tier.
func (m MembershipType) MaxBorrowLimit() int {
	if m == MembershipPremium {
		return 5
	}
	return 2
}

func (m MembershipType) IsValid() bool {
	return m == MembershipBasic || m == MembershipPremium
}

type BorrowerModel struct {
	Id             uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name           string         `json:"name" gorm:"type:varchar(255);not null"`
	Email          string         `json:"email" gorm:"type:varchar(255);not null"`
	MembershipType MembershipType `json:"membershipType" gorm:"type:varchar(20);not null"`
	MaxBorrowLimit int            `json:"maxBorrowLimit" gorm:"not null"`
	IsActive       bool           `json:"isActive" gorm:"not null;default:true"`
}

func (BorrowerModel) TableName() string { return "borrowers" }

func (b *BorrowerModel) BeforeCreate(tx *gorm.DB) error {
	if b.Id == uuid.Nil {
		b.Id = uuid.New()
	}
	if b.MaxBorrowLimit == 0 {
		b.MaxBorrowLimit = b.MembershipType.MaxBorrowLimit()
	}
	return nil
}
