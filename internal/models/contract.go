package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contract pertence a exatamente um cliente
type Contract struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ClientID     uint           `gorm:"not null;index" json:"clientId"`
	StartDate    time.Time      `gorm:"not null" json:"startDate"`
	EndDate      *time.Time     `json:"endDate"`
	BillingCycle BillingCycle   `gorm:"size:20;not null" json:"billingCycle"`
	Status       ContractStatus `gorm:"size:20;not null;index" json:"status"`
	// link/payload do contrato assinado
	URL string `gorm:"size:512" json:"url"`

	Streams []RevenueStream `gorm:"foreignKey:ContractID;constraint:OnDelete:CASCADE" json:"streams"`
}

// RevenueStream é uma linha de receita do contrato. Amount é o valor por
// período da frequência, não o valor mensal.
type RevenueStream struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ContractID uint            `gorm:"not null;index" json:"contractId"`
	Name       string          `gorm:"size:255" json:"name"`
	Type       StreamType      `gorm:"size:30;not null" json:"type"`
	Frequency  StreamFrequency `gorm:"size:20;not null" json:"frequency"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
