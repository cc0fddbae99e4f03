package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// valores monetários trafegam como números no JSON, não como strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Client representa uma conta faturável
type Client struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	Phone string `gorm:"size:32" json:"phone"`

	Status       ClientStatus `gorm:"size:20;not null;index" json:"status"`
	PricingModel PricingModel `gorm:"size:20;not null" json:"pricingModel"`
	PricingMode  PricingMode  `gorm:"size:20;not null" json:"pricingMode"`

	// Só fazem sentido para per_seat
	PerSeatCost decimal.NullDecimal `gorm:"type:numeric(14,2)" json:"perSeatCost"`
	SeatCount   *int                `json:"seatCount"`

	MRR            decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"mrr"`
	OneTimeRevenue decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"oneTimeRevenue"`
	BillingCycle   BillingCycle    `gorm:"size:20;not null" json:"billingCycle"`
	Discount       decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"discount"`

	// Nome do parceiro (referência desnormalizada)
	SalesPartner   string    `gorm:"size:255;index" json:"salesPartner"`
	OnboardingDate time.Time `json:"onboardingDate"`
}

// IsActive indica se o cliente entra nas agregações
func (c Client) IsActive() bool {
	return c.Status == ClientActive
}

// CustomerPartnerLink é a aresta de atribuição entre cliente e parceiro
type CustomerPartnerLink struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ClientID       uint            `gorm:"not null;uniqueIndex:ux_client_partner,priority:1" json:"clientId"`
	PartnerID      uint            `gorm:"not null;uniqueIndex:ux_client_partner,priority:2;index" json:"partnerId"`
	AttributionPct decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"attributionPct"`
	CreatedAt      time.Time       `json:"createdAt"`
}
