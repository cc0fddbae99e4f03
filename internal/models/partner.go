package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Partner é o parceiro de indicação/revenda que recebe comissão
type Partner struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Name  string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Email string `gorm:"size:255" json:"email"`
	Phone string `gorm:"size:32" json:"phone"`

	// Percentual sobre o MRR (0-100)
	CommissionPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"commissionPercentage"`
	// Percentual sobre a receita única (0-100)
	OneTimeCommissionPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"oneTimeCommissionPercentage"`

	IsActive  bool            `gorm:"not null" json:"isActive"`
	TotalPaid decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"totalPaid"`
}

// PartnerPayout registra cada pagamento feito ao parceiro. Nunca é editado.
type PartnerPayout struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	PartnerID   uint            `gorm:"not null;index" json:"partnerId"`
	StatementID *uint           `gorm:"index" json:"statementId"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	PaidAt      time.Time       `gorm:"not null" json:"paidAt"`
	Note        string          `gorm:"size:255" json:"note"`
}

// CommissionStatement é o extrato de comissão de um parceiro em um mês
type CommissionStatement struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PartnerID uint   `gorm:"not null;uniqueIndex:ux_statement_partner_month,priority:1" json:"partnerId"`
	Month     string `gorm:"size:7;not null;uniqueIndex:ux_statement_partner_month,priority:2" json:"month"`

	AttributedMRR     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"attributedMrr"`
	AttributedOneTime decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"attributedOneTime"`
	MonthlyCommission decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"monthlyCommission"`
	OneTimeCommission decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"oneTimeCommission"`
	AnnualCommission  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"annualCommission"`
	// Valor a pagar no mês: comissão mensal + comissão única dos clientes que entraram no mês
	PayableAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"payableAmount"`

	Status    StatementStatus `gorm:"size:20;not null;index" json:"status"`
	PaidAt    *time.Time      `json:"paidAt"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
