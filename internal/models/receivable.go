package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableEntry é uma cobrança prevista para um cliente em um mês.
// É gerada pelo agendador; edição manual só para correções.
type ReceivableEntry struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	ClientID    uint             `gorm:"not null;index:ix_receivable_client_month,priority:1" json:"clientId"`
	Month       string           `gorm:"size:7;not null;index:ix_receivable_client_month,priority:2" json:"month"`
	Amount      decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	Description string           `gorm:"size:255" json:"description"`
	Kind        ReceivableKind   `gorm:"size:20;not null" json:"kind"`
	Status      ReceivableStatus `gorm:"size:20;not null;index" json:"status"`
	InvoiceID   *uint            `gorm:"index" json:"invoiceId"`
	PaidAt      *time.Time       `json:"paidAt"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// Protected indica que a entrada não pode ser apagada na regeneração:
// já foi paga/faturada ou ainda tem uma fatura apontando para ela.
func (e ReceivableEntry) Protected() bool {
	return e.Status.Settled() || e.InvoiceID != nil
}
