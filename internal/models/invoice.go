package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice agrega itens em subtotal/total/saldo devedor
type Invoice struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	Number            string        `gorm:"size:40;not null;uniqueIndex" json:"number"`
	ClientID          uint          `gorm:"not null;index" json:"clientId"`
	ContractID        *uint         `gorm:"index" json:"contractId"`
	ReceivableEntryID *uint         `gorm:"index" json:"receivableEntryId"`
	IssueDate         time.Time     `gorm:"not null" json:"issueDate"`
	DueDate           time.Time     `json:"dueDate"`
	Status            InvoiceStatus `gorm:"size:20;not null;index" json:"status"`
	Notes             string        `gorm:"size:1000" json:"notes"`

	Subtotal      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"subtotal"`
	DiscountTotal decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"discountTotal"`
	Total         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amountPaid"`
	// BalanceDue nunca fica negativo; RawBalance guarda a diferença real para conciliação
	BalanceDue decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"balanceDue"`
	RawBalance decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"rawBalance"`

	Items    []InvoiceLineItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	Payments []InvoicePayment  `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments"`
}

type InvoiceLineItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceID     uint            `gorm:"not null;index" json:"invoiceId"`
	Description   string          `gorm:"size:255" json:"description"`
	Quantity      decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	Rate          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"rate"`
	DiscountType  DiscountType    `gorm:"size:10" json:"discountType"`
	DiscountValue decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"discountValue"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
}

type InvoicePayment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	InvoiceID uint            `gorm:"not null;index" json:"invoiceId"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	PaidAt    time.Time       `gorm:"not null" json:"paidAt"`
	Reference string          `gorm:"size:255" json:"reference"`
}
