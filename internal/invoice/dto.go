package invoice

import (
	"time"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/shopspring/decimal"
)

type LineItemDTO struct {
	Description   string              `json:"description"`
	Quantity      decimal.Decimal     `json:"quantity"`
	Rate          decimal.Decimal     `json:"rate"`
	DiscountType  models.DiscountType `json:"discountType" validate:"omitempty,oneof=percent flat"`
	DiscountValue decimal.Decimal     `json:"discountValue"`
}

func (d LineItemDTO) toModel() models.InvoiceLineItem {
	return models.InvoiceLineItem{
		Description:   d.Description,
		Quantity:      d.Quantity,
		Rate:          d.Rate,
		DiscountType:  d.DiscountType,
		DiscountValue: d.DiscountValue,
	}
}

func itemsFrom(in []LineItemDTO) []models.InvoiceLineItem {
	out := make([]models.InvoiceLineItem, 0, len(in))
	for _, d := range in {
		out = append(out, d.toModel())
	}
	return out
}

// CreateInvoiceDTO usado no POST /invoices. Sem contrato informado, usa o
// contrato ativo vigente do cliente. Com recebível e sem itens, fatura o valor do recebível.
type CreateInvoiceDTO struct {
	ClientID          uint          `json:"clientId" validate:"required"`
	ContractID        *uint         `json:"contractId"`
	ReceivableEntryID *uint         `json:"receivableEntryId"`
	IssueDate         *time.Time    `json:"issueDate"`
	DueDate           *time.Time    `json:"dueDate"`
	Notes             string        `json:"notes" validate:"max=1000"`
	Items             []LineItemDTO `json:"items" validate:"dive"`
}

// PaymentDTO usado no POST /invoices/{id}/payments
type PaymentDTO struct {
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    *time.Time      `json:"paidAt"`
	Reference string          `json:"reference" validate:"max=255"`
}

// PreviewDTO usado no POST /invoices/preview (não grava nada)
type PreviewDTO struct {
	Items      []LineItemDTO   `json:"items" validate:"dive"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
}

type PreviewResponse struct {
	Items  []models.InvoiceLineItem `json:"items"`
	Totals Totals                   `json:"totals"`
	Status models.InvoiceStatus     `json:"status"`
}
