package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementDTO usado no POST /partners/{id}/statements
type StatementDTO struct {
	Month string `json:"month" validate:"required,len=7"`
}

// PayoutDTO usado no POST /partners/{id}/payouts (pagamento avulso)
type PayoutDTO struct {
	Amount decimal.Decimal `json:"amount"`
	PaidAt *time.Time      `json:"paidAt"`
	Note   string          `json:"note" validate:"max=255"`
}

// PayStatementDTO usado no POST /statements/{id}/pay
type PayStatementDTO struct {
	PaidAt *time.Time `json:"paidAt"`
	Note   string     `json:"note" validate:"max=255"`
}
