package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ClientSnapshot é a foto de um cliente ativo no momento da captura.
// É a base de comparação da próxima captura.
type ClientSnapshot struct {
	ClientID uint            `json:"id"`
	Name     string          `json:"name"`
	Partner  string          `json:"partner"`
	Status   ClientStatus    `json:"status"`
	MRR      decimal.Decimal `json:"mrr"`
}

// MonthlySnapshot é imutável depois de capturado, no máximo um por mês
type MonthlySnapshot struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Month       string          `gorm:"size:7;not null;uniqueIndex" json:"month"`
	TotalMRR    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"totalMRR"`
	TotalARR    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"totalARR"`
	ClientCount int             `gorm:"not null" json:"clientCount"`

	PartnerMRR     map[string]decimal.Decimal `gorm:"serializer:json" json:"partnerMRR"`
	PartnerClients map[string]int             `gorm:"serializer:json" json:"partnerClients"`

	ClientSnapshots datatypes.JSONSlice[ClientSnapshot] `json:"clientSnapshots"`

	NewMRR         decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"newMRR"`
	ExpansionMRR   decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"expansionMRR"`
	ContractionMRR decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"contractionMRR"`
	ChurnedMRR     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"churnedMRR"`
	NetNewMRR      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"netNewMRR"`
	NewClients     int             `gorm:"not null" json:"newClients"`
	ChurnedClients int             `gorm:"not null" json:"churnedClients"`

	CapturedAt time.Time `gorm:"not null" json:"capturedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// GoalPlan guarda a meta anual de aquisição de clientes e os ajustes manuais por mês
type GoalPlan struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"size:255;not null" json:"name"`
	CurrentClientCount int            `gorm:"not null" json:"currentClientCount"`
	TargetClientCount  int            `gorm:"not null" json:"targetClientCount"`
	Months             []string       `gorm:"serializer:json" json:"months"`
	Overrides          map[string]int `gorm:"serializer:json" json:"overrides"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}
