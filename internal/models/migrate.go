package models

import "gorm.io/gorm"

// Migrate cria/atualiza as tabelas de todas as entidades.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Operator{},
		&Client{},
		&Partner{},
		&PartnerPayout{},
		&CommissionStatement{},
		&CustomerPartnerLink{},
		&Contract{},
		&RevenueStream{},
		&ReceivableEntry{},
		&Invoice{},
		&InvoiceLineItem{},
		&InvoicePayment{},
		&MonthlySnapshot{},
		&GoalPlan{},
	)
}
