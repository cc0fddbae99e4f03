package operator

import "github.com/KromaEnergia/api-faturamento/internal/models"

// LoginRequest é usado em POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateOperatorRequest é usado em POST /operators.
// Sem senha, uma senha temporária é gerada e devolvida uma única vez.
type CreateOperatorRequest struct {
	Nome    string `json:"nome" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Senha   string `json:"senha" validate:"omitempty,min=8"`
	IsAdmin bool   `json:"isAdmin"`
}

type CreateOperatorResponse struct {
	Operator        *models.Operator `json:"operator"`
	SenhaTemporaria string           `json:"senhaTemporaria,omitempty"`
}
