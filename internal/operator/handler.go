package operator

import (
	"errors"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-faturamento/internal/auth"
	"github.com/KromaEnergia/api-faturamento/internal/config"
	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/KromaEnergia/api-faturamento/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Tokens     *auth.TokenIssuer
}

func NewHandler(db *gorm.DB, tokens *auth.TokenIssuer) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Tokens:     tokens,
	}
}

// POST /auth/login
// Valida email/senha e emite o access token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.WriteError(w, config.GetLogger(), "operator", "Login", err)
		return
	}

	user, err := h.Repository.FindByEmail(h.DB, strings.ToLower(req.Email))
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !utils.CheckSenha(user.Senha, req.Password) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	access, err := h.Tokens.Generate(user.ID, user.IsAdmin)
	if err != nil {
		config.LogError(config.GetLogger(), "operator", "Login", "gerando token", user.ID, err)
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"access_token": access,
		"token_type":   "Bearer",
		"expires_in":   int(h.Tokens.TTL().Seconds()),
	})
}

// POST /operators (admin)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOperatorRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.WriteError(w, config.GetLogger(), "operator", "Create", err)
		return
	}

	email := strings.ToLower(req.Email)
	if _, err := h.Repository.FindByEmail(h.DB, email); err == nil {
		http.Error(w, "email já cadastrado", http.StatusConflict)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "erro ao buscar operador", http.StatusInternalServerError)
		return
	}

	op, temp, err := h.create(req.Nome, email, req.Senha, req.IsAdmin)
	if err != nil {
		config.LogError(config.GetLogger(), "operator", "Create", "salvando operador", email, err)
		http.Error(w, "erro ao salvar operador", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, CreateOperatorResponse{Operator: op, SenhaTemporaria: temp})
}

// GET /operators (admin)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListAll(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar operadores", http.StatusInternalServerError)
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// create grava o operador; devolve a senha gerada quando nenhuma foi informada
func (h *Handler) create(nome, email, senha string, isAdmin bool) (*models.Operator, string, error) {
	temp := ""
	if senha == "" {
		var err error
		if temp, err = utils.GerarSenhaTemporaria(); err != nil {
			return nil, "", err
		}
		senha = temp
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return nil, "", err
	}
	op := &models.Operator{Nome: nome, Email: email, Senha: hash, IsAdmin: isAdmin}
	if err := h.Repository.Save(h.DB, op); err != nil {
		return nil, "", err
	}
	return op, temp, nil
}

// EnsureAdmin cria o primeiro administrador quando não há operadores
func (h *Handler) EnsureAdmin(email, senha string) error {
	if email == "" {
		return nil
	}
	n, err := h.Repository.Count(h.DB)
	if err != nil || n > 0 {
		return err
	}
	op, temp, err := h.create("Administrador", strings.ToLower(email), senha, true)
	if err != nil {
		return err
	}
	entry := config.GetLogger().WithFields(logrus.Fields{"module": "operator", "email": op.Email})
	if temp != "" {
		entry = entry.WithField("senhaTemporaria", temp)
	}
	entry.Warn("operador administrador criado")
	return nil
}
