package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// WriteJSON escreve o payload com o status informado
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// StatusFor traduz a categoria do erro para o status HTTP
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInconsistentState), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// WriteError responde com a mensagem do erro; erros internos são logados e ocultados
func WriteError(w http.ResponseWriter, logger *logrus.Logger, module, funcName string, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"module":   module,
				"funcName": funcName,
			}).Error(err.Error())
		}
		msg = "Erro interno"
	}
	http.Error(w, msg, status)
}

// ParseID lê um id numérico da rota
func ParseID(r *http.Request, key string) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)[key])
	if err != nil || id <= 0 {
		return 0, InvalidInput("%s inválido", key)
	}
	return uint(id), nil
}

// DecodeJSON decodifica o corpo e traduz falhas para ErrInvalidInput
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return InvalidInput("JSON inválido: %v", err)
	}
	return nil
}
