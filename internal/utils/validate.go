package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct aplica as tags `validate` e devolve ErrInvalidInput com o primeiro campo inválido
func ValidateStruct(s any) error {
	if err := Validator().Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			f := verrs[0]
			return InvalidInput("campo %s falhou na regra %s", f.Field(), f.Tag())
		}
		return InvalidInput("%v", err)
	}
	return nil
}

// NormalizePhone devolve o telefone em E.164. region é usada quando o número
// vem sem código de país. Vazio continua vazio.
func NormalizePhone(phone, region string) (string, error) {
	if phone == "" {
		return "", nil
	}
	num, err := libphonenumber.Parse(phone, region)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return "", InvalidInput("telefone inválido: %s", phone)
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}
