package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/ardanovsky/todo-service/internal/common/constants"
	commonerrors "github.com/ardanovsky/todo-service/internal/common/errors"
)

var validate = validator.New()

func validateCredentials(email, password string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return commonerrors.ErrInvalidEmail
	}

	if len(password) < constants.PasswordMinLength {
		return commonerrors.ErrPasswordTooShort
	}

	return nil
}
