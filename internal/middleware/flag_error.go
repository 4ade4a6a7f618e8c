package middleware

import (
	"errors"

	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/logger"
)

var ErrLogged = errors.New("already logged")

func FlagComboError(code errs.Code, a ...any) error {
	logger.LogError("%s", errs.Msg(code, a...))
	return ErrLogged
}
