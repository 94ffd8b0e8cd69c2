package middleware

import (
	"fmt"

	"outreach/services/whatsapp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request models.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("ilphone", func(fl validator.FieldLevel) bool {
		return whatsapp.IsLocalMobile(fl.Field().String())
	})
}
