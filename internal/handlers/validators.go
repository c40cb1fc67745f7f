package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vendasys/vendas_pos_app/internal/core/domain"
)

// Custom binding validators for the closed enum sets, so malformed values
// are rejected at bind time with a field-level message.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseRole(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePaymentMethod(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("movementdirection", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseMovementDirection(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("movementreason", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseMovementReason(fl.Field().String())
		return err == nil
	})
}
