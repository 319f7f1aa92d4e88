package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/finovabs/backoffice_app/internal/core/domain"
)

// RegisterCustomValidators installs the binding validators used by the DTOs
// in this package. Call once at startup, before the router serves traffic.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	// payment_terms restricts a field to the supported payment-terms codes.
	// The domain's CreditDays parsing stays permissive; this is the strict
	// gate at the API boundary.
	return v.RegisterValidation("payment_terms", func(fl validator.FieldLevel) bool {
		return domain.PaymentTerms(fl.Field().String()).Known()
	})
}
