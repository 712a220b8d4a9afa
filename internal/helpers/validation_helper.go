package helpers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	bkashTrxPattern    = regexp.MustCompile(`^[A-Za-z0-9]{10,}$`)
	bankReceiptPattern = regexp.MustCompile(`^[A-Za-z0-9-]{6,}$`)
	transactionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
)

// RegisterCustomValidators adds the payment-reference formats to gin's
// binding engine. Call once at startup before routes are served.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("bkash_trx", func(fl validator.FieldLevel) bool {
		return bkashTrxPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("bank_receipt", func(fl validator.FieldLevel) bool {
		return bankReceiptPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("transaction_id", func(fl validator.FieldLevel) bool {
		return transactionPattern.MatchString(fl.Field().String())
	})
}
