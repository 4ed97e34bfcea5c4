package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/wallet_ledger_service/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags and reports fields by their JSON name.
// Safe to call more than once.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		// currency_code accepts any 3-letter code in either case; services upper-case it.
		_ = v.RegisterValidation("currency_code", func(fl validator.FieldLevel) bool {
			_, err := domain.NormalizeCurrency(fl.Field().String())
			return err == nil
		})
	})
}
