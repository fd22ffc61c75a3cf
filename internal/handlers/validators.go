package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/contas_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal amounts.
//
//	money    positive, at most 2 decimal places
//	decimal2 zero or positive, at most 2 decimal places
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("money", validateDecimal(false))
		_ = v.RegisterValidation("decimal2", validateDecimal(true))
	})
}

func validateDecimal(allowZero bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		if allowZero && d.IsZero() {
			return true
		}
		return domain.ValidAmount(d)
	}
}
