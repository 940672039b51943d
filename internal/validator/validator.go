// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"

	"github.com/MateusMunaro/financial-manager/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var lastDigitsRegex = regexp.MustCompile(`^[0-9]{4}$`)

// maxMoney is the first amount a numeric(12,2) column cannot hold.
var maxMoney = decimal.New(1, 10)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("payment_method_type", validatePaymentMethodType)
		_ = v.RegisterValidation("recurring_frequency", validateRecurringFrequency)
		_ = v.RegisterValidation("investment_type", validateInvestmentType)
		_ = v.RegisterValidation("stats_period", validateStatsPeriod)
		_ = v.RegisterValidation("last_digits", validateLastDigits)
		_ = v.RegisterValidation("money", validateMoney)
	}
}

// decimalValue lets numeric tags such as gt=0 apply to decimal amounts.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func validatePaymentMethodType(fl validator.FieldLevel) bool {
	return models.PaymentMethodType(fl.Field().String()).Valid()
}

func validateRecurringFrequency(fl validator.FieldLevel) bool {
	return models.RecurringFrequency(fl.Field().String()).Valid()
}

func validateInvestmentType(fl validator.FieldLevel) bool {
	return models.InvestmentType(fl.Field().String()).Valid()
}

func validateStatsPeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "day", "week", "month", "year":
		return true
	}
	return false
}

func validateLastDigits(fl validator.FieldLevel) bool {
	return lastDigitsRegex.MatchString(fl.Field().String())
}

// validateMoney accepts amounts with at most two decimal places that fit the
// money columns. Decimals reach it as float64 through decimalValue.
func validateMoney(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float64 && field.Kind() != reflect.Float32 {
		return false
	}
	d := decimal.NewFromFloat(field.Float())
	return d.Equal(d.Round(2)) && d.Abs().LessThan(maxMoney)
}
