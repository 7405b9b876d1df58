// Package validation wraps go-playground/validator with the loan rules:
// decimal-aware comparisons, loan type/status enums and the configured
// principal ceiling.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/taruntejajangila/expensetracker-sub000/internal/domain"
)

// DefaultMaxAmount is the largest principal accepted when none is configured.
var DefaultMaxAmount = decimal.NewFromInt(1_000_000_000)

type Validator struct {
	validate *validator.Validate
}

func New(maxAmount decimal.Decimal) *Validator {
	if !maxAmount.IsPositive() {
		maxAmount = DefaultMaxAmount
	}
	ceiling := maxAmount.InexactFloat64()

	v := validator.New()

	// Compare decimals as numbers so gt/gte/lte work on money fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("loan_type", func(fl validator.FieldLevel) bool {
		return domain.IsValidLoanType(fl.Field().String())
	})
	_ = v.RegisterValidation("loan_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		for _, s := range domain.LoanStatuses {
			if s == status {
				return true
			}
		}
		return false
	})
	_ = v.RegisterValidation("max_amount", func(fl validator.FieldLevel) bool {
		return fl.Field().Float() <= ceiling
	})

	return &Validator{validate: v}
}

// Struct validates s and returns a single readable error listing every
// failed field, or nil.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, message(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "max_amount":
		return fmt.Sprintf("%s exceeds the maximum allowed principal", field)
	case "loan_type":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(domain.LoanTypes, ", "))
	case "loan_status":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(domain.LoanStatuses, ", "))
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
