package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	reqdto "kiosk-sales-api/internal/handler/dto/request"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	msgRequired       = "Required"
	msgExpectedNumber = "Expected number"
	msgExpectedInt    = "Expected integer"
	msgOutOfRange     = "Number is out of range"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// fieldChecker collects issues while numbers are coerced, then merges in the
// struct validation result. A field reports its first problem only.
type fieldChecker struct {
	issues []Issue
	failed map[string]bool
}

func newFieldChecker() *fieldChecker {
	return &fieldChecker{failed: map[string]bool{}}
}

func (c *fieldChecker) add(field, message string) {
	if c.failed[field] {
		return
	}
	c.failed[field] = true
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *fieldChecker) int64(field string, n reqdto.Number) int64 {
	if !n.IsSet() {
		c.add(field, msgRequired)
		return 0
	}
	d, ok := c.parse(field, n)
	if !ok {
		return 0
	}
	if !d.IsInteger() {
		c.add(field, msgExpectedInt)
		return 0
	}
	i, ok := n.Int64()
	if !ok {
		c.add(field, msgOutOfRange)
		return 0
	}
	return i
}

func (c *fieldChecker) decimal(field string, n reqdto.Number) decimal.Decimal {
	if !n.IsSet() {
		c.add(field, msgRequired)
		return decimal.Zero
	}
	d, ok := c.parse(field, n)
	if !ok {
		return decimal.Zero
	}
	return d
}

func (c *fieldChecker) parse(field string, n reqdto.Number) (decimal.Decimal, bool) {
	d, err := n.Parse()
	switch {
	case errors.Is(err, reqdto.ErrOutOfRange):
		c.add(field, msgOutOfRange)
		return decimal.Zero, false
	case err != nil:
		c.add(field, msgExpectedNumber)
		return decimal.Zero, false
	}
	return d, true
}

// optionalDecimal treats a missing or blank value as zero.
func (c *fieldChecker) optionalDecimal(field string, n reqdto.Number) decimal.Decimal {
	if !n.IsSet() || n.IsBlank() {
		return decimal.Zero
	}
	return c.decimal(field, n)
}

func (c *fieldChecker) validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, fe := range verrs {
		c.add(fe.Field(), issueMessage(fe))
	}
	return nil
}

func (c *fieldChecker) Issues() []Issue {
	return c.issues
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf("Must contain at most %s character(s)", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte", "min":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("Failed on %s", fe.Tag())
	}
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
