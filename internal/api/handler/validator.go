package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FormValidator wraps go-playground/validator for the HTML form schemas. It
// doubles as echo's Validator and as a field-level message source for
// re-rendering forms.
type FormValidator struct {
	v *validator.Validate
}

func NewFormValidator() *FormValidator {
	v := validator.New()
	// Never fails: the rule only inspects the value.
	_ = v.RegisterValidation("strongpassword", strongPassword)
	return &FormValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (fv *FormValidator) Validate(i any) error {
	msgs := fv.Check(i)
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// Check returns one human-readable message per failed field, in declaration
// order, or nil when the value is valid.
func (fv *FormValidator) Check(i any) []string {
	err := fv.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{"invalid form submission"}
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return msgs
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "alphanum":
		return field + " cannot contain spaces or special characters"
	case "strongpassword":
		return "password must be 12 to 72 characters and include an uppercase letter, a lowercase letter, a number and a symbol"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// strongPassword enforces the registration password policy: 12 to 72
// characters with an uppercase letter, a lowercase letter, a digit, and a
// symbol. The upper bound is bcrypt's 72 byte input limit; rejecting it here
// keeps an oversized password a form error rather than a hashing fault.
func strongPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) > 72 {
		return false
	}

	var length, upper, lower, digit, symbol bool
	length = len([]rune(s)) >= 12
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return length && upper && lower && digit && symbol
}
