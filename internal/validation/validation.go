// Package validation checks form input and collects every failure in order.
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dniRe     = regexp.MustCompile(`^\d{7,8}$`)
	ref4Re    = regexp.MustCompile(`^\d{4}$`)
	amountRe  = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
	decimalRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ValidationError of every form. Order follows the form's declaration order.
type Errors struct {
	list []FieldError
}

func (e *Errors) Add(field, message string) {
	e.list = append(e.list, FieldError{Field: field, Message: message})
}

func (e *Errors) Len() int { return len(e.list) }

// First is the only message shown to the user.
func (e *Errors) First() string {
	if len(e.list) == 0 {
		return ""
	}
	return e.list[0].Message
}

func (e *Errors) All() []FieldError {
	out := make([]FieldError, len(e.list))
	copy(out, e.list)
	return out
}

func (e *Errors) Error() string { return e.First() }

// Err returns nil when nothing failed, so callers can return it directly.
func (e *Errors) Err() error {
	if e == nil || len(e.list) == 0 {
		return nil
	}
	return e
}

// AsErrors unwraps a validation failure.
func AsErrors(err error) (*Errors, bool) {
	var ve *Errors
	ok := errors.As(err, &ve)
	return ve, ok
}

// Messages maps "Field.tag" to the user-facing text of that failure.
type Messages map[string]string

// Validator wraps go-playground/validator with the hostel's formats registered.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	register := func(tag string, re *regexp.Regexp) {
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}
	register("email_simple", emailRe)
	register("dni", dniRe)
	register("ref4", ref4Re)
	register("amount", amountRe)
	register("decimal", decimalRe)
	return &Validator{v: v}
}

// Struct validates s and appends one message per failing field to errs.
func (v *Validator) Struct(s any, msgs Messages, errs *Errors) {
	err := v.v.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add("", err.Error())
		return
	}
	for _, fe := range verrs {
		key := fe.StructField() + "." + fe.Tag()
		msg, ok := msgs[key]
		if !ok {
			msg = "El campo " + strings.ToLower(fe.StructField()) + " no es válido"
		}
		errs.Add(fe.StructField(), msg)
	}
}

// IsEmail reports whether s looks like name@domain.tld.
func IsEmail(s string) bool { return emailRe.MatchString(s) }

// IsDNI reports whether s is a 7 or 8 digit identity number.
func IsDNI(s string) bool { return dniRe.MatchString(s) }

// IsAmount reports whether s uses dot thousands separators, e.g. "1.000" or "50.000".
func IsAmount(s string) bool { return amountRe.MatchString(s) }

// IsDecimal reports whether s is an unsigned decimal with a dot separator.
func IsDecimal(s string) bool { return decimalRe.MatchString(s) }
