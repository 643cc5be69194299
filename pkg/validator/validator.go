package validator

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator"
)

var (
	global        *validator.Validate
	mobileRegex   = regexp.MustCompile(`^0[689]\d{8}$`)
	landlineRegex = regexp.MustCompile(`^0[2-7]\d{7}$`)
	stripRegex    = regexp.MustCompile(`[\s\-\.\(\)]`)
)

const (
	ErrInvalidFormat     = "Invalid format"
	ErrFieldRequired     = "Field is required"
	ErrInvalidPhone      = "Invalid phone number"
	ErrInvalidDate       = "Invalid date, expected YYYY-MM-DD"
	ErrInvalidClock      = "Invalid time, expected HH:MM"
	ErrUnknownValidation = "Unknown validation error"
)

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("thaiphone", validateThaiPhone)
	_ = v.RegisterValidation("civildate", validateCivilDate)
	_ = v.RegisterValidation("clock", validateClock)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

// NormalizePhone strips whitespace and punctuation and rewrites a +66
// country prefix to the domestic leading zero.
func NormalizePhone(phone string) string {
	p := stripRegex.ReplaceAllString(phone, "")
	if strings.HasPrefix(p, "+66") {
		p = "0" + p[3:]
	}
	return p
}

func IsThaiPhone(phone string) bool {
	p := NormalizePhone(phone)
	return mobileRegex.MatchString(p) || landlineRegex.MatchString(p)
}

func validateThaiPhone(fl validator.FieldLevel) bool {
	return IsThaiPhone(fl.Field().String())
}

func validateCivilDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

func Validate(ctx context.Context, structure any) error {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrors) == 0 {
		return nil
	}
	ve := vErrors[0]
	var msg string
	switch ve.Tag() {
	case "required":
		msg = ErrFieldRequired
	case "thaiphone":
		msg = ErrInvalidPhone
	case "civildate":
		msg = ErrInvalidDate
	case "clock":
		msg = ErrInvalidClock
	default:
		msg = ErrUnknownValidation
	}
	return errors.New(msg + ": " + ve.Namespace())
}
