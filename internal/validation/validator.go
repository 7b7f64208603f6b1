package validation

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Mongolian mobile numbers: 8 digits, spaces tolerated
var mnPhoneRe = regexp.MustCompile(`^[0-9]{8}$`)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("mn_phone", func(fl validator.FieldLevel) bool {
		return mnPhoneRe.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
