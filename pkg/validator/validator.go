package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/firstlight/backend/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phoneNumberPattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	otpCodePattern     = regexp.MustCompile(`^[0-9]{4,10}$`)
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := Register(v); err != nil {
			log.Fatalf("register validators failed: %s", err)
		}
	}
}

// Register installs json tag names and the custom validations on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validations := map[string]validator.Func{
		"phonenumber": phoneNumberValidator,
		"otpcode":     otpCodeValidator,
		"otppurpose":  otpPurposeValidator,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}

	return nil
}

var phoneNumberValidator validator.Func = func(fl validator.FieldLevel) bool {
	return phoneNumberPattern.MatchString(fl.Field().String())
}

var otpCodeValidator validator.Func = func(fl validator.FieldLevel) bool {
	return otpCodePattern.MatchString(fl.Field().String())
}

var otpPurposeValidator validator.Func = func(fl validator.FieldLevel) bool {
	return domain.OtpPurpose(fl.Field().String()).Valid()
}
