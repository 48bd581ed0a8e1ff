package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		errorResponse(c, http.StatusBadRequest, MalformedRequestErrorCode)
		return
	}

	out := make([]ValidationError, len(verr))
	for i, ferr := range verr {
		out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
	}
	response := ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: ValidationErrorMessage,
	}
	response.Errors = out
	c.AbortWithStatusJSON(http.StatusBadRequest, response)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "number":
		return "Field must be numeric"
	case "min":
		return fmt.Sprintf("Must be at least %v characters", value)
	case "max":
		return fmt.Sprintf("Must be at most %v characters", value)
	case "oneof":
		return fmt.Sprintf("Must be one of: %v", value)
	case "phonenumber":
		return "Phone number must contain 7 to 15 digits"
	case "otpcode":
		return "OTP must be a numeric code"
	case "otppurpose":
		return "Type must be one of: email_verification password_reset two_factor_auth"
	}
	return tag
}
