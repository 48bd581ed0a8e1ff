package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UserAlreadyExistsCode      = 1001
	UserAlreadyExistsMessage   = "user already exists"
	UserNotFoundCode           = 1002
	UserNotFoundMessage        = "user not found"
	InvalidCredentialsCode     = 1003
	InvalidCredentialsMessage  = "invalid email or password"
	EmailNotVerifiedCode       = 1004
	EmailNotVerifiedMessage    = "Please verify your email before logging in"
	UserAlreadyVerifiedCode    = 1005
	UserAlreadyVerifiedMessage = "email already verified"
	UnauthorizedCode           = 1006
	UnauthorizedMessage        = "unauthorized"

	OtpInvalidOrExpiredCode      = 2001
	OtpInvalidOrExpiredMessage   = "Invalid or expired OTP"
	OtpRateLimitedCode           = 2002
	OtpRateLimitedMessage        = "Please wait before requesting another OTP"
	OtpAbuseThresholdCode        = 2003
	OtpAbuseThresholdMessage     = "Too many OTP requests. Please try again later."
	OtpDeliveryFailedCode        = 2004
	OtpDeliveryFailedMessage     = "Failed to send OTP email"
	OtpPurposeNotAllowedCode     = 2005
	OtpPurposeNotAllowedMessage  = "this OTP type cannot be requested here"
	OtpInvalidPurposeCode        = 2006
	OtpInvalidPurposeMessage     = "invalid OTP type"
	ValidationErrorCode          = 6000
	ValidationErrorMessage       = "Validation error"
	MalformedRequestErrorCode    = 6001
	MalformedRequestErrorMessage = "malformed request body"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
} // @name ValidationErrorStruct

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

var errorMessages = map[ErrorCode]ErrorMessage{
	UserAlreadyExistsCode:     UserAlreadyExistsMessage,
	UserNotFoundCode:          UserNotFoundMessage,
	InvalidCredentialsCode:    InvalidCredentialsMessage,
	EmailNotVerifiedCode:      EmailNotVerifiedMessage,
	UserAlreadyVerifiedCode:   UserAlreadyVerifiedMessage,
	UnauthorizedCode:          UnauthorizedMessage,
	OtpInvalidOrExpiredCode:   OtpInvalidOrExpiredMessage,
	OtpRateLimitedCode:        OtpRateLimitedMessage,
	OtpAbuseThresholdCode:     OtpAbuseThresholdMessage,
	OtpDeliveryFailedCode:     OtpDeliveryFailedMessage,
	OtpPurposeNotAllowedCode:  OtpPurposeNotAllowedMessage,
	OtpInvalidPurposeCode:     OtpInvalidPurposeMessage,
	MalformedRequestErrorCode: MalformedRequestErrorMessage,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	message, ok := errorMessages[code]
	if !ok {
		return &ErrorStruct{
			ErrorCode:    UnknownErrorCode,
			ErrorMessage: UnknownErrorMessage,
		}
	}

	return &ErrorStruct{
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
