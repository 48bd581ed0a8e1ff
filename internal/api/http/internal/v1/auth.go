package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/firstlight/backend/internal/domain"
	"github.com/firstlight/backend/internal/service"
	"github.com/firstlight/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)

		auth.POST("/send-verification-otp", h.sendVerificationOtp)
		auth.POST("/verify-email-otp", h.verifyEmailOtp)

		auth.POST("/send-password-reset-otp", h.sendPasswordResetOtp)
		auth.POST("/change-password", h.sendPasswordResetOtp)
		auth.POST("/verify-password-reset-otp", h.verifyPasswordResetOtp)
		auth.POST("/reset-password", h.resetPassword)

		auth.POST("/resend-otp", h.resendOtp)

		auth.POST("/send-2fa-otp", h.userIdentityMiddleware, h.sendTwoFactorOtp)
		auth.POST("/verify-2fa-otp", h.userIdentityMiddleware, h.verifyTwoFactorOtp)
	}
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type otpResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	OtpID     string     `json:"otp_id,omitempty"`
	Code      string     `json:"code,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// newOtpResponse attaches record details only when codes may be exposed.
func (h *Handler) newOtpResponse(message string, otp *domain.Otp) otpResponse {
	res := otpResponse{Success: true, Message: message}
	if otp == nil || !h.exposeCode() {
		return res
	}

	expiresAt := otp.ExpiresAt
	res.OtpID = otp.ID.String()
	res.Code = otp.Code
	res.ExpiresAt = &expiresAt

	return res
}

// serviceErrorResponse maps service errors onto status codes and error payloads.
func serviceErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExist):
		errorResponse(c, http.StatusConflict, UserAlreadyExistsCode)
	case errors.Is(err, service.ErrUserNotFound):
		errorResponse(c, http.StatusNotFound, UserNotFoundCode)
	case errors.Is(err, service.ErrInvalidCredentials):
		errorResponse(c, http.StatusUnauthorized, InvalidCredentialsCode)
	case errors.Is(err, service.ErrUserAlreadyVerified):
		errorResponse(c, http.StatusConflict, UserAlreadyVerifiedCode)
	case errors.Is(err, service.ErrOtpInvalidOrExpired):
		errorResponse(c, http.StatusBadRequest, OtpInvalidOrExpiredCode)
	case errors.Is(err, service.ErrOtpRateLimited):
		errorResponse(c, http.StatusTooManyRequests, OtpRateLimitedCode)
	case errors.Is(err, service.ErrOtpAbuseThreshold):
		errorResponse(c, http.StatusTooManyRequests, OtpAbuseThresholdCode)
	case errors.Is(err, service.ErrOtpDeliveryFailed):
		errorResponse(c, http.StatusBadGateway, OtpDeliveryFailedCode)
	case errors.Is(err, service.ErrOtpPurposeNotAllowed):
		errorResponse(c, http.StatusBadRequest, OtpPurposeNotAllowedCode)
	case errors.Is(err, service.ErrInvalidOtpPurpose):
		errorResponse(c, http.StatusBadRequest, OtpInvalidPurposeCode)
	case errors.Is(err, service.ErrInvalidEmail):
		errorResponse(c, http.StatusBadRequest, MalformedRequestErrorCode)
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode)
	}
}

type registerRequest struct {
	Name     string          `json:"name" binding:"required,min=2,max=100"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8,max=72"`
	Phone    string          `json:"phone" binding:"omitempty,phonenumber"`
	Role     domain.UserRole `json:"role" binding:"omitempty,oneof=tenant landlord"`
}

type registerResponse struct {
	otpResponse
	User userResponse `json:"user"`
}

// @Summary Register
// @Tags Auth
// @Description Creates an unverified account and emails a verification code
// @ModuleID register
// @Accept  json
// @Produce  json
// @Param input body registerRequest true "account"
// @Success 201 {object} registerResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, otp, err := h.services.Users.Register(c.Request.Context(), service.UserRegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		otpResponse: h.newOtpResponse("User registered successfully. Please check your email for the verification code.", otp),
		User:        newUserResponse(user),
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        userResponse `json:"user"`
}

type verificationRequiredResponse struct {
	ErrorStruct
	RequiresVerification bool `json:"requires_verification"`
}

// @Summary Login
// @Tags Auth
// @Description Exchanges credentials for an access token. Unverified accounts receive a new verification code instead.
// @ModuleID login
// @Accept  json
// @Produce  json
// @Param input body loginRequest true "credentials"
// @Success 200 {object} loginResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 403 {object} verificationRequiredResponse
// @Failure 500 {object} ErrorStruct
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	user, tokens, err := h.services.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotVerified) {
			c.AbortWithStatusJSON(http.StatusForbidden, verificationRequiredResponse{
				ErrorStruct:          *getErrorStruct(EmailNotVerifiedCode),
				RequiresVerification: true,
			})
			return
		}
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Success:     true,
		Message:     "Login successful",
		AccessToken: tokens.AccessToken,
		ExpiresIn:   int64(tokens.AccessTTL.Seconds()),
		User:        newUserResponse(user),
	})
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type emailOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required,otpcode"`
}

// @Summary Send verification OTP
// @Tags OTP
// @Description Emails a fresh email verification code
// @ModuleID sendVerificationOtp
// @Accept  json
// @Produce  json
// @Param input body emailRequest true "email"
// @Success 200 {object} otpResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /auth/send-verification-otp [post]
func (h *Handler) sendVerificationOtp(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	otp, err := h.services.Users.SendVerificationOtp(c.Request.Context(), req.Email)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, h.newOtpResponse("Verification OTP sent successfully", otp))
}

// @Summary Verify email
// @Tags OTP
// @Description Consumes an email verification code and marks the account verified
// @ModuleID verifyEmailOtp
// @Accept  json
// @Produce  json
// @Param input body emailOtpRequest true "email and code"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Router /auth/verify-email-otp [post]
func (h *Handler) verifyEmailOtp(c *gin.Context) {
	var req emailOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Users.VerifyEmail(c.Request.Context(), req.Email, req.Otp); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Email verified successfully. You can now login."})
}

const passwordResetSentMessage = "If an account exists with this email, a password reset OTP has been sent"

// @Summary Send password reset OTP
// @Tags OTP
// @Description Emails a password reset code. Unknown emails get the same response.
// @ModuleID sendPasswordResetOtp
// @Accept  json
// @Produce  json
// @Param input body emailRequest true "email"
// @Success 200 {object} otpResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /auth/send-password-reset-otp [post]
// @Router /auth/change-password [post]
func (h *Handler) sendPasswordResetOtp(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	otp, err := h.services.Users.SendPasswordResetOtp(c.Request.Context(), req.Email)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, h.newOtpResponse(passwordResetSentMessage, otp))
}

// @Summary Check password reset OTP
// @Tags OTP
// @Description Checks a password reset code without consuming it
// @ModuleID verifyPasswordResetOtp
// @Accept  json
// @Produce  json
// @Param input body emailOtpRequest true "email and code"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Router /auth/verify-password-reset-otp [post]
func (h *Handler) verifyPasswordResetOtp(c *gin.Context) {
	var req emailOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Users.VerifyPasswordResetOtp(c.Request.Context(), req.Email, req.Otp); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Success: true, Message: "OTP verified successfully"})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Otp         string `json:"otp" binding:"required,otpcode"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// @Summary Reset password
// @Tags OTP
// @Description Consumes a password reset code and sets a new password
// @ModuleID resetPassword
// @Accept  json
// @Produce  json
// @Param input body resetPasswordRequest true "email, code and new password"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Router /auth/reset-password [post]
func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Users.ResetPassword(c.Request.Context(), req.Email, req.Otp, req.NewPassword); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Password reset successfully"})
}

type resendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Type  string `json:"type" binding:"required,otppurpose"`
}

// @Summary Resend OTP
// @Tags OTP
// @Description Mints and emails a new code, superseding the previous one
// @ModuleID resendOtp
// @Accept  json
// @Produce  json
// @Param input body resendOtpRequest true "email and type"
// @Success 200 {object} otpResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /auth/resend-otp [post]
func (h *Handler) resendOtp(c *gin.Context) {
	var req resendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	purpose, err := domain.ParseOtpPurpose(req.Type)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	otp, err := h.services.Users.ResendOtp(c.Request.Context(), req.Email, purpose)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	message := "OTP resent successfully"
	if purpose == domain.OtpPurposePasswordReset {
		message = passwordResetSentMessage
	}

	c.JSON(http.StatusOK, h.newOtpResponse(message, otp))
}

// @Summary Send 2FA OTP
// @Tags OTP
// @Description Emails a two-factor code to the authenticated user
// @ModuleID sendTwoFactorOtp
// @Produce  json
// @Success 200 {object} otpResponse
// @Failure 401 {object} ErrorStruct
// @Failure 429 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Security UserAuth
// @Router /auth/send-2fa-otp [post]
func (h *Handler) sendTwoFactorOtp(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	otp, err := h.services.Users.SendTwoFactorOtp(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, h.newOtpResponse("2FA OTP sent successfully", otp))
}

type otpRequest struct {
	Otp string `json:"otp" binding:"required,otpcode"`
}

// @Summary Verify 2FA OTP
// @Tags OTP
// @Description Consumes a two-factor code issued to the authenticated user
// @ModuleID verifyTwoFactorOtp
// @Accept  json
// @Produce  json
// @Param input body otpRequest true "code"
// @Success 200 {object} messageResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Security UserAuth
// @Router /auth/verify-2fa-otp [post]
func (h *Handler) verifyTwoFactorOtp(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	var req otpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if err := h.services.Users.VerifyTwoFactorOtp(c.Request.Context(), userID, req.Otp); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Success: true, Message: "2FA verified successfully"})
}
