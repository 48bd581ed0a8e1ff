package v1

import (
	"github.com/firstlight/backend/internal/config"
	"github.com/firstlight/backend/internal/service"
	"github.com/firstlight/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title FirstLight Apartments API
// @version 1.0
// @description Account registration, login and one-time passcode flows.

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initAuthRoutes(v1)
	h.initUsersRoutes(v1)
}

// exposeCode reports whether raw codes may be echoed back to the client.
func (h *Handler) exposeCode() bool {
	return h.config.OTP.ExposeCode && !h.config.IsProduction()
}
