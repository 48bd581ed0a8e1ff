package v1

import (
	"net/http"
	"time"

	"github.com/firstlight/backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")

	users.GET("/me", h.userIdentityMiddleware, h.me)
}

type userResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

func newUserResponse(user *domain.User) userResponse {
	if user == nil {
		return userResponse{}
	}

	return userResponse{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone.String,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}

// @Summary Current user
// @Tags Users
// @Description Returns the authenticated user's profile
// @ModuleID me
// @Produce  json
// @Success 200 {object} userResponse
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Security UserAuth
// @Router /users/me [get]
func (h *Handler) me(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	user, err := h.services.Users.GetOneByID(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
