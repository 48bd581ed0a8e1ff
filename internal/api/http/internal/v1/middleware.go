package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/firstlight/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "userId"
)

func (h *Handler) userIdentityMiddleware(c *gin.Context) {
	id, err := h.parseAuthHeader(c)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			logger.Warn("parse auth header failed", zap.Error(err))
		}
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	c.Set(userCtx, id)
}

func (h *Handler) parseAuthHeader(c *gin.Context) (uuid.UUID, error) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		return uuid.Nil, errors.New("empty auth header")
	}

	headerParts := strings.Split(header, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return uuid.Nil, errors.New("invalid auth header")
	}

	if len(headerParts[1]) == 0 {
		return uuid.Nil, errors.New("token is empty")
	}

	return h.tokenManager.Parse(headerParts[1])
}

func (h *Handler) getUserUUID(c *gin.Context) (uuid.UUID, error) {
	id, ok := c.Get(userCtx)
	if !ok {
		return uuid.Nil, errors.New("user id not found")
	}

	userID, ok := id.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("user id has unexpected type")
	}

	return userID, nil
}
