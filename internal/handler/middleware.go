package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BloggingApp/community-service/internal/dto"
	"github.com/BloggingApp/community-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

func (h *Handler) requestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)

	start := time.Now()
	c.Next()

	h.logger.Info("request",
		zap.String("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}

func (h *Handler) siteMiddleware(c *gin.Context) {
	siteID, err := strconv.ParseInt(strings.TrimSpace(c.Param("siteID")), 10, 64)
	if err != nil || siteID <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidSiteID.Error()))
		c.Abort()
		return
	}

	c.Set("site-id", siteID)

	c.Next()
}

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, h.accessSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	personID, err := personIDFromClaims(claims)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
		c.Abort()
		return
	}

	person, err := h.services.Person.FindByID(c.Request.Context(), h.getSiteIDFromRequest(c), personID)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			status = http.StatusUnauthorized
		}
		c.JSON(status, dto.NewBasicResponse(false, err.Error()))
		c.Abort()
		return
	}

	c.Set("person", *person)

	c.Next()
}

func personIDFromClaims(claims jwt.MapClaims) (int64, error) {
	switch id := claims["id"].(type) {
	case float64:
		if id > 0 && id == float64(int64(id)) {
			return int64(id), nil
		}
	case string:
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err == nil && parsed > 0 {
			return parsed, nil
		}
	}
	return 0, errInvalidIDClaim
}
