package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bundlewise/go-api/pkg/global"
)

const companyIDKey = "company_id"

// RequestID tags every request with a correlation id, echoed back in the
// X-Request-ID response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// SessionMiddleware resolves the X-Platform-Session token to a company id,
// via the Redis cache first and the platform's application lookup on a miss.
func (d *Dependencies) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Platform-Session")
		if token == "" {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Platform session required", []global.ValidationError{
				{Field: "X-Platform-Session", Message: "session header is required", Code: "required"},
			}))
			c.Abort()
			return
		}

		ctx := c.Request.Context()

		if companyID, err := d.Sessions.GetSession(ctx, token); err == nil && companyID != "" {
			c.Set(companyIDKey, companyID)
			c.Next()
			return
		}

		companyID, err := d.Auth.GetApplications(ctx, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid platform session", nil))
			c.Abort()
			return
		}

		if cacheErr := d.Sessions.SaveSession(ctx, token, companyID); cacheErr != nil {
			// Cache errors never block an authenticated request.
			c.Error(cacheErr)
		}

		c.Set(companyIDKey, companyID)
		c.Next()
	}
}

// sessionCompanyID returns the company resolved by the session middleware,
// preferring it over whatever company_id the body claims.
func sessionCompanyID(c *gin.Context, bodyCompanyID string) string {
	if v, ok := c.Get(companyIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return bodyCompanyID
}
