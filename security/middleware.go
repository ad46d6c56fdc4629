package security

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUserID is the gin context key under which AuthMiddleware stores the
// verified subject id.
const ContextUserID = "user_id"

// AuthMiddleware enforces bearer authentication. A missing or blank header is
// reported as "no token", distinct from a token that is present but fails
// verification. Verification happens before any database resource is touched;
// on success the subject id from the token is placed in the context for the
// wrapped handler.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			SendError(c, http.StatusUnauthorized, CodeMissingToken, "Authentication required",
				"Please provide a valid authorization token in the request header", nil)
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == "" {
			SendError(c, http.StatusUnauthorized, CodeMissingToken, "Authentication required",
				"Authorization header is present but carries no token", nil)
			c.Abort()
			return
		}

		userID, err := ParseToken(secret, tokenStr)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				SendError(c, http.StatusUnauthorized, CodeTokenExpired, "Token expired",
					"The provided token has expired. Please login again to get a new token", nil)
			} else {
				SendError(c, http.StatusUnauthorized, CodeInvalidToken, "Invalid token",
					"The provided token is invalid or malformed. Please login again to get a new token", nil)
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated subject id set by AuthMiddleware.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(ContextUserID)
	uid, _ := id.(int64)
	return uid
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowOrigin := "*"
		if origin != "" {
			allowOrigin = origin
		}

		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept, Origin, Cache-Control")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Expose-Headers", "Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestID tags every response with an id for log correlation. An id sent by
// the client is kept, otherwise a fresh one is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
