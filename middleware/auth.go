package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key the resolved user id is stored under.
const UserIDKey = "userID"

// ResolveUser verifies a bearer token of the form "<user_id>.<signature>"
// where the signature is an HMAC-SHA256 of the user id under the shared
// secret. The dialogue engine never sees raw credentials; it only receives
// the resolved user id. Requests without a token pass through untouched so
// development traffic can supply user_id in the body.
func ResolveUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, ok := verifyToken(token, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func verifyToken(token, secret string) (string, bool) {
	if secret == "" {
		return "", false
	}
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", false
	}

	expected := calculateHMAC([]byte(parts[0]), secret)
	if !hmac.Equal([]byte(parts[1]), []byte(expected)) {
		return "", false
	}
	return parts[0], true
}

func calculateHMAC(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
