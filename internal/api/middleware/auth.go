package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uac/cafeteria-api/internal/pkg/jwthelper"
)

const (
	// ContextKeyAdminID holds the authenticated administrator's id.
	ContextKeyAdminID = "admin_id"
	// ContextKeyAdminUsername holds the authenticated administrator's username.
	ContextKeyAdminUsername = "admin_username"
)

var errMissingToken = errors.New("missing or malformed authorization header")

type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{signingKey: signingKey}
}

// VerifyJWT guards administrator endpoints.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingToken.Error()})
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx.Set(ContextKeyAdminID, claims.AdminID)
		ctx.Set(ContextKeyAdminUsername, claims.Username)
		ctx.Next()
	}
}
