package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
	"github.com/oksasatya/mycontacts-api/pkg/helpers"
	"github.com/oksasatya/mycontacts-api/pkg/response"
)

// CtxIdentityKey holds the entity.Identity of an authenticated request.
const CtxIdentityKey = "identity"

// Auth validates the bearer token and sets the caller identity in the Gin context.
// Requests without a valid token are rejected before downstream handlers run.
func Auth(jwt *helpers.JWTManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthenticated(c)
			return
		}
		claims, err := jwt.Verify(token)
		if err != nil {
			if logger != nil {
				logger.WithError(err).WithField("request_id", c.GetString(response.RequestIDKey)).Debug("token rejected")
			}
			unauthenticated(c)
			return
		}
		c.Set(CtxIdentityKey, entity.Identity{Email: claims.Email})
		c.Next()
	}
}

// IdentityFrom returns the identity set by Auth.
func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok && id.Email != ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthenticated(c *gin.Context) {
	response.Error[any](c, http.StatusUnauthorized, "Unauthenticated", nil)
}
