package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/mycontacts-api/internal/interface/http"
	"github.com/oksasatya/mycontacts-api/internal/interface/middleware"
	"github.com/oksasatya/mycontacts-api/pkg/helpers"
)

// ContactModule wires the contact handlers behind the bearer token gateway.
type ContactModule struct {
	Handler *handlers.ContactHandler
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
}

func NewContactModule(h *handlers.ContactHandler, jwt *helpers.JWTManager, logger *logrus.Logger) *ContactModule {
	return &ContactModule{Handler: h, JWT: jwt, Logger: logger}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	contacts.Use(middleware.Auth(m.JWT, m.Logger))
	{
		contacts.GET("", m.Handler.List)
		contacts.POST("", m.Handler.Create)
		contacts.GET("/search", m.Handler.Search)
		contacts.GET("/:id", m.Handler.Get)
		contacts.PATCH("/:id", m.Handler.Update)
		contacts.DELETE("/:id", m.Handler.Delete)
		contacts.PUT("/:id/photo", m.Handler.UploadPhoto)
	}
}
