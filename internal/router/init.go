package router

import (
	"github.com/oksasatya/mycontacts-api/internal/container"
	handlers "github.com/oksasatya/mycontacts-api/internal/interface/http"
	"github.com/oksasatya/mycontacts-api/internal/router/modules"
)

// InitModules builds every feature module from c and adds it to the registry.
// It should be called once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	authHandler := handlers.NewAuthHandler(c.AuthService(), c.Logger)
	contactHandler := handlers.NewContactHandler(c.ContactService(), c.Logger)

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewContactModule(contactHandler, c.JWT, c.Logger))

	health := handlers.NewHealthHandler(nil)
	if c.Pool != nil {
		health.DB = c.Pool
	}
	r.AddRoot(modules.NewHealthModule(health))
	if c.Config.MetricsEnabled && c.Metrics != nil {
		r.AddRoot(modules.NewMetricsModule(c.Metrics))
	}
}
