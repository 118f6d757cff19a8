package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes on a RouterGroup (/api, or the engine root for AddRoot)
type Module interface {
	Register(rg *gin.RouterGroup)
}
