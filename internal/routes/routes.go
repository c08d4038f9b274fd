package routes

import (
	"github.com/gin-gonic/gin"

	"shelter_backend/internal/handlers"
)

// RegisterRoutes mounts every HTTP route on the engine.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.AnimalHandler.RegisterRoutes(api)
		appHandlers.AdoptionHandler.RegisterRoutes(api)
		appHandlers.ImageHandler.RegisterRoutes(api)
	}

	appHandlers.ImageHandler.RegisterPublicRoutes(ginRouter)
}
