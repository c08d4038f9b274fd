package handlers

import (
	"shelter_backend/internal/services"
	"shelter_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler in the application.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	AnimalHandler   *AnimalHandler
	AdoptionHandler *AdoptionHandler
	ImageHandler    *ImageHandler
}

func NewAppHandlers(sc *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())
	return &AppHandlers{
		AuthHandler:     NewAuthHandler(base, sc.AuthService),
		AnimalHandler:   NewAnimalHandler(base, sc.AnimalService),
		AdoptionHandler: NewAdoptionHandler(base, sc.AdoptionService),
		ImageHandler:    NewImageHandler(base, sc.ImageService),
	}
}
