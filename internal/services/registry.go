package services

import (
	"gorm.io/gorm"

	"shelter_backend/internal/email"
	"shelter_backend/internal/repositories"
	"shelter_backend/internal/storage"
)

// ServiceContainer bundles the application services for wiring.
type ServiceContainer struct {
	AuthService     AuthService
	AnimalService   AnimalService
	AdoptionService AdoptionService
	ImageService    ImageService
}

func NewServiceContainer(db *gorm.DB, store storage.Storage, mailer email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	animalRepo := repositories.NewAnimalRepository(db)
	adoptionRepo := repositories.NewAdoptionRepository(db)
	imageRepo := repositories.NewImageRepository(db)

	return &ServiceContainer{
		AuthService:     NewAuthService(userRepo),
		AnimalService:   NewAnimalService(animalRepo, store),
		AdoptionService: NewAdoptionService(adoptionRepo, animalRepo, userRepo, mailer),
		ImageService:    NewImageService(imageRepo, animalRepo, store),
	}
}
