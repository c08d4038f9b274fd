package services

import (
	"context"

	"shelter_backend/internal/logger"
	"shelter_backend/internal/markdown"
	"shelter_backend/internal/models"
	"shelter_backend/internal/repositories"
	"shelter_backend/internal/storage"
	"shelter_backend/pkg/apperrors"
)

type CreateAnimalRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"required"`
	AgeMonths   int    `json:"age_months" validate:"gte=0"`
	Breed       string `json:"breed" validate:"required,max=100"`
	Gender      string `json:"gender" validate:"required,is-gender"`
}

type UpdateAnimalRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description"`
	AgeMonths   *int    `json:"age_months" validate:"omitempty,min=0"`
	Breed       *string `json:"breed" validate:"omitempty,max=100"`
	Gender      *string `json:"gender" validate:"omitempty,is-gender"`
	Status      *string `json:"status" validate:"omitempty,is-animal-status"`
}

type AnimalService interface {
	Create(ctx context.Context, req *CreateAnimalRequest) (*models.Animal, error)
	Get(ctx context.Context, id uint) (*models.Animal, error)
	Update(ctx context.Context, id uint, req *UpdateAnimalRequest) (*models.Animal, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, pageSize int) (*models.Page, error)
}

type animalService struct {
	animalRepo repositories.AnimalRepository
	store      storage.Storage
}

func NewAnimalService(animalRepo repositories.AnimalRepository, store storage.Storage) AnimalService {
	return &animalService{animalRepo: animalRepo, store: store}
}

func (s *animalService) Create(ctx context.Context, req *CreateAnimalRequest) (*models.Animal, error) {
	description, err := markdown.Render(req.Description)
	if err != nil {
		return nil, apperrors.ValidationError(map[string]string{"description": err.Error()})
	}

	animal := &models.Animal{
		Name:        req.Name,
		Description: description,
		AgeMonths:   req.AgeMonths,
		Breed:       req.Breed,
		Gender:      req.Gender,
		Status:      models.AnimalAvailable,
	}

	if err := s.animalRepo.Create(ctx, animal); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("animal created", "animal_id", animal.ID, "name", animal.Name)
	return animal, nil
}

func (s *animalService) Get(ctx context.Context, id uint) (*models.Animal, error) {
	animal, err := s.animalRepo.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAnimalNotFound) {
			return nil, apperrors.NotFound("animal", "Animal not found")
		}
		return nil, apperrors.DatabaseError(err)
	}
	return animal, nil
}

func (s *animalService) Update(ctx context.Context, id uint, req *UpdateAnimalRequest) (*models.Animal, error) {
	fields := repositories.AnimalUpdate{
		Name:      req.Name,
		AgeMonths: req.AgeMonths,
		Breed:     req.Breed,
		Gender:    req.Gender,
	}

	if req.Description != nil {
		description, err := markdown.Render(*req.Description)
		if err != nil {
			return nil, apperrors.ValidationError(map[string]string{"description": err.Error()})
		}
		fields.Description = &description
	}
	if req.Status != nil {
		status := models.AnimalStatus(*req.Status)
		fields.Status = &status
	}

	animal, err := s.animalRepo.Update(ctx, id, fields)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAnimalNotFound) {
			return nil, apperrors.NotFound("animal", "Animal not found")
		}
		return nil, apperrors.DatabaseError(err)
	}
	return animal, nil
}

// Delete removes the animal with its adoption and image rows, then
// cleans up the backing files. File cleanup is best-effort: a missing or
// undeletable file is logged and does not undo the deletion.
func (s *animalService) Delete(ctx context.Context, id uint) error {
	images, err := s.animalRepo.Delete(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAnimalNotFound) {
			return apperrors.NotFound("animal", "Animal not found")
		}
		return apperrors.DatabaseError(err)
	}

	for _, img := range images {
		if err := s.store.Delete(ctx, img.StorageFilename()); err != nil {
			logger.Warn("failed to delete image file",
				"image_id", img.ID, "file", img.StorageFilename(), "error", err)
		}
	}

	logger.Info("animal deleted", "animal_id", id, "images_removed", len(images))
	return nil
}

func (s *animalService) List(ctx context.Context, page, pageSize int) (*models.Page, error) {
	result, err := s.animalRepo.ListPaged(ctx, page, pageSize)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return result, nil
}
