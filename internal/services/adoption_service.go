package services

import (
	"context"

	"shelter_backend/internal/email"
	"shelter_backend/internal/logger"
	"shelter_backend/internal/models"
	"shelter_backend/internal/repositories"
	"shelter_backend/pkg/apperrors"
)

type SubmitAdoptionRequest struct {
	ContactInfo string `json:"contact_info" validate:"required,max=200"`
}

type AdoptionService interface {
	Submit(ctx context.Context, userID, animalID uint, contactInfo string) (*models.Adoption, error)
	Accept(ctx context.Context, adoptionID uint) (*models.Adoption, error)
	Reject(ctx context.Context, adoptionID uint) (*models.Adoption, error)
	Recompute(ctx context.Context, animalID uint) (models.AnimalStatus, error)
	ListForAnimal(ctx context.Context, animalID uint) ([]models.Adoption, error)
	FindUserAdoption(ctx context.Context, userID, animalID uint) (*models.Adoption, error)
}

type adoptionService struct {
	adoptionRepo repositories.AdoptionRepository
	animalRepo   repositories.AnimalRepository
	userRepo     repositories.UserRepository
	mailer       email.Provider
}

func NewAdoptionService(
	adoptionRepo repositories.AdoptionRepository,
	animalRepo repositories.AnimalRepository,
	userRepo repositories.UserRepository,
	mailer email.Provider,
) AdoptionService {
	return &adoptionService{
		adoptionRepo: adoptionRepo,
		animalRepo:   animalRepo,
		userRepo:     userRepo,
		mailer:       mailer,
	}
}

func (s *adoptionService) Submit(ctx context.Context, userID, animalID uint, contactInfo string) (*models.Adoption, error) {
	if contactInfo == "" {
		return nil, apperrors.ValidationError(map[string]string{"contact_info": "this field is required"})
	}

	adoption, err := s.adoptionRepo.Submit(ctx, userID, animalID, contactInfo)
	if err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrAnimalNotFound):
			return nil, apperrors.NotFound("animal", "Animal not found")
		case apperrors.Is(err, repositories.ErrAnimalNotAdoptable):
			return nil, apperrors.Conflict("adoption", "This animal is no longer open for adoption")
		case apperrors.Is(err, repositories.ErrDuplicateAdoption):
			return nil, apperrors.Duplicate("adoption", "You have already applied for this animal")
		default:
			return nil, apperrors.DatabaseError(err)
		}
	}

	logger.Info("adoption submitted",
		"adoption_id", adoption.ID, "animal_id", animalID, "user_id", userID)
	return adoption, nil
}

func (s *adoptionService) Accept(ctx context.Context, adoptionID uint) (*models.Adoption, error) {
	adoption, err := s.adoptionRepo.Accept(ctx, adoptionID)
	if err != nil {
		return nil, mapDecisionError(err)
	}

	logger.Info("adoption accepted",
		"adoption_id", adoption.ID, "animal_id", adoption.AnimalID)
	s.notify(ctx, adoption, email.TemplateAdoptionAccepted, "Your adoption request was accepted")
	return adoption, nil
}

func (s *adoptionService) Reject(ctx context.Context, adoptionID uint) (*models.Adoption, error) {
	adoption, err := s.adoptionRepo.Reject(ctx, adoptionID)
	if err != nil {
		return nil, mapDecisionError(err)
	}

	logger.Info("adoption rejected",
		"adoption_id", adoption.ID, "animal_id", adoption.AnimalID)
	s.notify(ctx, adoption, email.TemplateAdoptionRejected, "Your adoption request was declined")
	return adoption, nil
}

func (s *adoptionService) Recompute(ctx context.Context, animalID uint) (models.AnimalStatus, error) {
	status, err := s.adoptionRepo.RecomputeAnimalStatus(ctx, animalID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAnimalNotFound) {
			return "", apperrors.NotFound("animal", "Animal not found")
		}
		return "", apperrors.DatabaseError(err)
	}
	return status, nil
}

func (s *adoptionService) ListForAnimal(ctx context.Context, animalID uint) ([]models.Adoption, error) {
	adoptions, err := s.adoptionRepo.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return adoptions, nil
}

func (s *adoptionService) FindUserAdoption(ctx context.Context, userID, animalID uint) (*models.Adoption, error) {
	adoption, err := s.adoptionRepo.FindByUserAndAnimal(ctx, userID, animalID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdoptionNotFound) {
			return nil, apperrors.NotFound("adoption", "Adoption request not found")
		}
		return nil, apperrors.DatabaseError(err)
	}
	return adoption, nil
}

func mapDecisionError(err error) error {
	switch {
	case apperrors.Is(err, repositories.ErrAdoptionNotFound):
		return apperrors.NotFound("adoption", "Adoption request not found")
	case apperrors.Is(err, repositories.ErrAnimalNotFound):
		return apperrors.NotFound("animal", "Animal not found")
	case apperrors.Is(err, repositories.ErrAdoptionDecided):
		return apperrors.Conflict("adoption", "Adoption request is already decided")
	default:
		return apperrors.DatabaseError(err)
	}
}

// notify emails the applicant about the decision. Delivery is best
// effort and never affects the committed transition.
func (s *adoptionService) notify(ctx context.Context, adoption *models.Adoption, template, subject string) {
	user, err := s.userRepo.FindByID(ctx, adoption.UserID)
	if err != nil || user.Email == "" {
		return
	}
	animal, err := s.animalRepo.FindByID(ctx, adoption.AnimalID)
	if err != nil {
		return
	}

	msg := &email.Email{
		To:      []string{user.Email},
		Subject: subject,
	}
	data := email.TemplateData{
		"UserName":    user.FullName(),
		"AnimalName":  animal.Name,
		"ContactInfo": adoption.ContactInfo,
	}
	if err := s.mailer.SendWithTemplate(template, data, msg); err != nil {
		logger.Warn("failed to send adoption notification",
			"adoption_id", adoption.ID, "error", err)
	}
}
