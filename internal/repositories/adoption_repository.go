package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shelter_backend/internal/models"
)

var (
	ErrAdoptionNotFound = errors.New("adoption not found")
	// ErrAnimalNotAdoptable means the animal is already adopted.
	ErrAnimalNotAdoptable = errors.New("animal is not open for adoption")
	// ErrDuplicateAdoption means the user already has a request for this
	// animal, whatever its status.
	ErrDuplicateAdoption = errors.New("user already applied for this animal")
	// ErrAdoptionDecided means the target request is already in a
	// terminal status.
	ErrAdoptionDecided = errors.New("adoption request is already decided")
)

// AdoptionRepository owns the coupled Animal/Adoption state machine.
// Every mutating method runs one transaction with the animal row locked,
// so concurrent decisions on the same animal serialize, and the cached
// Animal.Status always matches the recompute rule over the final set of
// adoption rows.
type AdoptionRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Adoption, error)
	FindByUserAndAnimal(ctx context.Context, userID, animalID uint) (*models.Adoption, error)
	ListByAnimal(ctx context.Context, animalID uint) ([]models.Adoption, error)

	Submit(ctx context.Context, userID, animalID uint, contactInfo string) (*models.Adoption, error)
	Accept(ctx context.Context, adoptionID uint) (*models.Adoption, error)
	Reject(ctx context.Context, adoptionID uint) (*models.Adoption, error)
	RecomputeAnimalStatus(ctx context.Context, animalID uint) (models.AnimalStatus, error)
}

type AdoptionRepositoryImpl struct {
	db *gorm.DB
}

func NewAdoptionRepository(db *gorm.DB) AdoptionRepository {
	return &AdoptionRepositoryImpl{db: db}
}

func (r *AdoptionRepositoryImpl) FindByID(ctx context.Context, id uint) (*models.Adoption, error) {
	var adoption models.Adoption
	err := r.db.WithContext(ctx).Preload("User").First(&adoption, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdoptionNotFound
		}
		return nil, err
	}
	return &adoption, nil
}

func (r *AdoptionRepositoryImpl) FindByUserAndAnimal(ctx context.Context, userID, animalID uint) (*models.Adoption, error) {
	var adoption models.Adoption
	err := r.db.WithContext(ctx).
		First(&adoption, "user_id = ? AND animal_id = ?", userID, animalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdoptionNotFound
		}
		return nil, err
	}
	return &adoption, nil
}

func (r *AdoptionRepositoryImpl) ListByAnimal(ctx context.Context, animalID uint) ([]models.Adoption, error) {
	var adoptions []models.Adoption
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("animal_id = ?", animalID).
		Order("application_date DESC").
		Find(&adoptions).Error
	return adoptions, err
}

// Submit creates a pending request and moves the animal into the
// adoption status. The animal row is locked for the duration, so the
// availability check and the duplicate check cannot race a concurrent
// accept on the same animal.
func (r *AdoptionRepositoryImpl) Submit(ctx context.Context, userID, animalID uint, contactInfo string) (*models.Adoption, error) {
	adoption := &models.Adoption{
		AnimalID:        animalID,
		UserID:          userID,
		ContactInfo:     contactInfo,
		Status:          models.AdoptionPending,
		ApplicationDate: time.Now(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		animal, err := lockAnimal(tx, animalID)
		if err != nil {
			return err
		}
		if animal.Status != models.AnimalAvailable && animal.Status != models.AnimalAdoption {
			return ErrAnimalNotAdoptable
		}

		var count int64
		if err := tx.Model(&models.Adoption{}).
			Where("user_id = ? AND animal_id = ?", userID, animalID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateAdoption
		}

		if err := tx.Create(adoption).Error; err != nil {
			return err
		}

		if animal.Status != models.AnimalAdoption {
			if err := setAnimalStatus(tx, animalID, models.AnimalAdoption); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adoption, nil
}

// Accept marks the request accepted, moves every other pending request
// for the same animal to rejected_adopted, and sets the animal to
// adopted — all in one transaction.
func (r *AdoptionRepositoryImpl) Accept(ctx context.Context, adoptionID uint) (*models.Adoption, error) {
	var adoption models.Adoption
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&adoption, adoptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdoptionNotFound
			}
			return err
		}

		if _, err := lockAnimal(tx, adoption.AnimalID); err != nil {
			return err
		}

		// The pre-lock copy may predate a decision committed while we
		// waited for the animal lock. The guard must run on the row as
		// it is under the lock.
		if err := reloadAdoption(tx, &adoption); err != nil {
			return err
		}
		if adoption.Status.Terminal() {
			return ErrAdoptionDecided
		}

		if err := tx.Model(&adoption).
			Update("status", models.AdoptionAccepted).Error; err != nil {
			return err
		}

		// Siblings that lost the race are marked distinctly from
		// explicit staff rejections.
		if err := tx.Model(&models.Adoption{}).
			Where("animal_id = ? AND id <> ? AND status = ?",
				adoption.AnimalID, adoption.ID, models.AdoptionPending).
			Update("status", models.AdoptionRejectedAdopted).Error; err != nil {
			return err
		}

		return setAnimalStatus(tx, adoption.AnimalID, models.AnimalAdopted)
	})
	if err != nil {
		return nil, err
	}
	return &adoption, nil
}

// Reject marks the request rejected and re-derives the animal's status
// from the remaining requests.
func (r *AdoptionRepositoryImpl) Reject(ctx context.Context, adoptionID uint) (*models.Adoption, error) {
	var adoption models.Adoption
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&adoption, adoptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdoptionNotFound
			}
			return err
		}

		if _, err := lockAnimal(tx, adoption.AnimalID); err != nil {
			return err
		}

		if err := reloadAdoption(tx, &adoption); err != nil {
			return err
		}
		if adoption.Status.Terminal() {
			return ErrAdoptionDecided
		}

		if err := tx.Model(&adoption).
			Update("status", models.AdoptionRejected).Error; err != nil {
			return err
		}

		status, err := deriveStatus(tx, adoption.AnimalID)
		if err != nil {
			return err
		}
		return setAnimalStatus(tx, adoption.AnimalID, status)
	})
	if err != nil {
		return nil, err
	}
	return &adoption, nil
}

// RecomputeAnimalStatus applies the authoritative derivation rule and
// persists the result. Accept and Reject are optimized special cases of
// this operation.
func (r *AdoptionRepositoryImpl) RecomputeAnimalStatus(ctx context.Context, animalID uint) (models.AnimalStatus, error) {
	var status models.AnimalStatus
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockAnimal(tx, animalID); err != nil {
			return err
		}
		derived, err := deriveStatus(tx, animalID)
		if err != nil {
			return err
		}
		status = derived
		return setAnimalStatus(tx, animalID, status)
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// reloadAdoption refreshes the row from the database. Called after
// lockAnimal so the terminality guard sees any decision that committed
// before the lock was granted.
func reloadAdoption(tx *gorm.DB, adoption *models.Adoption) error {
	fresh := models.Adoption{}
	if err := tx.First(&fresh, adoption.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdoptionNotFound
		}
		return err
	}
	*adoption = fresh
	return nil
}

// lockAnimal takes a row lock on the animal for the transaction.
func lockAnimal(tx *gorm.DB, animalID uint) (*models.Animal, error) {
	var animal models.Animal
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&animal, animalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnimalNotFound
		}
		return nil, err
	}
	return &animal, nil
}

func deriveStatus(tx *gorm.DB, animalID uint) (models.AnimalStatus, error) {
	var statuses []models.AdoptionStatus
	if err := tx.Model(&models.Adoption{}).
		Where("animal_id = ?", animalID).
		Pluck("status", &statuses).Error; err != nil {
		return "", err
	}
	return models.DeriveAnimalStatus(statuses), nil
}

func setAnimalStatus(tx *gorm.DB, animalID uint, status models.AnimalStatus) error {
	return tx.Model(&models.Animal{}).
		Where("id = ?", animalID).
		Update("status", status).Error
}
