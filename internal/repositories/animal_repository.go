package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shelter_backend/internal/models"
)

var ErrAnimalNotFound = errors.New("animal not found")

// statusRankExpr orders listings by availability before recency.
const statusRankExpr = "CASE animals.status " +
	"WHEN 'available' THEN 0 " +
	"WHEN 'adoption' THEN 1 " +
	"WHEN 'adopted' THEN 2 " +
	"ELSE 3 END"

// AnimalUpdate describes a partial update; nil fields are left untouched.
type AnimalUpdate struct {
	Name        *string
	Description *string
	AgeMonths   *int
	Breed       *string
	Gender      *string
	Status      *models.AnimalStatus
}

type AnimalRepository interface {
	Create(ctx context.Context, animal *models.Animal) error
	FindByID(ctx context.Context, id uint) (*models.Animal, error)
	Update(ctx context.Context, id uint, fields AnimalUpdate) (*models.Animal, error)
	// Delete removes the animal with its adoption and image rows in one
	// transaction and returns the deleted image records so the caller
	// can clean up backing files.
	Delete(ctx context.Context, id uint) ([]models.Image, error)
	ListPaged(ctx context.Context, page, pageSize int) (*models.Page, error)
}

type AnimalRepositoryImpl struct {
	db *gorm.DB
}

func NewAnimalRepository(db *gorm.DB) AnimalRepository {
	return &AnimalRepositoryImpl{db: db}
}

func (r *AnimalRepositoryImpl) Create(ctx context.Context, animal *models.Animal) error {
	if animal.Status == "" {
		animal.Status = models.AnimalAvailable
	}
	return r.db.WithContext(ctx).Create(animal).Error
}

func (r *AnimalRepositoryImpl) FindByID(ctx context.Context, id uint) (*models.Animal, error) {
	var animal models.Animal
	err := r.db.WithContext(ctx).Preload("Images").First(&animal, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnimalNotFound
		}
		return nil, err
	}
	return &animal, nil
}

func (r *AnimalRepositoryImpl) Update(ctx context.Context, id uint, fields AnimalUpdate) (*models.Animal, error) {
	updates := map[string]interface{}{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.AgeMonths != nil {
		updates["age_months"] = *fields.AgeMonths
	}
	if fields.Breed != nil {
		updates["breed"] = *fields.Breed
	}
	if fields.Gender != nil {
		updates["gender"] = *fields.Gender
	}
	if fields.Status != nil {
		updates["status"] = *fields.Status
	}

	var animal models.Animal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&animal, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAnimalNotFound
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&animal).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &animal, nil
}

func (r *AnimalRepositoryImpl) Delete(ctx context.Context, id uint) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var animal models.Animal
		if err := tx.First(&animal, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAnimalNotFound
			}
			return err
		}

		if err := tx.Where("animal_id = ?", id).Find(&images).Error; err != nil {
			return err
		}

		// Children first; no ORM-level cascade is relied upon.
		if err := tx.Where("animal_id = ?", id).Delete(&models.Adoption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("animal_id = ?", id).Delete(&models.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Animal{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *AnimalRepositoryImpl) ListPaged(ctx context.Context, page, pageSize int) (*models.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Animal{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []models.AnimalListItem
	err := r.db.WithContext(ctx).
		Table("animals").
		Select("animals.*, COUNT(adoptions.id) AS adoption_count").
		Joins("LEFT JOIN adoptions ON adoptions.animal_id = animals.id").
		Group("animals.id").
		Order(statusRankExpr).
		Order("animals.created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &models.Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
