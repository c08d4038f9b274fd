package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shelter_backend/internal/models"
)

var (
	ErrImageNotFound = errors.New("image not found")
	// ErrDuplicateHash surfaces the unique-index backstop when two
	// concurrent uploads of identical content race past the existing-
	// hash check.
	ErrDuplicateHash = errors.New("image with this hash already exists")
)

type ImageRepository interface {
	FindByID(ctx context.Context, id string) (*models.Image, error)
	FindByHash(ctx context.Context, md5Hash string) (*models.Image, error)
	Create(ctx context.Context, image *models.Image) error
}

type ImageRepositoryImpl struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepositoryImpl) FindByHash(ctx context.Context, md5Hash string) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).First(&image, "md5_hash = ?", md5Hash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.Image) error {
	err := r.db.WithContext(ctx).Create(image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateHash
		}
		return err
	}
	return nil
}
