package services

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"

	"github.com/google/uuid"

	"shelter_backend/internal/logger"
	"shelter_backend/internal/models"
	"shelter_backend/internal/repositories"
	"shelter_backend/internal/storage"
	"shelter_backend/pkg/apperrors"
)

type ImageService interface {
	// Ingest stores uploaded bytes content-deduplicated by MD5 hash.
	// When an image with the same hash already exists anywhere in the
	// store, the existing record is returned unchanged.
	Ingest(ctx context.Context, data []byte, fileName, mimeType string, animalID uint) (*models.Image, error)

	// Open returns the image record and a reader over its bytes.
	Open(ctx context.Context, id string) (*models.Image, io.ReadCloser, error)
}

type imageService struct {
	imageRepo  repositories.ImageRepository
	animalRepo repositories.AnimalRepository
	store      storage.Storage
}

func NewImageService(imageRepo repositories.ImageRepository, animalRepo repositories.AnimalRepository, store storage.Storage) ImageService {
	return &imageService{imageRepo: imageRepo, animalRepo: animalRepo, store: store}
}

func (s *imageService) Ingest(ctx context.Context, data []byte, fileName, mimeType string, animalID uint) (*models.Image, error) {
	if animalID == 0 {
		return nil, apperrors.ValidationError(map[string]string{"animal_id": "this field is required"})
	}
	if _, err := s.animalRepo.FindByID(ctx, animalID); err != nil {
		if apperrors.Is(err, repositories.ErrAnimalNotFound) {
			return nil, apperrors.NotFound("animal", "Animal not found")
		}
		return nil, apperrors.DatabaseError(err)
	}

	sum := md5.Sum(data)
	hash := hex.EncodeToString(sum[:])

	// Known content: reuse the existing record. Note that it keeps its
	// original owner; the upload is not re-linked to animalID.
	existing, err := s.imageRepo.FindByHash(ctx, hash)
	if err == nil {
		return existing, nil
	}
	if !apperrors.Is(err, repositories.ErrImageNotFound) {
		return nil, apperrors.DatabaseError(err)
	}

	image := &models.Image{
		ID:       uuid.NewString(),
		FileName: fileName,
		MimeType: mimeType,
		MD5Hash:  hash,
		AnimalID: animalID,
	}

	// The file must be on disk before the row exists; a row must never
	// reference a missing file.
	if err := s.store.Save(ctx, image.StorageFilename(), bytes.NewReader(data), mimeType); err != nil {
		return nil, apperrors.StorageError(err, "Failed to store uploaded image")
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		// Losing the insert race means someone else just stored the
		// same content; drop our file and hand back theirs.
		if cleanupErr := s.store.Delete(ctx, image.StorageFilename()); cleanupErr != nil {
			logger.Warn("failed to remove orphaned image file",
				"file", image.StorageFilename(), "error", cleanupErr)
		}
		if apperrors.Is(err, repositories.ErrDuplicateHash) {
			winner, lookupErr := s.imageRepo.FindByHash(ctx, hash)
			if lookupErr != nil {
				return nil, apperrors.DatabaseError(lookupErr)
			}
			return winner, nil
		}
		return nil, apperrors.DatabaseError(err)
	}

	logger.Info("image ingested",
		"image_id", image.ID, "animal_id", animalID, "hash", hash)
	return image, nil
}

func (s *imageService) Open(ctx context.Context, id string) (*models.Image, io.ReadCloser, error) {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrImageNotFound) {
			return nil, nil, apperrors.NotFound("image", "Image not found")
		}
		return nil, nil, apperrors.DatabaseError(err)
	}

	reader, err := s.store.Get(ctx, image.StorageFilename())
	if err != nil {
		return nil, nil, apperrors.StorageError(err, "Failed to read image file")
	}
	return image, reader, nil
}
