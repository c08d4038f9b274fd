package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter_backend/internal/models"
	"shelter_backend/internal/repositories"
	"shelter_backend/pkg/apperrors"
)

// deletingAnimalRepo returns a fixed image set from Delete so the
// best-effort file cleanup can be observed.
type deletingAnimalRepo struct {
	fakeAnimalRepo
	images    []models.Image
	deleteErr error
}

func (r *deletingAnimalRepo) Delete(_ context.Context, _ uint) ([]models.Image, error) {
	if r.deleteErr != nil {
		return nil, r.deleteErr
	}
	return r.images, nil
}

func TestCreateRendersDescriptionMarkdown(t *testing.T) {
	repo := &fakeAnimalRepo{}
	svc := NewAnimalService(repo, newFakeStorage())

	animal, err := svc.Create(context.Background(), &CreateAnimalRequest{
		Name:        "Rex",
		Description: "A **friendly** dog",
		AgeMonths:   24,
		Breed:       "mongrel",
		Gender:      "male",
	})
	require.NoError(t, err)
	assert.Contains(t, animal.Description, "<strong>friendly</strong>")
	assert.Equal(t, models.AnimalAvailable, animal.Status)
}

func TestDeleteRemovesBackingFiles(t *testing.T) {
	store := newFakeStorage()
	store.files["img-1.jpg"] = []byte("a")
	store.files["img-2.png"] = []byte("b")
	store.files["other.jpg"] = []byte("c")

	repo := &deletingAnimalRepo{images: []models.Image{
		{ID: "img-1", FileName: "a.jpg"},
		{ID: "img-2", FileName: "b.png"},
		{ID: "img-3", FileName: "gone.jpg"}, // already missing on disk
	}}
	svc := NewAnimalService(repo, store)

	err := svc.Delete(context.Background(), 1)
	require.NoError(t, err, "a missing file must not abort the deletion")

	assert.NotContains(t, store.files, "img-1.jpg")
	assert.NotContains(t, store.files, "img-2.png")
	assert.Contains(t, store.files, "other.jpg", "unrelated files stay put")
}

func TestDeleteMissingAnimal(t *testing.T) {
	repo := &deletingAnimalRepo{deleteErr: repositories.ErrAnimalNotFound}
	svc := NewAnimalService(repo, newFakeStorage())

	err := svc.Delete(context.Background(), 99)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestGetMapsNotFound(t *testing.T) {
	svc := NewAnimalService(&fakeAnimalRepo{}, newFakeStorage())

	_, err := svc.Get(context.Background(), 404)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestUpdateMapsDatabaseError(t *testing.T) {
	repo := &erroringAnimalRepo{err: errors.New("connection reset")}
	svc := NewAnimalService(repo, newFakeStorage())

	_, err := svc.Update(context.Background(), 1, &UpdateAnimalRequest{})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeDatabaseError, appErr.Code)
}

type erroringAnimalRepo struct {
	fakeAnimalRepo
	err error
}

func (r *erroringAnimalRepo) Update(_ context.Context, _ uint, _ repositories.AnimalUpdate) (*models.Animal, error) {
	return nil, r.err
}
