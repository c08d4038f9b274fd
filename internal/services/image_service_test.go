package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter_backend/internal/models"
	"shelter_backend/internal/repositories"
	"shelter_backend/pkg/apperrors"
)

type fakeImageRepo struct {
	byID   map[string]*models.Image
	byHash map[string]*models.Image
	// missNextLookup makes the next FindByHash miss, simulating a
	// concurrent upload landing between the check and the insert.
	missNextLookup bool
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{
		byID:   make(map[string]*models.Image),
		byHash: make(map[string]*models.Image),
	}
}

func (r *fakeImageRepo) FindByID(_ context.Context, id string) (*models.Image, error) {
	if img, ok := r.byID[id]; ok {
		return img, nil
	}
	return nil, repositories.ErrImageNotFound
}

func (r *fakeImageRepo) FindByHash(_ context.Context, hash string) (*models.Image, error) {
	if r.missNextLookup {
		r.missNextLookup = false
		return nil, repositories.ErrImageNotFound
	}
	if img, ok := r.byHash[hash]; ok {
		return img, nil
	}
	return nil, repositories.ErrImageNotFound
}

func (r *fakeImageRepo) Create(_ context.Context, image *models.Image) error {
	if _, ok := r.byHash[image.MD5Hash]; ok {
		return repositories.ErrDuplicateHash
	}
	r.byID[image.ID] = image
	r.byHash[image.MD5Hash] = image
	return nil
}

// anyAnimalRepo resolves every animal ID, for tests that do not care
// about the owning animal.
type anyAnimalRepo struct {
	fakeAnimalRepo
}

func (r *anyAnimalRepo) FindByID(_ context.Context, id uint) (*models.Animal, error) {
	return &models.Animal{ID: id, Status: models.AnimalAvailable}, nil
}

type fakeStorage struct {
	files   map[string][]byte
	saveErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	data, _ := io.ReadAll(reader)
	s.files[path] = data
	return nil
}

func (s *fakeStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

func (s *fakeStorage) URL(path string) string { return "/files/" + path }

func TestIngestStoresNewImage(t *testing.T) {
	repo := newFakeImageRepo()
	store := newFakeStorage()
	svc := NewImageService(repo, &anyAnimalRepo{}, store)

	img, err := svc.Ingest(context.Background(), []byte("cat bytes"), "cat.jpg", "image/jpeg", 7)
	require.NoError(t, err)
	assert.NotEmpty(t, img.ID)
	assert.Equal(t, uint(7), img.AnimalID)
	assert.Equal(t, "cat.jpg", img.FileName)

	_, ok := store.files[img.StorageFilename()]
	assert.True(t, ok, "bytes should be persisted under the storage filename")
}

func TestIngestDeduplicatesByContent(t *testing.T) {
	repo := newFakeImageRepo()
	store := newFakeStorage()
	svc := NewImageService(repo, &anyAnimalRepo{}, store)

	first, err := svc.Ingest(context.Background(), []byte("same bytes"), "a.jpg", "image/jpeg", 1)
	require.NoError(t, err)

	// Same content under a different name for a different animal.
	second, err := svc.Ingest(context.Background(), []byte("same bytes"), "b.png", "image/png", 2)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// The existing record keeps its original owner.
	assert.Equal(t, uint(1), second.AnimalID)
	assert.Len(t, repo.byID, 1)
	assert.Len(t, store.files, 1)
}

func TestIngestRequiresAnimalID(t *testing.T) {
	svc := NewImageService(newFakeImageRepo(), &anyAnimalRepo{}, newFakeStorage())

	_, err := svc.Ingest(context.Background(), []byte("x"), "x.jpg", "image/jpeg", 0)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestIngestUnknownAnimal(t *testing.T) {
	repo := newFakeImageRepo()
	store := newFakeStorage()
	svc := NewImageService(repo, &fakeAnimalRepo{}, store)

	_, err := svc.Ingest(context.Background(), []byte("x"), "x.jpg", "image/jpeg", 42)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Empty(t, repo.byID)
	assert.Empty(t, store.files, "nothing may be persisted for an unknown animal")
}

func TestIngestStorageFailureLeavesNoRow(t *testing.T) {
	repo := newFakeImageRepo()
	store := newFakeStorage()
	store.saveErr = errors.New("disk full")
	svc := NewImageService(repo, &anyAnimalRepo{}, store)

	_, err := svc.Ingest(context.Background(), []byte("x"), "x.jpg", "image/jpeg", 1)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStorageError, appErr.Code)
	assert.Empty(t, repo.byID, "no row may reference a missing file")
}

func TestIngestRaceLoserReturnsWinner(t *testing.T) {
	repo := newFakeImageRepo()
	store := newFakeStorage()
	svc := NewImageService(repo, &anyAnimalRepo{}, store)

	winner, err := svc.Ingest(context.Background(), []byte("raced"), "w.jpg", "image/jpeg", 3)
	require.NoError(t, err)

	// The loser misses the hash check, saves its file, then hits the
	// unique index on insert.
	repo.missNextLookup = true
	got, err := svc.Ingest(context.Background(), []byte("raced"), "l.jpg", "image/jpeg", 4)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
	assert.Len(t, repo.byID, 1)
	assert.Len(t, store.files, 1, "loser's file must be cleaned up")
}

func TestOpenUnknownImage(t *testing.T) {
	svc := NewImageService(newFakeImageRepo(), &anyAnimalRepo{}, newFakeStorage())

	_, _, err := svc.Open(context.Background(), "nope")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
