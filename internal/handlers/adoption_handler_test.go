package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shelter_backend/internal/models"
	"shelter_backend/pkg/apperrors"
)

func TestSubmitAdoptionRequiresAuth(t *testing.T) {
	router := newTestRouter(t, &stubAnimalService{}, &stubAdoptionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/animals/1/adoptions",
		strings.NewReader(`{"contact_info":"+7 777 123 45 67"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitAdoptionAsRegularUser(t *testing.T) {
	router := newTestRouter(t, &stubAnimalService{}, &stubAdoptionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/animals/1/adoptions",
		strings.NewReader(`{"contact_info":"+7 777 123 45 67"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, 7, models.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"pending"`)
}

func TestSubmitAdoptionMissingContactInfo(t *testing.T) {
	router := newTestRouter(t, &stubAnimalService{}, &stubAdoptionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/animals/1/adoptions",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, 7, models.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitAdoptionConflictSurfacesAs409(t *testing.T) {
	svc := &stubAdoptionService{
		submitErr: apperrors.Conflict("adoption", "This animal is no longer open for adoption"),
	}
	router := newTestRouter(t, &stubAnimalService{}, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/animals/1/adoptions",
		strings.NewReader(`{"contact_info":"+7 777 123 45 67"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, 7, models.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestAcceptAdoptionForbiddenForRegularUser(t *testing.T) {
	router := newTestRouter(t, &stubAnimalService{}, &stubAdoptionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/adoptions/5/accept", nil)
	req.Header.Set("Authorization", bearerToken(t, 7, models.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAcceptAdoptionAllowedForModerator(t *testing.T) {
	router := newTestRouter(t, &stubAnimalService{}, &stubAdoptionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/adoptions/5/accept", nil)
	req.Header.Set("Authorization", bearerToken(t, 2, models.RoleModerator))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"accepted"`)
}

func TestRejectDecidedAdoptionSurfacesAs409(t *testing.T) {
	svc := &stubAdoptionService{
		decisionErr: apperrors.Conflict("adoption", "This application has already been decided"),
	}
	router := newTestRouter(t, &stubAnimalService{}, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/adoptions/5/reject", nil)
	req.Header.Set("Authorization", bearerToken(t, 1, models.RoleAdmin))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMyApplicationNotFoundWhenNeverApplied(t *testing.T) {
	router := newTestRouter(t, &stubAnimalService{}, &stubAdoptionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/animals/1/adoptions/my", nil)
	req.Header.Set("Authorization", bearerToken(t, 7, models.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAdoptionsForbiddenForRegularUser(t *testing.T) {
	router := newTestRouter(t, &stubAnimalService{}, &stubAdoptionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/animals/1/adoptions", nil)
	req.Header.Set("Authorization", bearerToken(t, 7, models.RoleUser))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
