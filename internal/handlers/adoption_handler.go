package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shelter_backend/internal/auth"
	"shelter_backend/internal/middleware"
	"shelter_backend/internal/services"
	"shelter_backend/pkg/apperrors"
)

type AdoptionHandler struct {
	*BaseHandler
	adoptionService services.AdoptionService
}

func NewAdoptionHandler(base *BaseHandler, adoptionService services.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{BaseHandler: base, adoptionService: adoptionService}
}

// Submit files an adoption application for the animal on behalf of the
// authenticated user.
func (h *AdoptionHandler) Submit(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		h.HandleServiceError(c, apperrors.ErrUnauthorized)
		return
	}

	animalID, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	var req services.SubmitAdoptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	adoption, err := h.adoptionService.Submit(c.Request.Context(), userID, animalID, req.ContactInfo)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"adoption": adoption})
}

// ListForAnimal returns the animal's applications, newest first. Staff only.
func (h *AdoptionHandler) ListForAnimal(c *gin.Context) {
	if !auth.Can(middleware.GetRoleID(c), auth.ActionProcessAdoption) {
		h.HandleServiceError(c, apperrors.ErrForbidden)
		return
	}

	animalID, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	adoptions, err := h.adoptionService.ListForAnimal(c.Request.Context(), animalID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adoptions": adoptions})
}

// MyApplication returns the caller's own application for the animal.
func (h *AdoptionHandler) MyApplication(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		h.HandleServiceError(c, apperrors.ErrUnauthorized)
		return
	}

	animalID, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	adoption, err := h.adoptionService.FindUserAdoption(c.Request.Context(), userID, animalID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adoption": adoption})
}

func (h *AdoptionHandler) Accept(c *gin.Context) {
	if !auth.Can(middleware.GetRoleID(c), auth.ActionProcessAdoption) {
		h.HandleServiceError(c, apperrors.ErrForbidden)
		return
	}

	adoptionID, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	adoption, err := h.adoptionService.Accept(c.Request.Context(), adoptionID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adoption": adoption})
}

func (h *AdoptionHandler) Reject(c *gin.Context) {
	if !auth.Can(middleware.GetRoleID(c), auth.ActionProcessAdoption) {
		h.HandleServiceError(c, apperrors.ErrForbidden)
		return
	}

	adoptionID, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	adoption, err := h.adoptionService.Reject(c.Request.Context(), adoptionID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"adoption": adoption})
}

func (h *AdoptionHandler) RegisterRoutes(r *gin.RouterGroup) {
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/animals/:id/adoptions", h.Submit)
		protected.GET("/animals/:id/adoptions", h.ListForAnimal)
		protected.GET("/animals/:id/adoptions/my", h.MyApplication)
		protected.POST("/adoptions/:id/accept", h.Accept)
		protected.POST("/adoptions/:id/reject", h.Reject)
	}
}
