package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shelter_backend/internal/auth"
	"shelter_backend/internal/config"
	"shelter_backend/internal/middleware"
	"shelter_backend/internal/services"
	"shelter_backend/pkg/apperrors"
)

type AnimalHandler struct {
	*BaseHandler
	animalService services.AnimalService
}

func NewAnimalHandler(base *BaseHandler, animalService services.AnimalService) *AnimalHandler {
	return &AnimalHandler{BaseHandler: base, animalService: animalService}
}

// List is public: visitors browse the catalogue without an account.
func (h *AnimalHandler) List(c *gin.Context) {
	page := ParseQueryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := ParseQueryInt(c, "page_size", config.GetConfig().Animals.PageSize)
	if pageSize < 1 || pageSize > 100 {
		pageSize = config.GetConfig().Animals.PageSize
	}

	result, err := h.animalService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnimalHandler) Get(c *gin.Context) {
	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	animal, err := h.animalService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"animal": animal})
}

func (h *AnimalHandler) Create(c *gin.Context) {
	if !auth.Can(middleware.GetRoleID(c), auth.ActionCreateAnimal) {
		h.HandleServiceError(c, apperrors.ErrForbidden)
		return
	}

	var req services.CreateAnimalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	animal, err := h.animalService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"animal": animal})
}

func (h *AnimalHandler) Update(c *gin.Context) {
	if !auth.Can(middleware.GetRoleID(c), auth.ActionEditAnimal) {
		h.HandleServiceError(c, apperrors.ErrForbidden)
		return
	}

	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAnimalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	animal, err := h.animalService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"animal": animal})
}

func (h *AnimalHandler) Delete(c *gin.Context) {
	if !auth.Can(middleware.GetRoleID(c), auth.ActionDeleteAnimal) {
		h.HandleServiceError(c, apperrors.ErrForbidden)
		return
	}

	id, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	if err := h.animalService.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Animal deleted"})
}

func (h *AnimalHandler) RegisterRoutes(r *gin.RouterGroup) {
	animals := r.Group("/animals")
	{
		animals.GET("", h.List)
		animals.GET("/:id", h.Get)

		protected := animals.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("", h.Create)
			protected.PUT("/:id", h.Update)
			protected.DELETE("/:id", h.Delete)
		}
	}
}
