package handlers

import (
	"io"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"shelter_backend/internal/auth"
	"shelter_backend/internal/config"
	"shelter_backend/internal/middleware"
	"shelter_backend/internal/services"
	"shelter_backend/pkg/apperrors"
)

type ImageHandler struct {
	*BaseHandler
	imageService services.ImageService
}

func NewImageHandler(base *BaseHandler, imageService services.ImageService) *ImageHandler {
	return &ImageHandler{BaseHandler: base, imageService: imageService}
}

// Upload accepts one or more files under the "images" form field and
// attaches them to the animal. Identical content is stored once.
func (h *ImageHandler) Upload(c *gin.Context) {
	if !auth.Can(middleware.GetRoleID(c), auth.ActionEditAnimal) {
		h.HandleServiceError(c, apperrors.ErrForbidden)
		return
	}

	animalID, ok := ParseParamUint(c, "id")
	if !ok {
		return
	}

	cfg := config.GetConfig()
	if err := c.Request.ParseMultipartForm(cfg.Upload.MaxSize); err != nil {
		h.HandleServiceError(c, apperrors.ValidationError(
			map[string]string{"form": "Cannot parse multipart form"}))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.HandleServiceError(c, apperrors.ValidationError(
			map[string]string{"form": "Cannot parse multipart form"}))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		h.HandleServiceError(c, apperrors.ValidationError(
			map[string]string{"images": "At least one file is required"}))
		return
	}

	stored := make([]any, 0, len(files))
	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !slices.Contains(cfg.Upload.AllowedTypes, contentType) {
			h.HandleServiceError(c, apperrors.ValidationError(
				map[string]string{fh.Filename: "Unsupported content type " + contentType}))
			return
		}
		if fh.Size > cfg.Upload.MaxSize {
			h.HandleServiceError(c, apperrors.ValidationError(
				map[string]string{fh.Filename: "File exceeds the size limit"}))
			return
		}

		f, err := fh.Open()
		if err != nil {
			h.HandleServiceError(c, apperrors.StorageError(err, "Cannot read uploaded file"))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.HandleServiceError(c, apperrors.StorageError(err, "Cannot read uploaded file"))
			return
		}

		img, err := h.imageService.Ingest(c.Request.Context(), data, fh.Filename, contentType, animalID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		stored = append(stored, img)
	}

	c.JSON(http.StatusCreated, gin.H{"images": stored})
}

// Serve streams the stored file with its original MIME type.
func (h *ImageHandler) Serve(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		h.HandleServiceError(c, apperrors.ValidationError(
			map[string]string{"id": "Image ID is required"}))
		return
	}

	img, reader, err := h.imageService.Open(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", img.MimeType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are already out, nothing useful to send to the client.
		return
	}
}

func (h *ImageHandler) RegisterRoutes(r *gin.RouterGroup) {
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/animals/:id/images", h.Upload)
	}
}

// RegisterPublicRoutes mounts image serving outside the API group so
// stored URLs stay short.
func (h *ImageHandler) RegisterPublicRoutes(r *gin.Engine) {
	r.GET("/images/:id", h.Serve)
}
