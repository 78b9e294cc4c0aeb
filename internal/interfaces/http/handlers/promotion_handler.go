package handlers

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/interfaces/http/response"
	"quickbite.backend/internal/usecases"
	"quickbite.backend/pkg/storage"
)

// PromotionHandler handles the admin promotion banner endpoints. Banners are
// submitted as multipart forms because they carry a media file.
type PromotionHandler struct {
	promotionUsecase *usecases.PromotionUsecase
	uploads          *storage.Store
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(promotionUsecase *usecases.PromotionUsecase, uploads *storage.Store) *PromotionHandler {
	return &PromotionHandler{
		promotionUsecase: promotionUsecase,
		uploads:          uploads,
	}
}

// Create stores a new banner with its media file
// POST /api/admin/promotions
func (h *PromotionHandler) Create(c *gin.Context) {
	input := entities.PromotionInput{
		Title:     c.PostForm("title"),
		Subtitle:  c.PostForm("subtitle"),
		Type:      c.PostForm("type"),
		StartDate: c.PostForm("start_date"),
		EndDate:   c.PostForm("end_date"),
	}

	file, err := c.FormFile("media")
	if err != nil {
		response.Error(c, domainerrors.Validation("Media file is required"))
		return
	}
	relative, err := h.saveMedia(c, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	input.MediaPath = relative

	promo, err := h.promotionUsecase.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, promo)
}

// List returns every banner, newest first
// GET /api/admin/promotions
func (h *PromotionHandler) List(c *gin.Context) {
	promos, err := h.promotionUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, promos)
}

// Get returns one banner
// GET /api/admin/promotions/:id
func (h *PromotionHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	promo, err := h.promotionUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, promo)
}

// Update partially updates a banner; a new media file replaces the old path
// PATCH /api/admin/promotions/:id
func (h *PromotionHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var patch entities.PromotionPatch
	if v, ok := c.GetPostForm("title"); ok {
		patch.Title = null.StringFrom(v)
	}
	if v, ok := c.GetPostForm("subtitle"); ok {
		patch.Subtitle = null.StringFrom(v)
	}
	if v, ok := c.GetPostForm("type"); ok {
		patch.Type = null.StringFrom(v)
	}
	if v, ok := c.GetPostForm("status"); ok {
		patch.Status = null.StringFrom(v)
	}
	if v, ok := c.GetPostForm("start_date"); ok {
		patch.StartDate = null.StringFrom(v)
	}
	if v, ok := c.GetPostForm("end_date"); ok {
		patch.EndDate = null.StringFrom(v)
	}

	// media is optional on update
	if file, ferr := c.FormFile("media"); ferr == nil {
		relative, serr := h.saveMedia(c, file)
		if serr != nil {
			response.Error(c, serr)
			return
		}
		patch.MediaPath = null.StringFrom(relative)
	}

	promo, err := h.promotionUsecase.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, promo)
}

// Delete removes a banner permanently
// DELETE /api/admin/promotions/:id
func (h *PromotionHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.promotionUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Promotion deleted")
}

func (h *PromotionHandler) saveMedia(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if !h.uploads.Allowed(storage.KindPromoMedia, file.Filename) {
		return "", domainerrors.Validation("Only jpg, jpeg, png, mp4 and webm files are accepted")
	}

	relative := h.uploads.RelativePath(storage.KindPromoMedia, file.Filename)
	diskPath := h.uploads.DiskPath(relative)
	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return "", domainerrors.Internal(err)
	}
	if err := c.SaveUploadedFile(file, diskPath); err != nil {
		return "", domainerrors.Internal(err)
	}
	return relative, nil
}
