package handlers

import (
	"fmt"
	"strings"

	"rentride/internal/utils"
	"rentride/pkg/storage"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	storage storage.StorageProvider
}

func NewMediaHandler(storageProvider storage.StorageProvider) *MediaHandler {
	return &MediaHandler{
		storage: storageProvider,
	}
}

// UploadImage stores an image and returns its public URL
func (h *MediaHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "Missing file")
		return
	}
	defer file.Close()

	if header.Size > utils.MaxImageSize {
		utils.BadRequestResponse(c, fmt.Sprintf("Image exceeds maximum size of %d bytes", utils.MaxImageSize))
		return
	}

	if !hasAllowedExtension(header.Filename, utils.AllowedImageTypes) {
		utils.BadRequestResponse(c, "Unsupported image type")
		return
	}

	key := utils.GenerateFileKey("images/"+userID.Hex(), header.Filename)

	response, err := h.storage.Upload(c.Request.Context(), &storage.UploadRequest{
		Key:         key,
		Reader:      file,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Image uploaded", gin.H{
		"key": response.Key,
		"url": response.URL,
	})
}

// UploadAudio stores a voice message and returns its public URL
func (h *MediaHandler) UploadAudio(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "Missing file")
		return
	}
	defer file.Close()

	if header.Size > utils.MaxAudioSize {
		utils.BadRequestResponse(c, fmt.Sprintf("Audio exceeds maximum size of %d bytes", utils.MaxAudioSize))
		return
	}

	if !hasAllowedExtension(header.Filename, utils.AllowedAudioTypes) {
		utils.BadRequestResponse(c, "Unsupported audio type")
		return
	}

	key := utils.GenerateFileKey("audio/"+userID.Hex(), header.Filename)

	response, err := h.storage.Upload(c.Request.Context(), &storage.UploadRequest{
		Key:         key,
		Reader:      file,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Audio uploaded", gin.H{
		"key": response.Key,
		"url": response.URL,
	})
}

// DeleteMedia removes an uploaded object owned by the caller
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "key is required")
		return
	}

	// Keys are namespaced per user at upload time.
	if !strings.Contains(key, "/"+userID.Hex()+"/") {
		utils.ForbiddenResponse(c)
		return
	}

	if err := h.storage.Delete(c.Request.Context(), key); err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Media deleted", nil)
}

func hasAllowedExtension(filename string, allowed []string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	for _, candidate := range allowed {
		if ext == candidate {
			return true
		}
	}
	return false
}
