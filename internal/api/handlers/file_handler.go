package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/linkstash/linkstash-backend/internal/api/response"
	"github.com/linkstash/linkstash-backend/internal/models"
	"github.com/linkstash/linkstash-backend/internal/repository"
	"github.com/linkstash/linkstash-backend/internal/storage"
	"github.com/linkstash/linkstash-backend/internal/validator"
)

// FileHandler handles file-related HTTP requests
type FileHandler struct {
	fileRepo      repository.FileRepository
	linkRepo      repository.LinkRepository
	objectStorage storage.ObjectStorage
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(
	fileRepo repository.FileRepository,
	linkRepo repository.LinkRepository,
	objectStorage storage.ObjectStorage,
) *FileHandler {
	return &FileHandler{
		fileRepo:      fileRepo,
		linkRepo:      linkRepo,
		objectStorage: objectStorage,
	}
}

// CreateFileRequest represents the request body for recording an uploaded file
type CreateFileRequest struct {
	LinkID     uint   `json:"link_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	URL        string `json:"url" validate:"required"`
	Type       string `json:"type" validate:"required"`
	StorageKey string `json:"storage_key"`
	SizeBytes  int64  `json:"size_bytes"`
}

// UploadObjectResponse carries the storage location of an uploaded object
type UploadObjectResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// List handles GET /api/links/:id/files
func (h *FileHandler) List(c echo.Context) error {
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid link ID")
	}

	// Verify link exists
	_, err = h.linkRepo.GetByID(c.Request().Context(), uint(linkID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "link not found")
		}
		return response.InternalError(c, "failed to get link")
	}

	files, err := h.fileRepo.ListByLink(c.Request().Context(), uint(linkID))
	if err != nil {
		return response.InternalError(c, "failed to list files")
	}

	return response.Success(c, files)
}

// Count handles GET /api/links/:id/files/count
func (h *FileHandler) Count(c echo.Context) error {
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid link ID")
	}

	count, err := h.fileRepo.CountByLink(c.Request().Context(), uint(linkID))
	if err != nil {
		return response.InternalError(c, "failed to count files")
	}

	return response.Success(c, response.CountResponse{Count: count})
}

// UploadObject handles POST /api/links/:id/objects
//
// Stores the raw multipart payload under a fresh key scoped to the link
// and returns the key plus its public URL. The metadata row is recorded
// separately via POST /api/files.
func (h *FileHandler) UploadObject(c echo.Context) error {
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid link ID")
	}

	// Verify link exists
	_, err = h.linkRepo.GetByID(c.Request().Context(), uint(linkID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "link not found")
		}
		return response.InternalError(c, "failed to get link")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "file is required")
	}

	filename := validator.SanitizeFilename(fileHeader.Filename)
	if err := storage.ValidateFile(filename, fileHeader.Size); err != nil {
		return response.BadRequest(c, err.Error())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.InternalError(c, "failed to read upload")
	}
	defer src.Close()

	key := storage.ObjectKey(uint(linkID), filename)
	if err := h.objectStorage.Save(c.Request().Context(), key, src); err != nil {
		return response.InternalError(c, "failed to store object")
	}

	return response.Created(c, UploadObjectResponse{
		Key: key,
		URL: h.objectStorage.PublicURL(key),
	})
}

// CreateRecord handles POST /api/files
func (h *FileHandler) CreateRecord(c echo.Context) error {
	var req CreateFileRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if req.LinkID == 0 {
		return response.BadRequest(c, "link_id is required")
	}
	if req.Name == "" {
		return response.BadRequest(c, "name is required")
	}
	if req.URL == "" {
		return response.BadRequest(c, "url is required")
	}
	if req.Type != models.FileTypePDF && req.Type != models.FileTypeImage {
		return response.BadRequest(c, "type must be pdf or image")
	}

	file := &models.File{
		LinkID:     req.LinkID,
		Name:       req.Name,
		URL:        req.URL,
		Type:       req.Type,
		StorageKey: req.StorageKey,
		SizeBytes:  req.SizeBytes,
	}

	if err := h.fileRepo.Create(c.Request().Context(), file); err != nil {
		if errors.Is(err, repository.ErrInvalidInput) {
			return response.BadRequest(c, "link does not exist")
		}
		return response.InternalError(c, "failed to create file record")
	}

	return response.Created(c, file)
}

// Delete handles DELETE /api/files/:id
//
// Removes the metadata row only. The stored object is left in place.
func (h *FileHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid file ID")
	}

	if err := h.fileRepo.Delete(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "file not found")
		}
		return response.InternalError(c, "failed to delete file")
	}

	return response.NoContent(c)
}

// Download handles GET /api/files/:id/download
func (h *FileHandler) Download(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid file ID")
	}

	file, err := h.fileRepo.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "file not found")
		}
		return response.InternalError(c, "failed to get file")
	}

	// Records imported with an external URL have no stored object
	if file.StorageKey == "" {
		return c.Redirect(http.StatusFound, file.URL)
	}

	obj, err := h.objectStorage.Get(c.Request().Context(), file.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return response.NotFound(c, "object not found")
		}
		return response.InternalError(c, "failed to retrieve object")
	}
	defer obj.Close()

	contentType := mime.TypeByExtension(filepath.Ext(file.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Response().Header().Set("Content-Type", contentType)
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	if file.SizeBytes > 0 {
		c.Response().Header().Set("Content-Length", strconv.FormatInt(file.SizeBytes, 10))
	}

	if _, err := io.Copy(c.Response().Writer, obj); err != nil {
		return response.InternalError(c, "failed to send object")
	}

	return nil
}
