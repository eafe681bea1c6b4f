package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/linkstash/linkstash-backend/internal/api/response"
	"github.com/linkstash/linkstash-backend/internal/models"
	"github.com/linkstash/linkstash-backend/internal/preview"
	"github.com/linkstash/linkstash-backend/internal/repository"
	"github.com/linkstash/linkstash-backend/internal/validator"
)

// LinkHandler handles link-related HTTP requests
type LinkHandler struct {
	linkRepo repository.LinkRepository
	preview  *preview.Service
}

// NewLinkHandler creates a new LinkHandler
func NewLinkHandler(linkRepo repository.LinkRepository, previewSvc *preview.Service) *LinkHandler {
	return &LinkHandler{
		linkRepo: linkRepo,
		preview:  previewSvc,
	}
}

// CreateLinkRequest represents the request body for creating a link
type CreateLinkRequest struct {
	Title    string `json:"title" validate:"required"`
	URL      string `json:"url" validate:"required"`
	Gradient string `json:"gradient"`
}

// UpdateLinkRequest represents the request body for updating a link.
// The gradient is assigned at creation and never changes afterwards.
type UpdateLinkRequest struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required"`
}

// List handles GET /api/links
func (h *LinkHandler) List(c echo.Context) error {
	links, err := h.linkRepo.List(c.Request().Context())
	if err != nil {
		return response.InternalError(c, "failed to list links")
	}

	return response.Success(c, links)
}

// Create handles POST /api/links
func (h *LinkHandler) Create(c echo.Context) error {
	var req CreateLinkRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validator.ValidateTitle(req.Title); err != nil {
		return response.BadRequest(c, "invalid title: "+err.Error())
	}
	if err := validator.ValidateURL(req.URL); err != nil {
		return response.BadRequest(c, "invalid url: "+err.Error())
	}

	gradient := req.Gradient
	if gradient == "" {
		gradient = models.RandomGradient()
	} else if !models.IsValidGradient(gradient) {
		return response.BadRequest(c, "unknown gradient")
	}

	link := &models.Link{
		Title:    req.Title,
		URL:      req.URL,
		Gradient: gradient,
	}

	if err := h.linkRepo.Create(c.Request().Context(), link); err != nil {
		return response.InternalError(c, "failed to create link")
	}

	return response.Created(c, link)
}

// Update handles PUT /api/links/:id
func (h *LinkHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid link ID")
	}

	var req UpdateLinkRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validator.ValidateTitle(req.Title); err != nil {
		return response.BadRequest(c, "invalid title: "+err.Error())
	}
	if err := validator.ValidateURL(req.URL); err != nil {
		return response.BadRequest(c, "invalid url: "+err.Error())
	}

	link, err := h.linkRepo.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "link not found")
		}
		return response.InternalError(c, "failed to get link")
	}

	link.Title = req.Title
	link.URL = req.URL

	if err := h.linkRepo.Update(c.Request().Context(), link); err != nil {
		return response.InternalError(c, "failed to update link")
	}

	return response.Success(c, link)
}

// Preview handles GET /api/links/:id/preview
//
// Redirects to a rendered screenshot of the saved page so clients can
// show a thumbnail without talking to the screenshot provider directly.
func (h *LinkHandler) Preview(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid link ID")
	}

	link, err := h.linkRepo.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "link not found")
		}
		return response.InternalError(c, "failed to get link")
	}

	return c.Redirect(http.StatusFound, h.preview.ScreenshotURL(link.URL))
}
