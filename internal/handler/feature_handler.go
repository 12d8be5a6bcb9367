package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pathomics/histospat-backend-go/internal/models"
	"github.com/pathomics/histospat-backend-go/internal/pattern"
	"github.com/pathomics/histospat-backend-go/internal/service"
	"github.com/pathomics/histospat-backend-go/pkg/response"
)

// FeatureHandler handles HTTP requests for feature extraction
type FeatureHandler struct {
	service *service.FeatureService
}

// NewFeatureHandler creates a new feature handler
func NewFeatureHandler(service *service.FeatureService) *FeatureHandler {
	return &FeatureHandler{service: service}
}

// Extract handles POST /api/v1/features/extract
func (h *FeatureHandler) Extract(c *gin.Context) {
	var req models.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Points) == 0 {
		response.BadRequest(c, "points must not be empty")
		return
	}

	resp, err := h.service.Extract(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownFamily):
			response.BadRequest(c, err.Error())
		case errors.Is(err, pattern.ErrDegenerateRange), errors.Is(err, pattern.ErrNoPoints):
			// degenerate input, not a server fault
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, "Failed to extract features")
		}
		return
	}

	response.Success(c, resp)
}

// GetExtraction handles GET /api/v1/features/:imageID
func (h *FeatureHandler) GetExtraction(c *gin.Context) {
	imageID := c.Param("imageID")

	meta, values, err := h.service.GetExtraction(imageID)
	if err != nil {
		response.InternalError(c, "Failed to load extraction")
		return
	}
	if meta == nil {
		response.NotFound(c, "No extraction stored for image "+imageID)
		return
	}

	response.Success(c, gin.H{
		"extraction": meta,
		"features":   values,
	})
}

// GetCurve handles GET /api/v1/features/:imageID/curves/:name
func (h *FeatureHandler) GetCurve(c *gin.Context) {
	imageID := c.Param("imageID")
	name := c.Param("name")

	curve, err := h.service.GetCurve(imageID, name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownFamily) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, "Failed to load curve")
		return
	}
	if curve == nil {
		response.NotFound(c, "No curve "+name+" stored for image "+imageID)
		return
	}

	response.Success(c, curve)
}
