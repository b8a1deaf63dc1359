package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/application"
	"github.com/stayhub/stayhub/pkg/response"
)

type AmenityHandler struct {
	svc *application.Facade
	log *logrus.Logger
}

func NewAmenityHandler(svc *application.Facade, log *logrus.Logger) *AmenityHandler {
	return &AmenityHandler{svc: svc, log: log}
}

type amenityRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// Create adds an amenity to the catalog. Admin only; routing enforces it.
func (h *AmenityHandler) Create(c *gin.Context) {
	var req amenityRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	a, err := h.svc.CreateAmenity(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "amenity created")
}

func (h *AmenityHandler) List(c *gin.Context) {
	amenities, err := h.svc.ListAmenities(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, amenities, "amenities retrieved")
}

func (h *AmenityHandler) Get(c *gin.Context) {
	a, err := h.svc.GetAmenity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, a, "amenity retrieved")
}

type updateAmenityRequest struct {
	Name *string `json:"name" binding:"omitempty,max=50"`
}

func (h *AmenityHandler) Update(c *gin.Context) {
	var req updateAmenityRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	a, err := h.svc.UpdateAmenity(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, a, "amenity updated")
}
