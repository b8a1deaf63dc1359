package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/application"
	"github.com/stayhub/stayhub/pkg/response"
)

type PlaceHandler struct {
	svc *application.Facade
	log *logrus.Logger
}

func NewPlaceHandler(svc *application.Facade, log *logrus.Logger) *PlaceHandler {
	return &PlaceHandler{svc: svc, log: log}
}

type createPlaceRequest struct {
	Title       string   `json:"title" binding:"required,max=100"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Latitude    float64  `json:"latitude" binding:"latitude"`
	Longitude   float64  `json:"longitude" binding:"longitude"`
	OwnerID     string   `json:"owner_id" binding:"omitempty,uuid"`
	AmenityIDs  []string `json:"amenity_ids" binding:"omitempty,dive,uuid"`
}

// Create lists a place under the authenticated caller. Admins may list on
// behalf of another owner by passing owner_id.
func (h *PlaceHandler) Create(c *gin.Context) {
	var req createPlaceRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	ownerID := c.GetString("userID")
	if req.OwnerID != "" {
		if !c.GetBool("isAdmin") && req.OwnerID != ownerID {
			response.Error(c, http.StatusForbidden, "cannot create a place for another owner", nil)
			return
		}
		ownerID = req.OwnerID
	}
	p, err := h.svc.CreatePlace(c.Request.Context(), application.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     ownerID,
		AmenityIDs:  req.AmenityIDs,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "place created")
}

func (h *PlaceHandler) List(c *gin.Context) {
	places, err := h.svc.ListPlaces(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, places, "places retrieved")
}

func (h *PlaceHandler) Get(c *gin.Context) {
	p, err := h.svc.GetPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, p, "place retrieved")
}

type updatePlaceRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=100"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,longitude"`
	OwnerID     *string  `json:"owner_id"`
}

func (h *PlaceHandler) Update(c *gin.Context) {
	id := c.Param("id")
	p, err := h.svc.GetPlace(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canModify(c, p.OwnerID) {
		response.Error(c, http.StatusForbidden, "only the owner may modify this place", nil)
		return
	}
	var req updatePlaceRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	updated, err := h.svc.UpdatePlace(c.Request.Context(), id, application.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, updated, "place updated")
}

func (h *PlaceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	p, err := h.svc.GetPlace(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canModify(c, p.OwnerID) {
		response.Error(c, http.StatusForbidden, "only the owner may delete this place", nil)
		return
	}
	if err := h.svc.DeletePlace(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "place deleted")
}

// ListReviews returns the reviews of one place, oldest first.
func (h *PlaceHandler) ListReviews(c *gin.Context) {
	reviews, err := h.svc.ListReviewsForPlace(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, reviews, "reviews retrieved")
}

// AddAmenity attaches an existing amenity to the place.
func (h *PlaceHandler) AddAmenity(c *gin.Context) {
	id := c.Param("id")
	p, err := h.svc.GetPlace(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canModify(c, p.OwnerID) {
		response.Error(c, http.StatusForbidden, "only the owner may modify this place", nil)
		return
	}
	updated, err := h.svc.AddAmenityToPlace(c.Request.Context(), id, c.Param("amenity_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, updated, "amenity added")
}

func (h *PlaceHandler) RemoveAmenity(c *gin.Context) {
	id := c.Param("id")
	p, err := h.svc.GetPlace(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canModify(c, p.OwnerID) {
		response.Error(c, http.StatusForbidden, "only the owner may modify this place", nil)
		return
	}
	updated, err := h.svc.RemoveAmenityFromPlace(c.Request.Context(), id, c.Param("amenity_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, updated, "amenity removed")
}
