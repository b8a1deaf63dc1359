package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/application"
	"github.com/stayhub/stayhub/pkg/response"
)

type ReviewHandler struct {
	svc *application.Facade
	log *logrus.Logger
}

func NewReviewHandler(svc *application.Facade, log *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, log: log}
}

type createReviewRequest struct {
	Text    string `json:"text" binding:"required,max=1000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	PlaceID string `json:"place_id" binding:"required,uuid"`
}

// Create posts a review authored by the authenticated caller.
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	r, err := h.svc.CreateReview(c.Request.Context(), application.CreateReviewInput{
		Text:    req.Text,
		Rating:  req.Rating,
		UserID:  c.GetString("userID"),
		PlaceID: req.PlaceID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, r, "review created")
}

func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.svc.ListReviews(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, reviews, "reviews retrieved")
}

func (h *ReviewHandler) Get(c *gin.Context) {
	r, err := h.svc.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, r, "review retrieved")
}

type updateReviewRequest struct {
	Text    *string `json:"text" binding:"omitempty,max=1000"`
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	UserID  *string `json:"user_id"`
	PlaceID *string `json:"place_id"`
}

func (h *ReviewHandler) Update(c *gin.Context) {
	id := c.Param("id")
	r, err := h.svc.GetReview(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canModify(c, r.UserID) {
		response.Error(c, http.StatusForbidden, "only the author may modify this review", nil)
		return
	}
	var req updateReviewRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	updated, err := h.svc.UpdateReview(c.Request.Context(), id, application.UpdateReviewInput{
		Text:    req.Text,
		Rating:  req.Rating,
		UserID:  req.UserID,
		PlaceID: req.PlaceID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, updated, "review updated")
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	r, err := h.svc.GetReview(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !canModify(c, r.UserID) {
		response.Error(c, http.StatusForbidden, "only the author may delete this review", nil)
		return
	}
	if err := h.svc.DeleteReview(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "review deleted")
}
