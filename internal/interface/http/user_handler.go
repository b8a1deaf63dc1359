package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stayhub/stayhub/internal/application"
	"github.com/stayhub/stayhub/pkg/response"
)

type UserHandler struct {
	svc *application.Facade
	log *logrus.Logger
}

func NewUserHandler(svc *application.Facade, log *logrus.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

type registerRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,pwd"`
}

// Register creates a regular account. Admin accounts are only created by
// other admins through Update or by seeding.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	u, err := h.svc.CreateUser(c.Request.Context(), application.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created")
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users retrieved")
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user retrieved")
}

// Me returns the authenticated caller's profile.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.svc.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, u, "profile retrieved")
}

type updateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Password  *string `json:"password" binding:"omitempty,pwd"`
	IsAdmin   *bool   `json:"is_admin"`
}

// Update modifies a user. Callers may edit themselves; only admins may edit
// others or toggle the admin flag.
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !canModify(c, id) {
		response.Error(c, http.StatusForbidden, "cannot modify another user", nil)
		return
	}
	var req updateUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	if req.IsAdmin != nil && !c.GetBool("isAdmin") {
		response.Error(c, http.StatusForbidden, "admin privileges required", nil)
		return
	}
	u, err := h.svc.UpdateUser(c.Request.Context(), id, application.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated")
}
