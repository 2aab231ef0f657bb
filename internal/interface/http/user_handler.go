package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tourbook/tourbook-api/internal/application"
	"github.com/tourbook/tourbook-api/internal/interface/middleware"
	"github.com/tourbook/tourbook-api/pkg/response"
	"github.com/tourbook/tourbook-api/pkg/validation"
)

// UserHandler serves the authenticated account endpoints.
type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.Error(c, status, msg, nil)
}

// Me - GET /api/auth/me
func (h *UserHandler) Me(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "No token provided, authorization denied", nil)
		return
	}
	u, err := h.Svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"user": u})
}

type updateProfileRequest struct {
	FirstName   *string `form:"firstName" json:"firstName" binding:"omitempty,min=2,max=50"`
	LastName    *string `form:"lastName" json:"lastName" binding:"omitempty,min=2,max=50"`
	Phone       *string `form:"phone" json:"phone" binding:"omitempty,phone"`
	DateOfBirth *string `form:"dateOfBirth" json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateProfile - PATCH /api/auth/update-profile
// Absent fields are untouched, not nulled.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "No token provided, authorization denied", nil)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	in := application.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if req.DateOfBirth != nil {
		dob, _ := time.Parse("2006-01-02", *req.DateOfBirth)
		in.DateOfBirth = &dob
	}

	img, f, err := imageFromForm(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if f != nil {
		defer func() { _ = f.Close() }()
	}
	in.Image = img

	u, err := h.Svc.UpdateProfile(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"user": u})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	Password        string `json:"password" binding:"required,strongpwd"`
}

// UpdatePassword - PATCH /api/auth/update-password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "No token provided, authorization denied", nil)
		return
	}

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}
	if err := h.Svc.UpdatePassword(c.Request.Context(), id, req.CurrentPassword, req.Password); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated successfully", nil)
}

// SearchUsers - GET /api/auth/users/search?q= (ADMIN only)
func (h *UserHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "Query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"users": hits})
}
