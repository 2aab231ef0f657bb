package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tourbook/tourbook-api/internal/application"
	"github.com/tourbook/tourbook-api/internal/domain/entity"
	"github.com/tourbook/tourbook-api/pkg/response"
	"github.com/tourbook/tourbook-api/pkg/validation"
)

const maxImageSize = 5 << 20 // 5MB

// AuthHandler serves the public account endpoints.
type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// statusFor maps service errors to HTTP responses. Unexpected errors are
// logged and surfaced as a generic server error.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrDuplicateEmail),
		errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, application.ErrAccountInactive),
		errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrInvalidToken),
		errors.Is(err, application.ErrWrongPassword),
		errors.Is(err, application.ErrUpload):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, application.ErrNotification):
		return http.StatusInternalServerError, "Error sending reset email"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

func (h *AuthHandler) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.Error(c, status, msg, nil)
}

type registerRequest struct {
	Email       string `form:"email" json:"email" binding:"required,email"`
	Password    string `form:"password" json:"password" binding:"required,strongpwd"`
	FirstName   string `form:"firstName" json:"firstName" binding:"required,min=2,max=50"`
	LastName    string `form:"lastName" json:"lastName" binding:"required,min=2,max=50"`
	Phone       string `form:"phone" json:"phone" binding:"omitempty,phone"`
	DateOfBirth string `form:"dateOfBirth" json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	Role        string `form:"role" json:"role" binding:"omitempty,role"`
}

// imageFromForm extracts an optional profile image from a multipart request.
// Non-image content or oversized files are rejected.
func imageFromForm(c *gin.Context) (*application.ImageInput, multipart.File, error) {
	fh, err := c.FormFile("profileImage")
	if err != nil {
		return nil, nil, nil // no file supplied
	}
	if fh.Size > maxImageSize {
		return nil, nil, errors.New("image exceeds the 5MB limit")
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, nil, errors.New("only image files are allowed")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &application.ImageInput{Reader: f, Filename: fh.Filename, ContentType: contentType}, f, nil
}

// Register - POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	in := application.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      entity.Role(req.Role),
	}
	if req.Phone != "" {
		in.Phone = &req.Phone
	}
	if req.DateOfBirth != "" {
		dob, _ := time.Parse("2006-01-02", req.DateOfBirth)
		if dob.After(time.Now()) {
			response.Error(c, http.StatusBadRequest, "Validation failed",
				map[string]string{"dateOfBirth": "cannot be in the future"})
			return
		}
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

	res, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated,
		"User registered successfully. Please check your email for verification.",
		gin.H{"token": res.Token, "user": res.User})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), application.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful",
		gin.H{"token": res.Token, "user": res.User})
}

// VerifyEmail - GET /api/auth/verify-email?token=
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusBadRequest, "Verification token is required", nil)
		return
	}
	if err := h.Svc.VerifyEmail(c.Request.Context(), token); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Email verified successfully", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword - POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Password reset email sent", nil)
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,strongpwd"`
}

// ResetPassword - POST /api/auth/reset-password?token=
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusBadRequest, "Reset token is required", nil)
		return
	}
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Password reset successful", nil)
}
