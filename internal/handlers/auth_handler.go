package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartresult/backend/internal/services"
)

type AuthHandler struct {
	authService  *services.AuthService
	setupService *services.SetupService
}

func NewAuthHandler(authService *services.AuthService, setupService *services.SetupService) *AuthHandler {
	return &AuthHandler{authService: authService, setupService: setupService}
}

type AdminRegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	SchoolName string `json:"school_name" binding:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type StudentLoginRequest struct {
	RegisterNo string `json:"register_no" binding:"required"`
	DOB        string `json:"dob" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// @Summary Register admin
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AdminRegisterRequest true "Admin account details"
// @Success 201
// @Router /api/v1/auth/admin/register [post]
func (h *AuthHandler) AdminRegister(c *gin.Context) {
	var req AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, err := h.authService.RegisterAdmin(req.Email, req.Password, req.SchoolName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register admin"})
		return
	}

	if err := h.setupService.ProvisionAdmin(admin.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision account defaults"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"admin": gin.H{
			"id":          admin.ID,
			"email":       admin.Email,
			"school_name": admin.SchoolName,
		},
	})
}

// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Login credentials"
// @Success 200 {object} services.TokenPair
// @Router /api/v1/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, admin, err := h.authService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens": tokens,
		"admin": gin.H{
			"id":          admin.ID,
			"email":       admin.Email,
			"school_name": admin.SchoolName,
		},
	})
}

// @Summary Student login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body StudentLoginRequest true "Register number and date of birth"
// @Success 200 {object} services.TokenPair
// @Router /api/v1/auth/student/login [post]
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, student, err := h.authService.LoginStudent(req.RegisterNo, req.DOB)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid register number or date of birth"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tokens": tokens,
		"student": gin.H{
			"id":          student.ID,
			"register_no": student.RegisterNo,
			"name":        student.Name,
			"class":       student.Class,
			"section":     student.Section,
		},
	})
}

// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} services.TokenPair
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authService.RefreshTokens(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// @Summary Logout
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.RevokeToken(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
