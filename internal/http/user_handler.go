package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagecraft/internal/domain"
	"pagecraft/internal/repository"
	"pagecraft/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger    *zap.Logger
	userServ  *service.UserService
	tokenServ *service.TokenService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService, tokenServ *service.TokenService) *UserHandler {
	return &UserHandler{
		logger:    logger,
		userServ:  userServ,
		tokenServ: tokenServ,
	}
}

// Register maneja POST /users/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		UserName   string `json:"user_name"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required_if=SignupType EMAIL,omitempty,min=8,max=32"`
		SignupType string `json:"signup_type" binding:"required,oneof=EMAIL GOOGLE APPLE"`
		FCMToken   string `json:"fcm_token" binding:"required_unless=SignupType EMAIL"`
		Avatar     string `json:"avatar"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	user, err := h.userServ.Register(c.Request.Context(), service.RegisterInput{
		UserName:   req.UserName,
		Email:      req.Email,
		Password:   req.Password,
		SignupType: req.SignupType,
		FCMToken:   req.FCMToken,
		Avatar:     req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusBadRequest, req.Email+" is already taken")
		case errors.Is(err, service.ErrPasswordRequired), errors.Is(err, service.ErrInvalidEmail):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("register failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	pair, err := h.issueTokens(user)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"error":         false,
		"message":       "User created successfully.",
		"data":          user,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Login maneja POST /users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required_if=SignupType EMAIL"`
		SignupType string `json:"signup_type" binding:"required,oneof=EMAIL GOOGLE APPLE"`
		FCMToken   string `json:"fcm_token" binding:"required_unless=SignupType EMAIL"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	user, err := h.userServ.Login(c.Request.Context(), service.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		SignupType: req.SignupType,
		FCMToken:   req.FCMToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusBadRequest, "Invalid Credentials!")
		case errors.Is(err, service.ErrSignupTypeMismatch):
			respondError(c, http.StatusBadRequest, "This account was registered with another signup method.")
		default:
			h.logger.Error("login failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	pair, err := h.issueTokens(user)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"error":         false,
		"message":       "Login successful.",
		"data":          user,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// SendOTP maneja POST /users/send-otp. El código viaja solo por correo; la
// respuesta lleva únicamente el token firmado que acompaña al reset.
func (h *UserHandler) SendOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	user, err := h.userServ.SendResetOTP(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidEmail):
			respondError(c, http.StatusBadRequest, "Invalid Email!")
		case errors.Is(err, service.ErrRateLimited):
			respondError(c, http.StatusTooManyRequests, "too many requests")
		case errors.Is(err, service.ErrEmailSendFailure):
			respondError(c, http.StatusServiceUnavailable, "email delivery unavailable")
		default:
			h.logger.Error("send otp failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	token, err := h.tokenServ.GenerateResetToken(user)
	if err != nil {
		h.logger.Error("reset token issue failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"error":   false,
		"message": "OTP has been sent to your email.",
		"token":   token,
	})
}

// ChangePassword maneja POST /users/change-password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		OTP      string `json:"otp" binding:"required,numeric"`
		Token    string `json:"token" binding:"required"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	claims, err := h.tokenServ.ParseResetToken(req.Token)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid or expired reset token")
		return
	}
	if !strings.EqualFold(claims.Email, strings.TrimSpace(req.Email)) {
		respondError(c, http.StatusBadRequest, "invalid or expired reset token")
		return
	}

	_, err = h.userServ.ChangePassword(c.Request.Context(), service.ChangePasswordInput{
		Email:    req.Email,
		Password: req.Password,
		Code:     req.OTP,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOTPInvalid):
			respondError(c, http.StatusBadRequest, "Invalid OTP!")
		case errors.Is(err, service.ErrOTPExpired):
			respondError(c, http.StatusBadRequest, "OTP has expired.")
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidEmail):
			respondError(c, http.StatusBadRequest, "Invalid Email!")
		case errors.Is(err, service.ErrPasswordRequired):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("change password failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	respondData(c, http.StatusOK, "Password has been changed successfully.", nil)
}

// GetUser maneja GET /users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	user, err := h.userServ.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("get user failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	respondData(c, http.StatusOK, "user fetched successfully", user)
}

// UpdateProfile maneja PUT /users/profile/:id.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		UserName *string `json:"user_name"`
		Avatar   *string `json:"avatar"`
		FCMToken *string `json:"fcm_token"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}

	fields := map[string]any{}
	if req.UserName != nil {
		fields["user_name"] = *req.UserName
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.FCMToken != nil {
		fields["fcm_token"] = *req.FCMToken
	}

	id := strings.TrimSpace(c.Param("id"))
	user, err := h.userServ.UpdateProfile(c.Request.Context(), id, fields)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "user not found")
		case errors.Is(err, repository.ErrNoFields):
			respondError(c, http.StatusBadRequest, "no valid fields provided for update")
		default:
			h.logger.Error("update profile failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}
	respondData(c, http.StatusOK, "profile updated successfully", user)
}

// RefreshToken maneja POST /users/refresh-token.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}
	pair, err := h.tokenServ.RefreshPair(req.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"error":         false,
		"message":       "token refreshed",
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Logout maneja POST /users/logout.
func (h *UserHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if violations, ok := bindJSON(c, &req); !ok {
		respondViolations(c, violations)
		return
	}
	_ = h.tokenServ.RevokeRefresh(req.RefreshToken)
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) issueTokens(user domain.User) (service.TokenPair, error) {
	if h.tokenServ == nil {
		return service.TokenPair{}, errors.New("jwt not configured")
	}
	return h.tokenServ.GeneratePair(user)
}
