package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DENNYYESSAR/alx-polly/internal/models"
	"github.com/DENNYYESSAR/alx-polly/pkg/response"
	"github.com/DENNYYESSAR/alx-polly/pkg/utils"
)

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest is the body for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the body for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo    *Repository
	jwt     *JWTService
	resets  *ResetTokenStore
	siteURL string
	logger  *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, resets *ResetTokenStore, siteURL string, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, resets: resets, siteURL: siteURL, logger: logger}
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	existing, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("lookup email", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}
	if existing != nil {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.repo.Create(c.Request.Context(), req.Email, hash, req.FullName)
	if err != nil {
		h.logger.Error("create user", zap.Error(err))
		response.Internal(c, "failed to create user")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.Created(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("lookup email", zap.Error(err))
		response.Internal(c, "login failed")
		return
	}
	if user == nil || !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Email)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.OK(c, TokenResponse{Token: token, User: user.ToPublic()})
}

// Refresh handles POST /auth/refresh (JWT required). Issues a fresh token for
// the current session.
func (h *Handler) Refresh(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	email := c.GetString("user_email")

	token, err := h.jwt.Generate(userID, email)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, gin.H{"token": token})
}

// ForgotPassword handles POST /auth/forgot-password. Always answers the same
// way regardless of whether the email exists, so the endpoint does not leak
// which addresses are registered. Mail delivery is external; the reset link is
// logged for the mailer to pick up.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("lookup email", zap.Error(err))
		response.Internal(c, "failed to process request")
		return
	}
	if user != nil {
		token, err := h.resets.Issue(c.Request.Context(), user.ID)
		if err != nil {
			h.logger.Error("issue reset token", zap.Error(err))
			response.Internal(c, "failed to process request")
			return
		}
		h.logger.Info("password reset requested",
			zap.String("email", user.Email),
			zap.String("reset_url", h.siteURL+"/reset-password?token="+token),
		)
	}

	response.OK(c, response.Message{Message: "Password reset email sent. Check your inbox!"})
}

// ResetPassword handles POST /auth/reset-password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID, err := h.resets.Consume(c.Request.Context(), req.Token)
	if err != nil {
		h.logger.Error("consume reset token", zap.Error(err))
		response.Internal(c, "failed to reset password")
		return
	}
	if userID == uuid.Nil {
		response.BadRequest(c, "reset token invalid or expired")
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}
	if err := h.repo.UpdatePassword(c.Request.Context(), userID, hash); err != nil {
		h.logger.Error("update password", zap.Error(err))
		response.Internal(c, "failed to reset password")
		return
	}

	response.OK(c, response.Message{Message: "Your password has been reset successfully!"})
}
