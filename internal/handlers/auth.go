package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftdesk/internal/auth"
	"shiftdesk/internal/models"
	"shiftdesk/internal/requests"
	"shiftdesk/internal/response"
)

// Login godoc
// @Summary		Sign in
// @Description	Exchanges credentials for an access and a refresh token
// @Tags			auth
// @Accept			json
// @Produce		json
// @Param			user	body		requests.LoginRequest			true	"Credentials"
// @Success		200		{object}	response.TokenResponse
// @Failure		401		{object}	response.ErrorResponse			"INVALID_CREDENTIALS"
// @Failure		422		{object}	response.ValidationErrorResponse
// @Failure		500		{object}	response.ErrorResponse			"TOKEN_GENERATION_ERROR"
// @Router			/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if !h.bind(c, &req, 0) {
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).Where("email = ?", req.Email).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	h.issueTokens(c, user.ID)
}

// Refresh godoc
// @Summary	Refresh tokens
// @Tags		auth
// @Accept		json
// @Produce	json
// @Param		token	body		requests.RefreshTokenRequest	true	"Refresh token"
// @Success	200		{object}	response.TokenResponse
// @Failure	401		{object}	response.ErrorResponse			"INVALID_REFRESH_TOKEN"
// @Failure	422		{object}	response.ValidationErrorResponse
// @Router		/auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req requests.RefreshTokenRequest
	if !h.bind(c, &req, 0) {
		return
	}
	userID, err := h.tokens.ParseRefresh(req.RefreshToken)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid refresh token")
		return
	}
	// The account may have been removed since the token was issued.
	var count int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		response.Internal(c, "DB_ERROR", err)
		return
	}
	if count == 0 {
		response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid refresh token")
		return
	}
	h.issueTokens(c, userID)
}

func (h *Handler) issueTokens(c *gin.Context, userID uint) {
	access, refresh, err := h.tokens.Pair(userID)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "TOKEN_GENERATION_ERROR", "Could not issue tokens")
		return
	}
	c.JSON(http.StatusOK, response.TokenResponse{AccessToken: access, RefreshToken: refresh})
}
