package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/dto"
	"github.com/SscSPs/ledgerlite/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles phone/OTP sign-in.
type authHandler struct {
	authService portssvc.AuthSvc
}

// registerAuthRoutes sets up the public sign-in routes, limited per client IP.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc, otpLimiter *limiter.Limiter) {
	h := &authHandler{authService: authService}

	auth := r.Group("/api/v1/auth/otp", middleware.RateLimit(otpLimiter))
	{
		auth.POST("/request", h.requestOTP)
		auth.POST("/verify", h.verifyOTP)
	}
}

// requestOTP godoc
// @Summary Request a sign-in code
// @Description Sends a one-time code to the phone number. The code expires after OTP_TTL.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestOTPRequest true "Phone in E.164 format"
// @Success 202 {object} dto.OTPRequestedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/otp/request [post]
func (h *authHandler) requestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	expiresAt, err := h.authService.RequestOTP(c.Request.Context(), req.Phone)
	if err != nil {
		respondError(c, err, "Failed to issue OTP")
		return
	}

	c.JSON(http.StatusAccepted, dto.OTPRequestedResponse{Message: "code sent", ExpiresAt: expiresAt})
}

// verifyOTP godoc
// @Summary Verify a sign-in code
// @Description Exchanges a valid code for an access token. The user is created on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Phone and code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/otp/verify [post]
func (h *authHandler) verifyOTP(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.authService.VerifyOTP(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		respondError(c, err, "OTP verification failed")
		return
	}

	logger.Info("Login successful", slog.String("user_id", session.User.UserID))
	c.JSON(http.StatusOK, dto.ToLoginResponse(session))
}
