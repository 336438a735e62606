package dto

import (
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

// RequestOTPRequest asks for a one-time code to be sent to phone.
type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
}

// VerifyOTPRequest exchanges a code for an access token.
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type OTPRequestedResponse struct {
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UserResponse struct {
	UserID    string    `json:"userID"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse defines the structure for the login API response.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	IsNewUser   bool         `json:"isNewUser"`
	User        UserResponse `json:"user"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{UserID: u.UserID, Phone: u.Phone, Name: u.Name, CreatedAt: u.CreatedAt}
}

func ToLoginResponse(s *domain.Session) LoginResponse {
	return LoginResponse{
		AccessToken: s.Token,
		ExpiresAt:   s.ExpiresAt,
		IsNewUser:   s.IsNewUser,
		User:        ToUserResponse(&s.User),
	}
}
