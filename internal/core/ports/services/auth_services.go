package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
)

// AuthSvc implements phone/OTP sign-in.
type AuthSvc interface {
	// RequestOTP issues a code for phone and returns when it expires.
	RequestOTP(ctx context.Context, phone string) (time.Time, error)

	// VerifyOTP checks the code, creating the user on first sign-in, and issues a token.
	VerifyOTP(ctx context.Context, phone, code string) (*domain.Session, error)
}

// OTPSender delivers a code to a phone. SMS providers live behind it.
type OTPSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}
