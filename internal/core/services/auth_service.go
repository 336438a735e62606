package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/platform/config"
	"github.com/SscSPs/ledgerlite/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const otpDigits = 6

var phoneValidator = validator.New()

type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	otpRepo  portsrepo.OTPRepository
	sender   portssvc.OTPSender
	cfg      *config.Config
}

// NewAuthService creates the phone/OTP sign-in service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, otpRepo portsrepo.OTPRepository, sender portssvc.OTPSender, options ...ServiceOption) portssvc.AuthSvc {
	return &authService{
		BaseService: newBaseService(options),
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		sender:      sender,
		cfg:         cfg,
	}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func normalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if err := phoneValidator.Var(phone, "required,e164"); err != nil {
		return "", apperrors.NewValidationFailedError("phone must be in E.164 format")
	}
	return phone, nil
}

func (s *authService) RequestOTP(ctx context.Context, phone string) (time.Time, error) {
	logger := s.GetLogger(ctx)

	phone, err := normalizePhone(phone)
	if err != nil {
		return time.Time{}, err
	}

	code, err := utils.GenerateOTPCode(otpDigits)
	if err != nil {
		return time.Time{}, apperrors.NewAppError(500, "failed to generate code", err)
	}
	hash, err := utils.HashOTP(code)
	if err != nil {
		return time.Time{}, apperrors.NewAppError(500, "failed to hash code", err)
	}

	now := s.Now()
	challenge := domain.OTPChallenge{
		Phone:     phone,
		CodeHash:  hash,
		ExpiresAt: now.Add(s.cfg.OTPTTL),
		CreatedAt: now,
	}
	if err := s.otpRepo.SaveChallenge(ctx, challenge); err != nil {
		logger.Error("Failed to store OTP challenge", slog.String("error", err.Error()))
		return time.Time{}, fmt.Errorf("failed to store code: %w", err)
	}
	if err := s.sender.SendOTP(ctx, phone, code); err != nil {
		logger.Error("Failed to deliver OTP", slog.String("error", err.Error()))
		return time.Time{}, apperrors.NewAppError(500, "failed to deliver code", err)
	}

	logger.Info("OTP issued", slog.String("phone", maskPhone(phone)))
	return challenge.ExpiresAt, nil
}

func (s *authService) VerifyOTP(ctx context.Context, phone, code string) (*domain.Session, error) {
	logger := s.GetLogger(ctx)
	invalid := apperrors.NewUnauthorizedError("invalid or expired code")

	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	challenge, err := s.otpRepo.FindChallenge(ctx, phone)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	now := s.Now()
	if challenge.Expired(now) {
		s.dropChallenge(ctx, phone)
		return nil, invalid
	}

	// Attempts are counted before comparing; concurrent guesses share one limit.
	ok, err := s.otpRepo.ConsumeAttempt(ctx, phone, s.cfg.OTPMaxAttempts)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("OTP attempts exhausted", slog.String("phone", maskPhone(phone)))
		s.dropChallenge(ctx, phone)
		return nil, invalid
	}

	if !utils.CheckOTPHash(strings.TrimSpace(code), challenge.CodeHash) {
		logger.Warn("OTP mismatch", slog.String("phone", maskPhone(phone)))
		return nil, invalid
	}

	if err := s.otpRepo.DeleteChallenge(ctx, phone); err != nil {
		return nil, fmt.Errorf("failed to consume code: %w", err)
	}

	user, isNew, err := s.findOrCreateUser(ctx, phone, now)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to issue token", err)
	}

	logger.Info("User signed in", slog.String("user_id", user.UserID), slog.Bool("new_user", isNew))
	s.Track(user.UserID, utils.EventOTPVerified, map[string]any{"new_user": isNew})
	return &domain.Session{
		Token:     token,
		ExpiresAt: now.Add(s.cfg.JWTExpiryDuration),
		User:      *user,
		IsNewUser: isNew,
	}, nil
}

func (s *authService) dropChallenge(ctx context.Context, phone string) {
	if err := s.otpRepo.DeleteChallenge(ctx, phone); err != nil {
		s.GetLogger(ctx).Warn("Failed to delete stale OTP challenge", slog.String("error", err.Error()))
	}
}

func (s *authService) findOrCreateUser(ctx context.Context, phone string, now time.Time) (*domain.User, bool, error) {
	user, err := s.userRepo.FindUserByPhone(ctx, phone)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	userID := uuid.NewString()
	created := domain.User{
		UserID:      userID,
		Phone:       phone,
		AuditFields: domain.NewAuditFields(userID, now),
	}
	if err := s.userRepo.SaveUser(ctx, created); err != nil {
		// A concurrent verification for the same phone created the user first.
		if errors.Is(err, apperrors.ErrConflict) {
			existing, findErr := s.userRepo.FindUserByPhone(ctx, phone)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return &created, true, nil
}

// maskPhone keeps the last three digits for log lines.
func maskPhone(phone string) string {
	if len(phone) <= 3 {
		return "***"
	}
	return strings.Repeat("*", len(phone)-3) + phone[len(phone)-3:]
}

// LogOTPSender is the default OTPSender. It only logs delivery; the code itself
// is logged when RevealCode is set, which main does outside production.
type LogOTPSender struct {
	Logger     *slog.Logger
	RevealCode bool
}

func (l LogOTPSender) SendOTP(ctx context.Context, phone, code string) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{slog.String("phone", maskPhone(phone))}
	if l.RevealCode {
		attrs = append(attrs, slog.String("code", code))
	}
	logger.InfoContext(ctx, "OTP delivery requested", attrs...)
	return nil
}
