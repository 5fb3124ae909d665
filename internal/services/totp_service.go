package services

import (
	"context"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"po-backend/internal/models"
	"po-backend/internal/repositories"
)

const totpIssuer = "PO-Backend"

// Custom errors
var (
	ErrNoTOTPSecret    = &TOTPError{Message: "2FA setup not initiated"}
	ErrInvalidTOTPCode = &TOTPError{Message: "invalid verification code"}
	ErrTOTPNotEnabled  = &TOTPError{Message: "2FA is not enabled"}
)

type TOTPError struct {
	Message string
}

func (e *TOTPError) Error() string {
	return e.Message
}

type TOTPService struct {
	userRepo *repositories.UserRepository
	totpRepo *repositories.TOTPRepository
}

func NewTOTPService(userRepo *repositories.UserRepository, totpRepo *repositories.TOTPRepository) *TOTPService {
	return &TOTPService{userRepo: userRepo, totpRepo: totpRepo}
}

// GenerateSetup creates a new TOTP secret for a user. The secret is
// stored disabled until the user confirms a first code.
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.User) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	secret := &models.TOTPSecret{UserID: user.ID, Secret: key.Secret()}
	if err := s.totpRepo.Save(ctx, secret); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{OTPAuthURL: key.URL()}, nil
}

// VerifyAndEnable confirms the first code and turns 2FA on
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	secret, err := s.totpRepo.GetByUser(ctx, userID)
	if err != nil {
		return ErrNoTOTPSecret
	}
	if !totp.Validate(code, secret.Secret) {
		return ErrInvalidTOTPCode
	}
	return s.totpRepo.Enable(ctx, userID)
}

// Verify validates a TOTP code during the second login step
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	secret, err := s.totpRepo.GetByUser(ctx, userID)
	if err != nil || !secret.Enabled {
		return ErrTOTPNotEnabled
	}
	if !totp.Validate(code, secret.Secret) {
		return ErrInvalidTOTPCode
	}
	return nil
}

// Disable turns 2FA off after verifying the current code
func (s *TOTPService) Disable(ctx context.Context, userID int, code string) error {
	secret, err := s.totpRepo.GetByUser(ctx, userID)
	if err != nil || !secret.Enabled {
		return ErrTOTPNotEnabled
	}
	if !totp.Validate(code, secret.Secret) {
		return ErrInvalidTOTPCode
	}
	return s.totpRepo.Delete(ctx, userID)
}
