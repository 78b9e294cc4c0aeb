package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/domain/repositories"
	"quickbite.backend/pkg/crypto"
	"quickbite.backend/pkg/logger"
	pkgredis "quickbite.backend/pkg/redis"
)

// OTPStore abstracts the pending-code storage
type OTPStore interface {
	Store(ctx context.Context, phone, codeHash string) error
	Load(ctx context.Context, phone string) (string, error)
	Consume(ctx context.Context, phone string) error
}

// TokenIssuer abstracts JWT generation
type TokenIssuer interface {
	GenerateToken(userID int64, phone, role string, merchantID *int64) (string, error)
}

// AuthResult is returned after a successful OTP verification
type AuthResult struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

// AuthUsecase handles phone/OTP login for every role
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	merchantRepo repositories.MerchantRepository
	riderRepo    repositories.RiderRepository
	otpStore     OTPStore
	tokens       TokenIssuer
	devMode      bool
}

// NewAuthUsecase creates a new auth usecase. In devMode generated codes are
// returned to the caller; otherwise they are only logged server-side (no SMS
// provider is integrated).
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	merchantRepo repositories.MerchantRepository,
	riderRepo repositories.RiderRepository,
	otpStore OTPStore,
	tokens TokenIssuer,
	devMode bool,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		merchantRepo: merchantRepo,
		riderRepo:    riderRepo,
		otpStore:     otpStore,
		tokens:       tokens,
		devMode:      devMode,
	}
}

// InferRole resolves the role a fresh login should take: the existing
// identity's role wins, else a merchant profile carrying the phone, else a
// rider profile, else customer.
func (u *AuthUsecase) InferRole(ctx context.Context, phone string) (entities.Role, error) {
	user, err := u.userRepo.GetByPhone(ctx, phone)
	if err == nil {
		return user.Role, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return "", err
	}

	isMerchant, err := u.merchantRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	if isMerchant {
		return entities.RoleMerchant, nil
	}

	isRider, err := u.riderRepo.ExistsByUserPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	if isRider {
		return entities.RoleRider, nil
	}
	return entities.RoleCustomer, nil
}

// SendOTP generates a one-time code for the phone, creating a customer-grade
// identity on first contact. The returned code is empty outside dev mode.
func (u *AuthUsecase) SendOTP(ctx context.Context, phone string) (string, error) {
	if !ValidOTPPhone(phone) {
		return "", domainerrors.Validation("Invalid mobile number")
	}

	role, err := u.InferRole(ctx, phone)
	if err != nil {
		return "", err
	}

	if _, err := u.userRepo.GetByPhone(ctx, phone); errors.Is(err, domainerrors.ErrNotFound) {
		fresh := &entities.User{
			Phone:     phone,
			Role:      role,
			Status:    entities.UserStatusActive,
			KYCStatus: entities.KYCPending,
		}
		if err := u.userRepo.Create(ctx, fresh); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	code, err := crypto.GenerateOTP()
	if err != nil {
		return "", err
	}
	hash, err := crypto.HashOTP(code)
	if err != nil {
		return "", err
	}
	if err := u.otpStore.Store(ctx, phone, hash); err != nil {
		if errors.Is(err, pkgredis.ErrThrottled) {
			return "", domainerrors.Validation("Please wait before requesting another code")
		}
		return "", err
	}

	logger.Info(ctx, "otp issued", zap.String("phone", phone), zap.String("role", string(role)))
	if u.devMode {
		return code, nil
	}
	return "", nil
}

// VerifyOTP checks and consumes the pending code, rejects non-active
// identities and issues a JWT.
func (u *AuthUsecase) VerifyOTP(ctx context.Context, phone, code string) (*AuthResult, error) {
	if !ValidOTPPhone(phone) || code == "" {
		return nil, domainerrors.Validation("Phone and OTP are required")
	}

	hash, err := u.otpStore.Load(ctx, phone)
	if err != nil {
		if errors.Is(err, pkgredis.ErrNoCode) {
			return nil, domainerrors.OTPInvalid()
		}
		return nil, err
	}
	if !crypto.CheckOTP(code, hash) {
		return nil, domainerrors.OTPInvalid()
	}
	if err := u.otpStore.Consume(ctx, phone); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user.Status != entities.UserStatusActive {
		return nil, domainerrors.NotActive()
	}

	var merchantID *int64
	if user.Role == entities.RoleMerchant {
		merchant, err := u.merchantRepo.GetByUserID(ctx, user.ID)
		if err == nil {
			merchantID = &merchant.ID
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Phone, string(user.Role), merchantID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
