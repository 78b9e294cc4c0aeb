package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNoCode is returned when no code is pending for the phone
	ErrNoCode = errors.New("no code pending")

	// ErrThrottled is returned when a re-send arrives inside the cooldown
	ErrThrottled = errors.New("code requested too recently")
)

const (
	otpKeyPrefix      = "otp:"
	cooldownKeyPrefix = "otp_cooldown:"
)

// OTPStore keeps bcrypt-hashed one-time codes in Redis. Storing a new code
// replaces the previous one, which invalidates codes sent earlier.
type OTPStore struct {
	ttl      time.Duration
	cooldown time.Duration
}

var (
	setOTPValue   = set
	getOTPValue   = get
	delOTPValue   = del
	setNXOTPValue = setNX
)

// NewOTPStore creates a new OTP store
func NewOTPStore(ttl, cooldown time.Duration) *OTPStore {
	return &OTPStore{ttl: ttl, cooldown: cooldown}
}

// Store saves the code hash for the phone with TTL, enforcing the re-send
// cooldown when one is configured.
func (s *OTPStore) Store(ctx context.Context, phone, codeHash string) error {
	if s.cooldown > 0 {
		ok, err := setNXOTPValue(ctx, cooldownKeyPrefix+phone, "1", s.cooldown)
		if err != nil {
			return err
		}
		if !ok {
			return ErrThrottled
		}
	}
	return setOTPValue(ctx, otpKeyPrefix+phone, codeHash, s.ttl)
}

// Load returns the pending code hash for the phone
func (s *OTPStore) Load(ctx context.Context, phone string) (string, error) {
	hash, err := getOTPValue(ctx, otpKeyPrefix+phone)
	if errors.Is(err, redis.Nil) {
		return "", ErrNoCode
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// Consume removes the pending code so it cannot be replayed
func (s *OTPStore) Consume(ctx context.Context, phone string) error {
	return delOTPValue(ctx, otpKeyPrefix+phone)
}
