package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"log"
	"math/big"
	"time"

	"premam/internal/cache"
	apperrors "premam/internal/errors"
)

const (
	otpKeyPrefix = "otp:"
	otpTTL       = 5 * time.Minute
	otpDigits    = 6
)

// CodeSender delivers a one-time code to an address. The delivery channel is
// deployment-specific (email gateway, SMS relay); the default just logs.
type CodeSender interface {
	Send(ctx context.Context, email, code string) error
}

// LogSender writes codes to the process log. Development only.
type LogSender struct{}

// Send logs the code instead of delivering it.
func (LogSender) Send(_ context.Context, email, code string) error {
	log.Printf("otp for %s: %s", email, code)
	return nil
}

// OTPProvider is the possession-proof side of the identity provider: it
// issues short-lived codes and validates them exactly once.
type OTPProvider interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
}

type otpProvider struct {
	cache  *cache.Client
	sender CodeSender
}

// NewOTPProvider builds a provider storing codes in Redis with a short TTL.
func NewOTPProvider(cache *cache.Client, sender CodeSender) OTPProvider {
	if sender == nil {
		sender = LogSender{}
	}
	return &otpProvider{cache: cache, sender: sender}
}

// SendCode generates a fresh code for the address and dispatches it. A
// resend replaces any outstanding code.
func (p *otpProvider) SendCode(ctx context.Context, email string) error {
	code, err := generateCode(otpDigits)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := p.cache.Set(ctx, otpKeyPrefix+email, []byte(code), otpTTL); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	if err := p.sender.Send(ctx, email, code); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

// VerifyCode checks the code and consumes it on success, so a code can never
// authenticate twice.
func (p *otpProvider) VerifyCode(ctx context.Context, email, code string) error {
	stored, err := p.cache.Get(ctx, otpKeyPrefix+email)
	if err != nil || stored == nil {
		return apperrors.ErrInvalidOTP
	}
	if subtle.ConstantTimeCompare(stored, []byte(code)) != 1 {
		return apperrors.ErrInvalidOTP
	}
	_ = p.cache.Delete(ctx, otpKeyPrefix+email)
	return nil
}

func generateCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
