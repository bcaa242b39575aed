package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"premam/internal/cache"
	apperrors "premam/internal/errors"
)

// captureSender records the last code instead of delivering it.
type captureSender struct {
	email string
	code  string
}

func (s *captureSender) Send(_ context.Context, email, code string) error {
	s.email = email
	s.code = code
	return nil
}

func newTestOTP(t *testing.T) (OTPProvider, *captureSender, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := cache.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	sender := &captureSender{}
	return NewOTPProvider(client, sender), sender, mr
}

func TestOTPProvider_SendAndVerify(t *testing.T) {
	provider, sender, _ := newTestOTP(t)
	ctx := context.Background()

	assert.NoError(t, provider.SendCode(ctx, "sender@example.com"))
	assert.Equal(t, "sender@example.com", sender.email)
	assert.Len(t, sender.code, 6)

	assert.NoError(t, provider.VerifyCode(ctx, "sender@example.com", sender.code))

	// A code authenticates exactly once.
	assert.ErrorIs(t, provider.VerifyCode(ctx, "sender@example.com", sender.code), apperrors.ErrInvalidOTP)
}

func TestOTPProvider_WrongCode(t *testing.T) {
	provider, sender, _ := newTestOTP(t)
	ctx := context.Background()

	assert.NoError(t, provider.SendCode(ctx, "sender@example.com"))

	wrong := "000000"
	if sender.code == wrong {
		wrong = "000001"
	}
	assert.ErrorIs(t, provider.VerifyCode(ctx, "sender@example.com", wrong), apperrors.ErrInvalidOTP)

	// A failed attempt does not consume the real code.
	assert.NoError(t, provider.VerifyCode(ctx, "sender@example.com", sender.code))
}

func TestOTPProvider_Expiry(t *testing.T) {
	provider, sender, mr := newTestOTP(t)
	ctx := context.Background()

	assert.NoError(t, provider.SendCode(ctx, "sender@example.com"))
	mr.FastForward(6 * time.Minute)

	assert.ErrorIs(t, provider.VerifyCode(ctx, "sender@example.com", sender.code), apperrors.ErrInvalidOTP)
}

func TestOTPProvider_ResendReplacesCode(t *testing.T) {
	provider, sender, _ := newTestOTP(t)
	ctx := context.Background()

	assert.NoError(t, provider.SendCode(ctx, "sender@example.com"))
	first := sender.code
	assert.NoError(t, provider.SendCode(ctx, "sender@example.com"))

	if first != sender.code {
		assert.ErrorIs(t, provider.VerifyCode(ctx, "sender@example.com", first), apperrors.ErrInvalidOTP)
	}
	assert.NoError(t, provider.VerifyCode(ctx, "sender@example.com", sender.code))
}
