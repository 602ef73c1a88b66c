package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.convislabs.com/registration/core"
)

func createVerifiedUser(t *testing.T, h *testHarness, email string, password string) {
	t.Helper()

	user, err := h.user.CreateAccount(context.Background(), email, password, "Acme Inc", "+15550100")
	require.NoError(t, err)
	require.NoError(t, h.user.VerifyEmail(context.Background(), email, user.OTP))
}

func TestCreateAccount(t *testing.T) {
	h := newTestHarness(t)

	user, err := h.user.CreateAccount(context.Background(), "new@example.com", "secret123", "Acme Inc", "+15550100")
	require.NoError(t, err)

	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "client", user.Role)
	assert.False(t, user.Verified)
	assert.True(t, user.FirstLogin)
	assert.Len(t, user.OTP, core.OTP_LENGTH)
	assert.NotEqual(t, "secret123", user.Password)

	sent := h.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, core.MAILER_TPL_VERIFY_EMAIL, sent[0].Template)
	assert.Equal(t, "new@example.com", sent[0].To)
	assert.Equal(t, user.OTP, sent[0].BodyVars["OTP"])
}

func TestCreateAccountInvalidEmail(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.user.CreateAccount(context.Background(), "not-an-email", "secret123", "", "")
	require.Error(t, err)
	assert.True(t, core.AsAccountError(err).IsErrorType(core.ErrKeyInvalidRequest))
}

func TestCreateAccountSurvivesEmailFailure(t *testing.T) {
	h := newTestHarness(t)
	h.mailer.FailSends(errors.New("connection refused"))

	user, err := h.user.CreateAccount(context.Background(), "unreachable@example.com", "secret123", "", "")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.ID.IsZero())

	exists, _, err := h.user.EmailExists(context.Background(), "unreachable@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", normalizeEmail("User@Example.COM"))
	assert.Equal(t, "user@example.com", normalizeEmail("  user@example.com "))
	assert.Equal(t, "user@example.com", normalizeEmail("user@example.com"))
}

func TestAccountEmailCaseInsensitive(t *testing.T) {
	h := newTestHarness(t)

	user, err := h.user.CreateAccount(context.Background(), "Mixed.Case@Example.COM", "secret123", "", "")
	require.NoError(t, err)
	assert.Equal(t, "mixed.case@example.com", user.Email)

	exists, _, err := h.user.EmailExists(context.Background(), "MIXED.CASE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = h.user.CreateAccount(context.Background(), "mixed.case@EXAMPLE.com", "othersecret", "", "")
	require.Error(t, err)
	assert.True(t, core.AsAccountError(err).IsErrorType(core.ErrKeyEmailAlreadyExists))

	require.NoError(t, h.user.VerifyEmail(context.Background(), "Mixed.Case@example.com", user.OTP))

	_, _, err = h.auth.LoginPassword(context.Background(), "MIXED.case@Example.com", "secret123")
	require.NoError(t, err)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.user.CreateAccount(context.Background(), "dup@example.com", "secret123", "", "")
	require.NoError(t, err)

	_, err = h.user.CreateAccount(context.Background(), "dup@example.com", "othersecret", "", "")
	require.Error(t, err)
	assert.True(t, core.AsAccountError(err).IsErrorType(core.ErrKeyEmailAlreadyExists))
}

func TestVerifyEmail(t *testing.T) {
	h := newTestHarness(t)

	user, err := h.user.CreateAccount(context.Background(), "verify@example.com", "secret123", "", "")
	require.NoError(t, err)

	require.NoError(t, h.user.VerifyEmail(context.Background(), "verify@example.com", user.OTP))

	_, stored, err := h.user.EmailExists(context.Background(), "verify@example.com")
	require.NoError(t, err)
	assert.True(t, stored.Verified)
	assert.Empty(t, stored.OTP)

	// The code is single-use; replaying it after verification fails.
	err = h.user.VerifyEmail(context.Background(), "verify@example.com", user.OTP)
	require.Error(t, err)
	assert.True(t, core.AsAccountError(err).IsErrorType(core.ErrKeyInvalidOTPCode))
}

func TestVerifyEmailWrongOTP(t *testing.T) {
	h := newTestHarness(t)

	_, err := h.user.CreateAccount(context.Background(), "verify2@example.com", "secret123", "", "")
	require.NoError(t, err)

	err = h.user.VerifyEmail(context.Background(), "verify2@example.com", "000000")
	require.Error(t, err)
	assert.True(t, core.AsAccountError(err).IsErrorType(core.ErrKeyInvalidOTPCode))
}

func TestVerifyEmailUnknownUser(t *testing.T) {
	h := newTestHarness(t)

	err := h.user.VerifyEmail(context.Background(), "nobody@example.com", "123456")
	require.Error(t, err)
	assert.True(t, core.AsAccountError(err).IsErrorType(core.ErrKeyUserNotFound))
}

func TestPasswordResetFlow(t *testing.T) {
	h := newTestHarness(t)
	createVerifiedUser(t, h, "reset@example.com", "oldsecret")

	require.NoError(t, h.user.SendPasswordResetOTP(context.Background(), "reset@example.com"))

	sent := h.mailer.Sent()
	require.NotEmpty(t, sent)
	last := sent[len(sent)-1]
	assert.Equal(t, core.MAILER_TPL_PASSWORD_RESET, last.Template)

	otp, ok := last.BodyVars["OTP"].(string)
	require.True(t, ok)

	err := h.user.VerifyPasswordResetOTP(context.Background(), "reset@example.com", "000000")
	require.Error(t, err)
	assert.True(t, core.AsAccountError(err).IsErrorType(core.ErrKeyInvalidOTPCode))

	require.NoError(t, h.user.VerifyPasswordResetOTP(context.Background(), "reset@example.com", otp))
	require.NoError(t, h.user.ResetPassword(context.Background(), "reset@example.com", "newsecret"))

	_, _, err = h.auth.LoginPassword(context.Background(), "reset@example.com", "oldsecret")
	require.Error(t, err)

	_, _, err = h.auth.LoginPassword(context.Background(), "reset@example.com", "newsecret")
	require.NoError(t, err)
}

func TestSendPasswordResetOTPUnknownUser(t *testing.T) {
	h := newTestHarness(t)

	err := h.user.SendPasswordResetOTP(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.True(t, core.AsAccountError(err).IsErrorType(core.ErrKeyUserNotFound))
}

func TestResetPasswordUnknownUser(t *testing.T) {
	h := newTestHarness(t)

	err := h.user.ResetPassword(context.Background(), "nobody@example.com", "newsecret")
	require.Error(t, err)
	assert.True(t, core.AsAccountError(err).IsErrorType(core.ErrKeyUserNotFound))
}
