package core

import (
	"context"

	"go.convislabs.com/registration/db/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const USER_SERVICE = "user"

type UserService interface {
	// CreateAccount registers a new account in the pending-verification
	// state: password hashed, verification code generated and stored, and
	// the welcome email attempted with retries. The account is durable
	// once this returns; a failed welcome email is logged, not surfaced.
	CreateAccount(ctx context.Context, email string, password string, companyName string, phoneNumber string) (*models.User, error)

	// EmailExists reports whether an account with the given email exists,
	// without mutating anything.
	EmailExists(ctx context.Context, email string) (bool, *models.User, error)

	// AccountExists reports whether an account with the given id exists.
	AccountExists(ctx context.Context, id primitive.ObjectID) (bool, *models.User, error)

	// VerifyEmail marks the account verified and clears the stored code
	// when the submitted code matches. A missing stored code fails the
	// same way as a mismatch.
	VerifyEmail(ctx context.Context, email string, otp string) error

	// SendPasswordResetOTP overwrites any outstanding code with a fresh
	// one and emails it. The email is fire-and-forget: the code is durable
	// before the send is attempted, so delivery failure is only logged.
	SendPasswordResetOTP(ctx context.Context, email string) error

	// VerifyPasswordResetOTP checks the submitted code against the stored
	// one. Nothing is persisted; it is an independent client-side step.
	VerifyPasswordResetOTP(ctx context.Context, email string, otp string) error

	// ResetPassword replaces the stored hash. It requires only that the
	// account exists; it deliberately does not demand a freshly verified
	// reset code.
	ResetPassword(ctx context.Context, email string, newPassword string) error

	HashPassword(password string) (string, error)

	Service
}
