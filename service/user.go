package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.convislabs.com/registration/config"
	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/db/models"
	"go.convislabs.com/registration/event"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const welcomeEmailAttempts = 3
const welcomeEmailDelay = 3 * time.Second

// normalizeEmail canonicalizes the account identity key. Every lookup
// and every stored record goes through this, so two spellings of one
// address always resolve to the same account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ core.UserService = (*UserServiceDefault)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.USER_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewUserService()
		},
		Depends: []string{core.MAILER_SERVICE},
	})
}

type UserServiceDefault struct {
	ctx    core.Context
	config config.Manager
	logger *core.Logger
	db     *mongo.Database
	mailer core.MailerService
}

func NewUserService() (*UserServiceDefault, []core.ContextBuilderOption, error) {
	user := &UserServiceDefault{}

	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			user.ctx = ctx
			user.config = ctx.Config()
			user.logger = ctx.ServiceLogger(user)
			user.db = ctx.DB()
			user.mailer = core.GetService[core.MailerService](ctx, core.MAILER_SERVICE)
			return nil
		}),
	)

	return user, opts, nil
}

func (u *UserServiceDefault) ID() string {
	return core.USER_SERVICE
}

func (u *UserServiceDefault) users() *mongo.Collection {
	return u.db.Collection(models.USER_COLLECTION)
}

func (u *UserServiceDefault) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", core.NewAccountError(core.ErrKeyPasswordHashingFailed, err)
	}
	return string(bytes), nil
}

func (u *UserServiceDefault) EmailExists(ctx context.Context, email string) (bool, *models.User, error) {
	var user models.User

	err := u.users().FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil, nil
		}

		return false, nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return true, &user, nil
}

func (u *UserServiceDefault) AccountExists(ctx context.Context, id primitive.ObjectID) (bool, *models.User, error) {
	var user models.User

	err := u.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil, nil
		}

		return false, nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return true, &user, nil
}

func (u *UserServiceDefault) CreateAccount(ctx context.Context, email string, password string, companyName string, phoneNumber string) (*models.User, error) {
	email = normalizeEmail(email)

	if !models.ValidEmail(email) {
		return nil, core.NewAccountError(core.ErrKeyInvalidRequest, nil, "Invalid email address")
	}

	exists, _, err := u.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, core.NewAccountError(core.ErrKeyEmailAlreadyExists, nil)
	}

	passwordHash, err := u.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:       email,
		Password:    passwordHash,
		Role:        "client",
		Verified:    false,
		OTP:         core.GenerateOTP(),
		CompanyName: companyName,
		PhoneNumber: phoneNumber,
		FirstLogin:  true,
		CreatedAt:   time.Now().UTC(),
	}

	result, err := u.users().InsertOne(ctx, &user)
	if err != nil {
		// The unique email index closes the window between the existence
		// check above and this insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, core.NewAccountError(core.ErrKeyEmailAlreadyExists, nil)
		}

		return nil, core.NewAccountError(core.ErrKeyAccountCreationFailed, err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)

	if err = event.FireUserCreatedEvent(u.ctx, &user); err != nil {
		return nil, err
	}

	// The account is already durable. A welcome email that never arrives
	// is recoverable through the resend flow, so delivery failure is
	// logged rather than returned.
	if err = u.sendVerificationEmail(ctx, &user); err != nil {
		u.logger.Error("failed to send welcome email",
			zap.String("email", user.Email),
			zap.Error(err))
	}

	return &user, nil
}

func (u *UserServiceDefault) sendVerificationEmail(ctx context.Context, user *models.User) error {
	vars := core.MailerTemplateData{
		"OTP":        user.OTP,
		"Email":      user.Email,
		"PortalName": u.config.Config().Core.PortalName,
	}

	return u.mailer.TemplateSendRetry(ctx, core.MAILER_TPL_VERIFY_EMAIL, vars, vars, user.Email, welcomeEmailAttempts, welcomeEmailDelay)
}

func (u *UserServiceDefault) VerifyEmail(ctx context.Context, email string, otp string) error {
	exists, user, err := u.EmailExists(ctx, email)
	if err != nil {
		return err
	}

	if !exists {
		return core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	// An empty stored code means no verification is pending; it fails the
	// same way as a mismatch so callers cannot probe for it.
	if user.OTP == "" || user.OTP != otp {
		return core.NewAccountError(core.ErrKeyInvalidOTPCode, nil)
	}

	_, err = u.users().UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{
			"$set":   bson.M{"verified": true},
			"$unset": bson.M{"otp": ""},
		})
	if err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	user.Verified = true
	user.OTP = ""

	return event.FireUserActivatedEvent(u.ctx, user)
}

func (u *UserServiceDefault) SendPasswordResetOTP(ctx context.Context, email string) error {
	exists, user, err := u.EmailExists(ctx, email)
	if err != nil {
		return err
	}

	if !exists {
		return core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	// A fresh code replaces any outstanding one, whether it came from
	// registration or an earlier reset request.
	otp := core.GenerateOTP()

	_, err = u.users().UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"otp": otp}})
	if err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	vars := core.MailerTemplateData{
		"OTP":        otp,
		"Email":      user.Email,
		"PortalName": u.config.Config().Core.PortalName,
	}

	// The code is durable at this point, so a failed send still leaves
	// the flow recoverable by requesting another code.
	if err = u.mailer.TemplateSend(core.MAILER_TPL_PASSWORD_RESET, vars, vars, user.Email); err != nil {
		u.logger.Error("failed to send password reset email",
			zap.String("email", user.Email),
			zap.Error(err))
	}

	return nil
}

func (u *UserServiceDefault) VerifyPasswordResetOTP(ctx context.Context, email string, otp string) error {
	exists, user, err := u.EmailExists(ctx, email)
	if err != nil {
		return err
	}

	if !exists {
		return core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	if user.OTP == "" || user.OTP != otp {
		return core.NewAccountError(core.ErrKeyInvalidOTPCode, nil)
	}

	return nil
}

func (u *UserServiceDefault) ResetPassword(ctx context.Context, email string, newPassword string) error {
	exists, user, err := u.EmailExists(ctx, email)
	if err != nil {
		return err
	}

	if !exists {
		return core.NewAccountError(core.ErrKeyUserNotFound, nil)
	}

	passwordHash, err := u.HashPassword(newPassword)
	if err != nil {
		return err
	}

	_, err = u.users().UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
	}

	return nil
}
