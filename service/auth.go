package service

import (
	"context"

	"go.convislabs.com/registration/config"
	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/db/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var _ core.AuthService = (*AuthServiceDefault)(nil)

func init() {
	core.RegisterService(core.ServiceInfo{
		ID: core.AUTH_SERVICE,
		Factory: func() (core.Service, []core.ContextBuilderOption, error) {
			return NewAuthService()
		},
		Depends: []string{core.USER_SERVICE},
	})
}

type AuthServiceDefault struct {
	ctx    core.Context
	config config.Manager
	db     *mongo.Database
	user   core.UserService
}

func NewAuthService() (*AuthServiceDefault, []core.ContextBuilderOption, error) {
	authService := &AuthServiceDefault{}
	opts := core.ContextOptions(
		core.ContextWithStartupFunc(func(ctx core.Context) error {
			authService.ctx = ctx
			authService.config = ctx.Config()
			authService.db = ctx.DB()
			authService.user = core.GetService[core.UserService](ctx, core.USER_SERVICE)
			return nil
		}),
	)

	return authService, opts, nil
}

func (a *AuthServiceDefault) ID() string {
	return core.AUTH_SERVICE
}

func (a *AuthServiceDefault) LoginPassword(ctx context.Context, email string, password string) (string, *models.User, error) {
	exists, user, err := a.user.EmailExists(ctx, email)
	if err != nil {
		return "", nil, err
	}

	// Both failure modes answer with the same status so the API does not
	// become an account oracle beyond what the registration flow exposes.
	if !exists {
		return "", nil, core.NewAccountError(core.ErrKeyInvalidLogin, nil, "User not found")
	}

	if !a.validPassword(user, password) {
		return "", nil, core.NewAccountError(core.ErrKeyInvalidLogin, nil)
	}

	if !user.Verified {
		return "", nil, core.NewAccountError(core.ErrKeyAccountNotVerified, nil)
	}

	token, err := core.JWTGenerateToken([]byte(a.config.Config().Core.JWT.Secret), user.ID.Hex(), user.Email)
	if err != nil {
		return "", nil, core.NewAccountError(core.ErrKeyJWTGenerationFailed, err)
	}

	if user.FirstLogin {
		_, err = a.db.Collection(models.USER_COLLECTION).UpdateOne(ctx,
			bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"first_login": false}})
		if err != nil {
			return "", nil, core.NewAccountError(core.ErrKeyDatabaseOperationFailed, err)
		}
	}

	return token, user, nil
}

func (a *AuthServiceDefault) validPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))

	return err == nil
}
