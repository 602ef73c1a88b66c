package core

import (
	"context"

	"go.convislabs.com/registration/db/models"
)

const AUTH_SERVICE = "auth"

type AuthService interface {
	// LoginPassword authenticates by email and password and returns a
	// signed session token. Unknown email and wrong password surface the
	// same way; an unverified account is rejected before a token is
	// issued.
	LoginPassword(ctx context.Context, email string, password string) (string, *models.User, error)

	Service
}
