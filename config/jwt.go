package config

import "errors"

var _ Validator = (*JWTConfig)(nil)

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

func (j JWTConfig) Validate() error {
	if j.Secret == "" {
		return errors.New("core.jwt.secret is required")
	}

	return nil
}
