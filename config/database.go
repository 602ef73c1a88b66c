package config

import "errors"

var _ Defaults = (*DatabaseConfig)(nil)
var _ Validator = (*DatabaseConfig)(nil)

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

func (d DatabaseConfig) Validate() error {
	if d.URI == "" {
		return errors.New("core.db.uri is required")
	}
	if d.Name == "" {
		return errors.New("core.db.name is required")
	}

	return nil
}

func (d DatabaseConfig) Defaults() map[string]interface{} {
	return map[string]interface{}{
		"uri":  "mongodb://localhost:27017",
		"name": "registration",
	}
}
