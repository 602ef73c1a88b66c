package config

import (
	"errors"
)

var _ Defaults = (*CoreConfig)(nil)
var _ Validator = (*CoreConfig)(nil)

type CoreConfig struct {
	DB          DatabaseConfig `mapstructure:"db"`
	Domain      string         `mapstructure:"domain"`
	PortalName  string         `mapstructure:"portal_name"`
	Port        uint           `mapstructure:"port"`
	Log         LogConfig      `mapstructure:"log"`
	Mail        MailConfig     `mapstructure:"mail"`
	JWT         JWTConfig      `mapstructure:"jwt"`
	CORSOrigins []string       `mapstructure:"cors_origins"`
	NodeID      UUID           `mapstructure:"node_id"`
}

func (c CoreConfig) Validate() error {
	if c.Domain == "" {
		return errors.New("core.domain is required")
	}
	if c.PortalName == "" {
		return errors.New("core.portal_name is required")
	}
	if c.Port == 0 {
		return errors.New("core.port is required")
	}

	return nil
}

func (c CoreConfig) Defaults() map[string]interface{} {
	return map[string]interface{}{
		"portal_name":  "Convis Labs",
		"port":         8080,
		"cors_origins": []string{"http://localhost:3000", "http://localhost:3001"},
		"node_id":      NewUUID(),
	}
}
