package config

// Manager owns the process configuration: loaded once at startup, written
// back when generated defaults (such as the node id) need to persist.
type Manager interface {
	Init() error
	Config() *Config
	Save() error
}

// Defaults is implemented by config sections that provide default values
// for keys the config file omits.
type Defaults interface {
	Defaults() map[string]interface{}
}

// Validator is implemented by config sections that require certain keys.
type Validator interface {
	Validate() error
}

type Config struct {
	Core CoreConfig `mapstructure:"core"`
}
