package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "REGISTRATION_"

var (
	configFilePaths = []string{
		"/etc/convislabs/registration/config.yaml",
		"/etc/convislabs/registration/config.yml",
		"$HOME/.convislabs/registration/config.yaml",
		"$HOME/.convislabs/registration/config.yml",
		"./registration.yaml",
		"./registration.yml",
	}
	errConfigFileNotFound = errors.New("config file not found")
)

var _ Manager = (*ManagerDefault)(nil)

type ManagerDefault struct {
	config  *koanf.Koanf
	root    *Config
	changes bool
}

func NewManager() (*ManagerDefault, error) {
	k, err := newConfig()
	if err != nil && err != errConfigFileNotFound {
		return nil, err
	}

	exists := err == nil

	return &ManagerDefault{
		config:  k,
		changes: !exists,
	}, nil
}

func newConfig() (*koanf.Koanf, error) {
	k := koanf.New(".")

	configFile := findConfigFile(false)

	var loadErr error
	if configFile == "" {
		loadErr = errConfigFileNotFound
	} else if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, err
	}

	// Environment overrides: REGISTRATION_CORE__MAIL__HOST -> core.mail.host.
	// A double underscore separates path segments so keys like portal_name
	// survive the mapping.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, err
	}

	return k, loadErr
}

func findConfigFile(write bool) string {
	for _, p := range configFilePaths {
		expanded := os.ExpandEnv(p)
		if _, err := os.Stat(expanded); err == nil {
			return expanded
		}
	}

	if write {
		return os.ExpandEnv(configFilePaths[len(configFilePaths)-2])
	}

	return ""
}

func (m *ManagerDefault) Init() error {
	m.root = &Config{}

	err := m.setDefaultsForObject(m.root.Core, "core")
	if err != nil {
		return err
	}
	err = m.maybeSave()
	if err != nil {
		return err
	}

	err = m.config.UnmarshalWithConf("", &m.root, koanf.UnmarshalConf{
		Tag: "mapstructure",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
			Metadata:         nil,
			Result:           &m.root,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return err
	}

	return m.validateObject(m.root)
}

func (m *ManagerDefault) setDefaultsForObject(obj interface{}, prefix string) error {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	if setter, ok := obj.(Defaults); ok {
		err := m.applyDefaults(setter, prefix)
		if err != nil {
			return err
		}
	}

	for i := 0; i < objValue.NumField(); i++ {
		field := objValue.Field(i)
		fieldType := objType.Field(i)

		if !field.CanInterface() {
			continue
		}

		mapstructureTag := fieldType.Tag.Get("mapstructure")

		newPrefix := prefix
		if mapstructureTag != "" && mapstructureTag != "-" {
			if newPrefix != "" {
				newPrefix += "."
			}
			newPrefix += mapstructureTag
		}

		if field.Kind() == reflect.Struct || (field.Kind() == reflect.Ptr && field.Elem().Kind() == reflect.Struct) {
			if field.Kind() == reflect.Ptr && field.IsNil() {
				field.Set(reflect.New(fieldType.Type.Elem()))
			}
			err := m.setDefaultsForObject(field.Interface(), newPrefix)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *ManagerDefault) validateObject(obj interface{}) error {
	objValue := reflect.ValueOf(obj)
	objType := reflect.TypeOf(obj)

	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
		objType = objType.Elem()
	}

	if validator, ok := obj.(Validator); ok {
		err := validator.Validate()
		if err != nil {
			return err
		}
	}

	for i := 0; i < objValue.NumField(); i++ {
		field := objValue.Field(i)
		fieldType := objType.Field(i)

		if !field.CanInterface() {
			continue
		}

		if field.Kind() == reflect.Struct || (field.Kind() == reflect.Ptr && field.Elem().Kind() == reflect.Struct) {
			if field.Kind() == reflect.Ptr && field.IsNil() {
				field.Set(reflect.New(fieldType.Type.Elem()))
			}
			err := m.validateObject(field.Interface())
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *ManagerDefault) applyDefaults(setter Defaults, prefix string) error {
	defaults := setter.Defaults()
	for key, value := range defaults {
		fullKey := key
		if prefix != "" {
			fullKey = fmt.Sprintf("%s.%s", prefix, key)
		}
		ret, err := m.setDefault(fullKey, value)
		if err != nil {
			return err
		}

		if ret {
			m.changes = true
		}
	}

	return nil
}

func (m *ManagerDefault) setDefault(key string, value interface{}) (bool, error) {
	if !m.config.Exists(key) {
		err := m.config.Set(key, value)
		if err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

func (m *ManagerDefault) maybeSave() error {
	if m.changes {
		data, err := m.config.Marshal(yaml.Parser())
		if err != nil {
			return err
		}

		configFile := findConfigFile(true)

		err = os.MkdirAll(path.Dir(configFile), 0755)
		if err != nil {
			return err
		}
		err = os.WriteFile(configFile, data, 0644)
		if err != nil {
			return err
		}

		m.changes = false
	}

	return nil
}

func (m *ManagerDefault) Config() *Config {
	return m.root
}

func (m *ManagerDefault) Save() error {
	m.changes = true
	return m.maybeSave()
}
