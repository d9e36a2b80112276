package rxcore

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config interface {
	Get(string) interface{}
	GetBool(string) bool
	GetInt(string) int
	GetString(string) string
	GetDuration(string) time.Duration
	GetFloat64(string) float64

	IsSet(string) bool
	Set(string, interface{})

	GetBoolDefault(string, bool) bool
	GetIntDefault(string, int) int
	GetStringDefault(string, string) string
	GetDurationDefault(string, time.Duration) time.Duration
	GetFloat64Default(string, float64) float64

	GetConfig(string) (Config, bool)
}

var settingsOnce sync.Once

// Settings returns the process wide configuration. Keys can be overridden by
// environment variables, e.g. RXCORE_LOG_LEVEL for rxcore.log.level.
func Settings() Config {
	settingsOnce.Do(func() {
		bindEnv(viper.GetViper())
	})
	return &viperWrapper{
		viper.GetViper(),
	}
}

// NewConfig wraps v. A nil v yields an empty, environment backed config.
func NewConfig(v *viper.Viper) Config {
	if v == nil {
		v = viper.New()
		bindEnv(v)
	}
	return &viperWrapper{v}
}

// LoadConfig reads the config file at path into the process wide settings.
func LoadConfig(path string) (Config, error) {
	conf := Settings()
	if path == "" {
		return conf, nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	return conf, nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

type viperWrapper struct {
	*viper.Viper
}

func (w *viperWrapper) GetBoolDefault(key string, v bool) bool {
	if w.IsSet(key) {
		return w.GetBool(key)
	}
	return v
}

func (w *viperWrapper) GetIntDefault(key string, v int) int {
	if w.IsSet(key) {
		return w.GetInt(key)
	}
	return v
}

func (w *viperWrapper) GetStringDefault(key string, v string) string {
	if w.IsSet(key) {
		return w.GetString(key)
	}
	return v
}

func (w *viperWrapper) GetDurationDefault(key string, v time.Duration) time.Duration {
	if w.IsSet(key) {
		return w.GetDuration(key)
	}
	return v
}

func (w *viperWrapper) GetFloat64Default(key string, v float64) float64 {
	if w.IsSet(key) {
		return w.GetFloat64(key)
	}
	return v
}

func (w *viperWrapper) GetConfig(key string) (Config, bool) {
	if w.IsSet(key) {
		if sub := w.Sub(key); sub != nil {
			return &viperWrapper{sub}, true
		}
	}
	return nil, false
}

type Option struct {
	Name  string
	Value interface{}
}
