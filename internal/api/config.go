package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"schedsim/internal/sched"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port      int
	Parallel  bool
	RRWaiting sched.RRWaiting
}

// Options converts the scheduler part of the settings for the engine.
func (c *ServerConfig) Options() sched.Options {
	return sched.Options{Parallel: c.Parallel, RRWaiting: c.RRWaiting}
}

// LoadServerConfig reads server.yaml from the given directories (the working
// directory when none are given). A missing file leaves the defaults;
// SCHEDSIM_* environment variables override both, e.g. SCHEDSIM_PORT.
func LoadServerConfig(dirs ...string) (*ServerConfig, error) {
	v := viper.New()
	v.SetConfigName("server")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = []string{"./"}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.parallel", false)
	v.SetDefault("scheduler.rr_waiting", string(sched.WaitingLastDispatch))

	v.SetEnvPrefix("schedsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read server config: %w", err)
		}
	}

	cfg := &ServerConfig{
		Port:      v.GetInt("port"),
		Parallel:  v.GetBool("scheduler.parallel"),
		RRWaiting: sched.RRWaiting(v.GetString("scheduler.rr_waiting")),
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, &sched.InvalidConfigError{Field: "port", Value: cfg.Port, Reason: "out of range"}
	}
	if err := cfg.Options().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
