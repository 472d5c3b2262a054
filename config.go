package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Port                  int
	RoundRobinTimeQuantum int64
	Color                 bool
}

func (cfg SchedulerConfig) validate() error {
	if cfg.RoundRobinTimeQuantum <= 0 {
		return fmt.Errorf("%w: round robin time quantum must be > 0", ErrInvalidParameter)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidParameter, cfg.Port)
	}
	return nil
}

// loadConfig reads scheduler.yaml from path, or from the working directory when
// path is empty. A missing default file is not an error; CPU_SCHEDULER_* env
// vars override file values.
func loadConfig(path string) (SchedulerConfig, error) {
	v := viper.New()
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", DefaultQuantum)
	v.SetDefault("output.color", true)

	v.SetEnvPrefix("cpu_scheduler")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("scheduler")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return SchedulerConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		logger.Printf("using config file %s", v.ConfigFileUsed())
	}

	cfg := SchedulerConfig{
		Port:                  v.GetInt("port"),
		RoundRobinTimeQuantum: v.GetInt64("scheduler.round_robin.time_quantum"),
		Color:                 v.GetBool("output.color"),
	}
	return cfg, cfg.validate()
}
