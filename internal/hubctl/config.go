// Package hubctl implements the hubctl command line client.
package hubctl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL  string `mapstructure:"base_url" yaml:"base_url"`
	Token    string `mapstructure:"token" yaml:"token"`
	PageSize int    `mapstructure:"page_size" yaml:"page_size"`
	Output   string `mapstructure:"output" yaml:"output"`
}

// LoadConfig resolves configuration with the precedence
// flags > HUBCTL_* env > ./hubctl.yml > global config > defaults.
func LoadConfig(v *viper.Viper) (Config, error) {
	return loadFrom(v, GlobalPath(), ProjectPath())
}

func loadFrom(v *viper.Viper, global, project string) (Config, error) {
	v.SetConfigType("yaml")

	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("token", "")
	v.SetDefault("page_size", 20)
	v.SetDefault("output", "yaml")

	v.SetEnvPrefix("HUBCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, k := range []string{"base_url", "token", "page_size", "output"} {
		if err := v.BindEnv(k, "HUBCTL_"+strings.ToUpper(k)); err != nil {
			return Config{}, fmt.Errorf("binding %s env: %w", k, err)
		}
	}

	if fileExists(global) {
		v.SetConfigFile(global)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading global config: %w", err)
		}
	}
	if fileExists(project) {
		v.SetConfigFile(project)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	switch c.Output {
	case "yaml", "json":
	default:
		return fmt.Errorf("output must be yaml or json, got %q", c.Output)
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("page_size must be between 1 and 100")
	}
	return nil
}

// GlobalPath is $XDG_CONFIG_HOME/hubctl/hubctl.yml or
// ~/.config/hubctl/hubctl.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hubctl", "hubctl.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hubctl", "hubctl.yml")
}

func ProjectPath() string { return "hubctl.yml" }

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
