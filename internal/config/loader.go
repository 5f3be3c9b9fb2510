package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads configuration, merging the global file and an optional
// explicit path over the defaults. Missing files are not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = GlobalConfigPath()
	}
	if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	// Credentials can be supplied via environment
	if v := os.Getenv("TELECMI_USER_ID"); v != "" {
		cfg.Telecmi.UserID = v
	}
	if v := os.Getenv("TELECMI_PASSWORD"); v != "" {
		cfg.Telecmi.Password = v
	}
	if v := os.Getenv("WHATSAPP_TOKEN"); v != "" {
		cfg.WhatsApp.Token = v
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".eethal-hrm", "config.yaml")
}
