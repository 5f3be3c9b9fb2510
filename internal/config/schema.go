package config

// Config represents the full HRM backend configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Telecmi  TelecmiConfig  `yaml:"telecmi" mapstructure:"telecmi"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp" mapstructure:"whatsapp"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// DatabaseConfig selects and configures the storage backend
type DatabaseConfig struct {
	// Driver is sqlite3 or pgx
	Driver string `yaml:"driver" mapstructure:"driver"`
	// DSN is the database file path for sqlite3 or a connection string
	// for pgx
	DSN string `yaml:"dsn" mapstructure:"dsn"`
}

// TelecmiConfig holds the telephony API credentials
type TelecmiConfig struct {
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	UserID   string `yaml:"user_id" mapstructure:"user_id"`
	Password string `yaml:"password" mapstructure:"password"`
}

// WhatsAppConfig configures the templated messaging provider
type WhatsAppConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	APIURL    string `yaml:"api_url" mapstructure:"api_url"`
	Token     string `yaml:"token" mapstructure:"token"`
	Template  string `yaml:"template" mapstructure:"template"`
	Recipient string `yaml:"recipient" mapstructure:"recipient"`
}

// DefaultConfig returns the baseline configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Database: DatabaseConfig{
			Driver: "sqlite3",
			DSN:    "~/.eethal-hrm/hrm.db",
		},
		Telecmi: TelecmiConfig{
			BaseURL: "https://rest.telecmi.com/v2/user",
		},
		WhatsApp: WhatsAppConfig{
			Template: "task-assignment",
		},
	}
}
