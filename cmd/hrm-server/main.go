package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/EethalTeam/eethal-hrm-node/internal/config"
	"github.com/EethalTeam/eethal-hrm-node/internal/notify"
	"github.com/EethalTeam/eethal-hrm-node/internal/storage"
	"github.com/EethalTeam/eethal-hrm-node/internal/task"
	"github.com/EethalTeam/eethal-hrm-node/internal/telecmi"
	"github.com/EethalTeam/eethal-hrm-node/internal/web"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "hrm-server",
		Short:   "HRM backend - task management, notifications and call logs",
		Version: Version,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HRM backend server",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("hrm-server version %s starting...", Version)

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			store, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer store.Close()

			statuses, err := task.LoadStatusTable(store)
			if err != nil {
				return fmt.Errorf("failed to load status table: %w", err)
			}

			hub := notify.NewHub()

			var whatsapp *notify.WhatsAppClient
			if cfg.WhatsApp.Enabled {
				whatsapp = notify.NewWhatsAppClient(cfg.WhatsApp.APIURL, cfg.WhatsApp.Token, cfg.WhatsApp.Template)
			}
			notifier := notify.New(store, hub, whatsapp, cfg.WhatsApp.Recipient)

			engine := task.NewEngine(store, notifier, statuses)

			// Token cache lifecycle is owned here, not by the client
			tokenCache := telecmi.NewTokenCache()
			callLogs := telecmi.NewClient(cfg.Telecmi.UserID, cfg.Telecmi.Password, cfg.Telecmi.BaseURL, tokenCache)

			addr := getEnv("HRM_ADDR", cfg.Server.Addr)
			server := web.NewServer(engine, callLogs, store, hub)

			log.Printf("Starting web server on %s", addr)
			return server.Run(addr)
		},
	}
	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.GlobalConfigPath()
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}

			data, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return err
			}

			fmt.Printf("Wrote default config to %s\n", path)
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and seed lookup tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			store, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println("Migration complete")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show backend configuration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			fmt.Println("HRM Backend Status")
			fmt.Println("==================")
			fmt.Printf("Server addr:     %s\n", cfg.Server.Addr)
			fmt.Printf("Database driver: %s\n", cfg.Database.Driver)
			fmt.Printf("Database DSN:    %s\n", cfg.Database.DSN)
			fmt.Printf("Telecmi user:    %s\n", cfg.Telecmi.UserID)
			fmt.Printf("WhatsApp:        enabled=%v\n", cfg.WhatsApp.Enabled)
			return nil
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
