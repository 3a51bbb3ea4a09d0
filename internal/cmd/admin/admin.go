// Package admin parses admin console flags and starts the HTTP server.
package admin

import (
	"context"
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/promptops/console/internal/platform/cmd"
	"github.com/promptops/console/internal/services/admin"
)

// Config holds the admin command configuration.
type Config struct {
	HTTPAddr string `env:"PROMPTOPS_ADMIN_ADDR" envDefault:":8082"`
	DBPath   string `env:"PROMPTOPS_ADMIN_DB_PATH" envDefault:"data/admin.db"`
	PageSize int    `env:"PROMPTOPS_ADMIN_PAGE_SIZE" envDefault:"10"`

	// Auth is enabled when AuthSecret is set.
	AuthSecret string `env:"PROMPTOPS_ADMIN_AUTH_SECRET"`
	AuthIssuer string `env:"PROMPTOPS_ADMIN_AUTH_ISSUER"`
	LoginURL   string `env:"PROMPTOPS_ADMIN_LOGIN_URL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	bindFlags(fs, &cfg)
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the admin SQLite database")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "default rows per table page")
	fs.StringVar(&cfg.LoginURL, "login-url", cfg.LoginURL, "login page for unauthenticated browsers")
}

// serverConfig maps command configuration to the admin server.
func (c Config) serverConfig() (admin.Config, error) {
	if c.PageSize <= 0 {
		return admin.Config{}, fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	serverCfg := admin.Config{
		HTTPAddr: c.HTTPAddr,
		DBPath:   c.DBPath,
		PageSize: c.PageSize,
	}
	if secret := strings.TrimSpace(c.AuthSecret); secret != "" {
		serverCfg.AuthConfig = &admin.AuthConfig{
			Secret:   secret,
			Issuer:   strings.TrimSpace(c.AuthIssuer),
			LoginURL: strings.TrimSpace(c.LoginURL),
		}
	}
	return serverCfg, nil
}

// Run starts the admin console.
func Run(ctx context.Context, cfg Config) error {
	serverCfg, err := cfg.serverConfig()
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, func(ctx context.Context) error {
		server, err := admin.NewServer(ctx, serverCfg)
		if err != nil {
			return fmt.Errorf("init admin server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve admin: %w", err)
		}
		return nil
	})
}
