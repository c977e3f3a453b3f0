// Package bot parses bot command flags and composes the process entrypoint.
package bot

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/wfaller/pageturn/internal/paginator"
	entrypoint "github.com/wfaller/pageturn/internal/platform/cmd"
	"github.com/wfaller/pageturn/internal/platform/config"
	server "github.com/wfaller/pageturn/internal/services/bot/app"
)

// Config holds bot command configuration.
type Config struct {
	Token        string        `env:"PAGETURN_BOT_TOKEN"`
	StoragePath  string        `env:"PAGETURN_BOT_STORAGE_PATH"  envDefault:"pageturn.db"`
	PageTimeout  time.Duration `env:"PAGETURN_BOT_PAGE_TIMEOUT"  envDefault:"30s"`
	PerPage      int           `env:"PAGETURN_BOT_PER_PAGE"      envDefault:"5"`
	BindingsFile string        `env:"PAGETURN_BOT_BINDINGS_FILE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Token, "token", cfg.Token, "gateway bot token")
	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "codex SQLite database path")
	fs.DurationVar(&cfg.PageTimeout, "page-timeout", cfg.PageTimeout, "inactivity window per browsing wait cycle")
	fs.IntVar(&cfg.PerPage, "per-page", cfg.PerPage, "codex entries per page")
	fs.StringVar(&cfg.BindingsFile, "bindings-file", cfg.BindingsFile, "optional TOML file overriding action symbols")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the bot app and serves until the context ends.
func Run(ctx context.Context, cfg Config) error {
	bindings, err := loadBindings(cfg.BindingsFile)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBot, func(context.Context) error {
		if err := server.Run(ctx, server.Config{
			Token:       cfg.Token,
			StoragePath: cfg.StoragePath,
			PageTimeout: cfg.PageTimeout,
			PerPage:     cfg.PerPage,
			Bindings:    bindings,
		}); err != nil {
			return fmt.Errorf("serve bot: %w", err)
		}
		return nil
	})
}

// loadBindings reads the optional symbol override file. An empty path keeps
// the paginator defaults (the zero Bindings value).
func loadBindings(path string) (paginator.Bindings, error) {
	if path == "" {
		return paginator.Bindings{}, nil
	}
	file, err := config.LoadBindings(path)
	if err != nil {
		return paginator.Bindings{}, fmt.Errorf("load bindings file: %w", err)
	}
	return paginator.Bindings{
		Back:    file.Bindings.Back,
		Forward: file.Bindings.Forward,
		Jump:    file.Bindings.Jump,
		Delete:  file.Bindings.Delete,
	}, nil
}
