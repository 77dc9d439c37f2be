package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"

	"mshell/internal/config"
	"mshell/internal/core"
	"mshell/internal/modules/files"
	"mshell/internal/modules/help"
	"mshell/internal/modules/host"
	"mshell/internal/modules/mount"
	"mshell/internal/modules/text"
	"mshell/internal/storage"
	"mshell/internal/storage/sqlite"
)

// App агрегирует зависимости оболочки.
type App struct {
	Registry *core.Registry
	Store    storage.Store
	Config   config.Config
	Logger   *slog.Logger
}

// DefaultProviders возвращает модули встроенных команд.
func DefaultProviders() []core.CommandProvider {
	return []core.CommandProvider{
		&files.Module{},
		&text.Module{},
		&host.Module{},
		&mount.Module{},
		&help.Module{},
	}
}

// NewApp строит приложение: реестр команд и, если включен аудит, хранилище.
func NewApp(ctx context.Context, cfg config.Config, lg *slog.Logger) (*App, error) {
	r, err := core.NewRegistry(ctx, DefaultProviders()...)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	a := &App{Registry: r, Config: cfg, Logger: lg}
	if cfg.Audit.Enabled {
		st, err := sqlite.Open(cfg.Audit.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open audit storage: %w", err)
		}
		a.Store = st
	}
	lg.Debug("registry ready", "commands", r.Len(), "audit", cfg.Audit.Enabled)
	return a, nil
}

// NewShell создает цикл оболочки над stdin/stdout процесса или заданными потоками.
func (a *App) NewShell(in io.Reader, out io.Writer, source string) *core.Shell {
	env := core.NewEnv(out)
	if a.Config.Shell.Home != "" {
		env.Home = core.StaticHome(a.Config.Shell.Home)
	}
	opts := []core.Option{
		core.WithInput(in),
		core.WithPrompt(a.Config.Shell.Prompt),
		core.WithBanner(a.Config.Shell.Banner),
		core.WithLogger(a.Logger),
	}
	if len(a.Config.Shell.Allow) > 0 || len(a.Config.Shell.Deny) > 0 {
		opts = append(opts, core.WithAuthorizer(core.NewCommandPolicy(a.Config.Shell.Allow, a.Config.Shell.Deny)))
	}
	if a.Store != nil {
		opts = append(opts, core.WithAudit(a.Store, source, currentSubject()))
	}
	return core.NewShell(a.Registry, env, opts...)
}

// Close высвобождает ресурсы приложения.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func currentSubject() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return fmt.Sprintf("uid:%d", os.Getuid())
}
