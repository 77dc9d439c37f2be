package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"mshell/internal/app"
	"mshell/internal/config"
	"mshell/internal/storage"
	"mshell/pkg/logger"
)

var (
	errAuditDisabled = errors.New("audit is disabled in config")
	errExecNoCommand = errors.New("exec requires a command")
	errExecHelp      = errors.New("help requested")
)

type options struct {
	configPath string
}

// New создает корневую CLI-команду. Без подкоманды запускается
// интерактивная сессия.
func New(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "mshell",
		Short:         "Minimal interactive command shell",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			sh := a.NewShell(cmd.InOrStdin(), cmd.OutOrStdout(), "repl")
			return sh.Run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config")

	root.AddCommand(newVersionCmd(version))
	root.AddCommand(newExecCmd(opts))
	root.AddCommand(newCommandsCmd(opts))
	root.AddCommand(newAuditCmd(opts))

	return root
}

func (o *options) open(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	lg := logger.New(cfg.Log.Level, cmd.ErrOrStderr())
	slog.SetDefault(lg)
	return app.NewApp(cmd.Context(), cfg, lg)
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version)
		},
	}
}

func newExecCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [--] <command> [args...]",
		Short: "Run one command line and exit",
		Long: "Run one command line and exit. Arguments after the command name are passed\n" +
			"to it unchanged, so flags like 'exec ls -l' need no '--'.",
		// Флаги принадлежат исполняемой команде, а не cobra.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := opts.execLine(args)
			if errors.Is(err, errExecHelp) {
				return cmd.Help()
			}
			if err != nil {
				return err
			}
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			sh := a.NewShell(strings.NewReader(""), cmd.OutOrStdout(), "exec")
			_, err = sh.Dispatch(cmd.Context(), strings.Join(line, " "))
			return err
		},
	}
}

// execLine отделяет от аргументов exec ведущие --config, --help и "--".
// При отключенном разборе флагов cobra отдает и глобальные флаги, стоящие
// перед exec, поэтому --config разбирается здесь.
func (o *options) execLine(args []string) ([]string, error) {
	for len(args) > 0 {
		switch a := args[0]; {
		case a == "--":
			args = args[1:]
			if len(args) == 0 {
				return nil, errExecNoCommand
			}
			return args, nil
		case a == "-h" || a == "--help":
			return nil, errExecHelp
		case a == "--config":
			if len(args) < 2 {
				return nil, errors.New("flag needs an argument: --config")
			}
			o.configPath = args[1]
			args = args[2:]
		case strings.HasPrefix(a, "--config="):
			o.configPath = strings.TrimPrefix(a, "--config=")
			args = args[1:]
		default:
			return args, nil
		}
	}
	return nil, errExecNoCommand
}

func newCommandsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List built-in commands as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			return writeJSON(cmd.OutOrStdout(), a.Registry.Entries())
		},
	}
}

func newAuditCmd(opts *options) *cobra.Command {
	var q storage.AuditQuery
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recorded command executions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			if a.Store == nil {
				return errAuditDisabled
			}
			if q.Limit <= 0 {
				q.Limit = a.Config.Audit.QueryLimit
			}
			events, err := a.Store.QueryAudit(cmd.Context(), q)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), events)
		},
	}
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "max records (default from config)")
	cmd.Flags().StringVar(&q.Status, "status", "", "filter by status: ok, error, denied")
	cmd.Flags().StringVar(&q.Command, "command", "", "filter by command name")
	cmd.Flags().StringVar(&q.Subject, "subject", "", "filter by subject")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
