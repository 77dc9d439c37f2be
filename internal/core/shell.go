package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"mshell/internal/storage"
)

// ExitCommand завершает сессию; в реестре не регистрируется.
const ExitCommand = "exit"

// Shell реализует цикл чтения и исполнения команд. Одновременно исполняется
// не более одной команды.
type Shell struct {
	registry *Registry
	env      *Env
	in       *bufio.Reader
	prompt   string
	banner   string
	audit    AuditSink
	authz    Authorizer
	source   string
	subject  string
	logger   *slog.Logger
}

// Option настраивает Shell.
type Option func(*Shell)

// WithInput задает источник строк (по умолчанию os.Stdin).
func WithInput(r io.Reader) Option {
	return func(s *Shell) { s.in = bufio.NewReader(r) }
}

// WithPrompt задает строку приглашения.
func WithPrompt(prompt string) Option {
	return func(s *Shell) { s.prompt = prompt }
}

// WithBanner задает приветствие, печатаемое при старте Run.
func WithBanner(banner string) Option {
	return func(s *Shell) { s.banner = banner }
}

// WithAudit включает запись аудита; source и subject попадают в каждое событие.
func WithAudit(sink AuditSink, source, subject string) Option {
	return func(s *Shell) {
		s.audit = sink
		s.source = source
		s.subject = subject
	}
}

// WithAuthorizer включает проверку политики перед исполнением команды.
func WithAuthorizer(a Authorizer) Option {
	return func(s *Shell) { s.authz = a }
}

// WithLogger задает логгер.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Shell) { s.logger = lg }
}

// NewShell создает цикл поверх реестра и окружения.
func NewShell(registry *Registry, env *Env, opts ...Option) *Shell {
	s := &Shell{
		registry: registry,
		env:      env,
		prompt:   "> ",
		source:   "repl",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.in == nil {
		s.in = bufio.NewReader(os.Stdin)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if env.Commands == nil {
		env.Commands = registry
	}
	return s
}

// Run читает строки до exit, конца ввода или отмены контекста.
// Ошибки команд не прерывают цикл; возвращается только ошибка чтения.
func (s *Shell) Run(ctx context.Context) error {
	if s.banner != "" {
		fmt.Fprintln(s.env.Out, s.banner)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.env.Out, s.prompt)

		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		if !s.Execute(ctx, line) {
			s.logger.Debug("session finished", "reason", "exit")
			return nil
		}
		if err != nil {
			s.logger.Debug("session finished", "reason", "eof")
			return nil
		}
	}
}

// Execute разбирает и исполняет одну строку. Возвращает false, если
// строка является командой exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	cont, _ := s.Dispatch(ctx, line)
	return cont
}

// Dispatch исполняет строку так же, как цикл, и дополнительно возвращает
// ошибку команды (уже выведенную как "Error: ..." или "Unknown command: ...").
func (s *Shell) Dispatch(ctx context.Context, line string) (bool, error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return true, nil
	}
	name, args := tokens[0], tokens[1:]
	if name == ExitCommand {
		return false, nil
	}

	spec, ok := s.registry.Lookup(name)
	if !ok {
		// Неизвестная команда ничего не меняет, в том числе журнал аудита.
		fmt.Fprintf(s.env.Out, "Unknown command: %s\n", name)
		s.logger.Debug("unknown command", "cmd", name)
		return true, fmt.Errorf("%s: %w", name, ErrUnknownCommand)
	}
	run := s.startRun(spec.Name, args)
	if s.authz != nil {
		if err := s.authz.Authorize(Subject{Source: s.source, ID: s.subject}, spec.Name); err != nil {
			fmt.Fprintf(s.env.Out, "Error: %v\n", err)
			s.writeAudit(ctx, run, StatusDenied, err)
			return true, err
		}
	}

	if err := s.invoke(ctx, spec, args); err != nil {
		fmt.Fprintf(s.env.Out, "Error: %v\n", err)
		s.logger.Debug("command failed", "cmd", name, "err", err)
		s.writeAudit(ctx, run, StatusError, err)
		return true, err
	}
	s.writeAudit(ctx, run, StatusOK, nil)
	return true, nil
}

func (s *Shell) invoke(ctx context.Context, spec CommandSpec, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("command panicked", "cmd", spec.Name, "panic", r)
			err = fmt.Errorf("%s: internal error: %v", spec.Name, r)
		}
	}()
	return spec.Handler(ctx, s.env, args)
}

// startRun запоминает команду, каталог и время старта для аудита.
func (s *Shell) startRun(command string, args []string) storage.AuditEvent {
	ev := storage.AuditEvent{
		Subject: s.subject,
		Source:  s.source,
		Command: command,
		Args:    args,
		TS:      time.Now().UTC(),
	}
	if s.audit != nil && s.env.WorkDir != nil {
		if cwd, err := s.env.WorkDir.Getwd(); err == nil {
			ev.Cwd = cwd
		}
	}
	return ev
}

func (s *Shell) writeAudit(ctx context.Context, ev storage.AuditEvent, status string, cmdErr error) {
	if s.audit == nil {
		return
	}
	ev.RequestID = newRequestID()
	ev.Status = status
	ev.DurationMS = time.Since(ev.TS).Milliseconds()
	if cmdErr != nil {
		ev.Error = cmdErr.Error()
	}
	if err := s.audit.Write(ctx, ev); err != nil {
		s.logger.Warn("audit write failed", "cmd", ev.Command, "err", err)
	}
}
