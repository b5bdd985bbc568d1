package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/enicarthage/library-client/config"
	"github.com/enicarthage/library-client/internal/bootstrap"
)

type commandFn func(cc *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Client *bootstrap.Client
	Stdin  io.Reader
	Stdout io.Writer
}

// errUsage marks argument errors; main exits with status 2 for them.
var errUsage = errors.New("usage")

func main() {
	cfg, err := bootstrap.LoadConfig()
	logger := bootstrap.InitLogger(os.Stderr, &cfg)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, runOptions{
		Args:   os.Args[1:],
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	stop()
	switch {
	case errors.Is(err, errUsage):
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status on bad usage
	case err != nil:
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

type runOptions struct {
	Args   []string
	Config config.AppConfig
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Client overrides the client built from Config (tests).
	Client *bootstrap.Client
}

func run(ctx context.Context, opts runOptions) error {
	if len(opts.Args) == 0 {
		printUsage(opts.Stdout)
		return errUsage
	}
	name := opts.Args[0]
	cmd, ok := commands()[name]
	if !ok {
		_, _ = fmt.Fprintf(opts.Stderr, "unknown command %q\n\n", name)
		printUsage(opts.Stderr)
		return errUsage
	}

	client := opts.Client
	if client == nil {
		var err error
		client, err = bootstrap.NewClient(ctx, bootstrap.ClientOptions{
			Config:  opts.Config,
			Logger:  opts.Logger,
			Notices: opts.Stderr,
		})
		if err != nil {
			return err
		}
		defer func() {
			if cerr := client.Close(); cerr != nil {
				opts.Logger.Warn("close client", "error", cerr)
			}
		}()
	}
	client.Start(ctx)

	return cmd.run(&commandContext{
		Ctx:    ctx,
		Logger: opts.Logger,
		Client: client,
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
	}, opts.Args[1:])
}

func commands() map[string]command {
	list := []command{
		{"login", "Sign in and remember the session", runLogin},
		{"logout", "Forget the current session", runLogout},
		{"register", "Create a new account", runRegister},
		{"whoami", "Show the signed-in user", runWhoami},
		{"menu", "List the screens available to the signed-in user", runMenu},
		{"dashboard", "Show library-wide statistics", runDashboard},
		{"profile", "Show your profile with available books and upcoming events", runProfile},
		{"books", "Browse or search the catalogue", runBooks},
		{"book", "Show one book", runBook},
		{"borrowings", "List borrowings", runBorrowings},
		{"events", "Browse or search events", runEvents},
		{"event", "Show one event", runEvent},
		{"users", "Browse or search members (staff)", runUsers},
	}
	out := make(map[string]command, len(list))
	for _, c := range list {
		out[c.name] = c
	}
	return out
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: libraryctl <command> [flags]\n\nAvailable commands:\n")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "  %-12s %s\n", name, cmds[name].description)
	}
}
