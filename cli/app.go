// Package cli implements the eero command line: a tree of commands over the
// client facade, terminal prompts and output in brief, extensive, json or yaml form.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/jrsteele09/eero-client/api"
	"github.com/jrsteele09/eero-client/auth"
	"github.com/jrsteele09/eero-client/cache"
	"github.com/jrsteele09/eero-client/client"
	"github.com/jrsteele09/eero-client/internal/config"
	"github.com/jrsteele09/eero-client/sessions"
	"github.com/jrsteele09/eero-client/transport"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const appName = "eero"

// App holds the process wide state of one CLI invocation.
type App struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	version string

	globals    *pflag.FlagSet
	debug      bool
	noKeyring  bool
	output     string
	networkID  string
	configFile string

	cfg     config.Config
	logger  zerolog.Logger
	client  *client.Client
	repo    sessions.Repo
	printer *Printer
	status  *status
	prompt  *Prompter
	root    *Command
}

// AppOption defines a function type to modify the App instance.
type AppOption func(*App)

// WithIO replaces stdin, stdout and stderr.
func WithIO(in io.Reader, out, errOut io.Writer) AppOption {
	return func(a *App) {
		a.in = in
		a.out = out
		a.errOut = errOut
	}
}

// WithClient uses c instead of building a client from the configuration.
func WithClient(c *client.Client) AppOption {
	return func(a *App) {
		a.client = c
	}
}

// WithVersion sets the version the version command reports.
func WithVersion(version string) AppOption {
	return func(a *App) {
		a.version = version
	}
}

func NewApp(options ...AppOption) *App {
	a := &App{
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		version: "dev",
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(a)
	}

	a.globals = pflag.NewFlagSet(appName, pflag.ContinueOnError)
	a.globals.BoolVar(&a.debug, "debug", false, "log requests and responses to stderr")
	a.globals.BoolVar(&a.noKeyring, "no-keyring", false, "store the session in a file instead of the OS keyring")
	a.globals.StringVarP(&a.output, "output", "o", string(FormatBrief), "output format: brief, extensive, json or yaml")
	a.globals.StringVarP(&a.networkID, "network", "n", "", "network id (default: the preferred network)")
	a.globals.StringVar(&a.configFile, "config", "", "YAML config file")

	a.status = newStatus(a.errOut, isTerminal(a.errOut))
	a.prompt = NewPrompter(a.in, a.errOut)
	a.root = a.commands()
	a.root.help = a.out
	return a
}

// Run executes args (without the program name) and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	a.globals.SetInterspersed(false)
	a.globals.SetOutput(io.Discard)
	if err := a.globals.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			a.root.PrintHelp(a.out)
			return 0
		}
		return a.exitCode(&UsageError{Command: a.root, Message: err.Error()})
	}
	return a.exitCode(a.root.Execute(ctx, a.globals.Args()))
}

// flagSet returns a Flags func for a command: its own flags, built by define, plus the global flags.
func (a *App) flagSet(name string, define func(fs *pflag.FlagSet)) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
		if define != nil {
			define(fs)
		}
		fs.AddFlagSet(a.globals)
		return fs
	}
}

// setup resolves the configuration, output format and logger. It runs once, after all flags are parsed.
func (a *App) setup() error {
	if a.cfg != nil {
		return nil
	}

	cfg, err := config.New(config.WithConfigFile(a.configFile), config.WithFlags(a.globals))
	if err != nil {
		return &UsageError{Command: a.root, Message: err.Error()}
	}
	format, err := ParseFormat(cfg.GetOutput())
	if err != nil {
		return &UsageError{Command: a.root, Message: err.Error()}
	}

	a.cfg = cfg
	a.logger = newLogger(a.errOut, cfg.IsDebug())
	a.printer = NewPrinter(a.out, format)
	return nil
}

// connect returns the client, building it from the configuration on first use.
func (a *App) connect(ctx context.Context) (*client.Client, error) {
	if err := a.setup(); err != nil {
		return nil, err
	}
	if a.client != nil {
		return a.client, nil
	}

	repo, err := a.sessionRepo()
	if err != nil {
		return nil, err
	}
	a.repo = repo

	httpClient := transport.New(
		transport.WithBaseURL(a.cfg.GetBaseURL()),
		transport.WithTimeout(a.cfg.GetRequestTimeout()),
		transport.WithLogger(a.logger),
	)

	manager, err := auth.NewManager(repo, httpClient, auth.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if err := manager.Load(ctx); err != nil {
		return nil, err
	}

	apiClient, err := api.New(manager, httpClient, api.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}

	c, err := client.New(manager, apiClient,
		client.WithCache(cache.New(a.cfg.GetCacheTTL())),
		client.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

func (a *App) sessionRepo() (sessions.Repo, error) {
	if a.cfg.UseKeyring() {
		a.logger.Debug().Msg("Using keyring session storage")
		return sessions.NewKeyringRepo(sessions.WithKeyringLogger(a.logger)), nil
	}
	repo, err := sessions.NewFileRepo(a.cfg.GetCredentialsFile(), sessions.WithFileLogger(a.logger))
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("path", repo.Path()).Msg("Using file session storage")
	return repo, nil
}

// print renders v with the configured format.
func (a *App) print(v any, brief func() table) error {
	return a.printer.Print(v, brief)
}
