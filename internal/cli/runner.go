package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todomenu/internal/config"
	"github.com/idilsaglam/todomenu/internal/logging"
	"github.com/idilsaglam/todomenu/internal/prompt"
	"github.com/idilsaglam/todomenu/internal/session"
	"github.com/idilsaglam/todomenu/internal/store/jsonstore"
	"github.com/idilsaglam/todomenu/internal/ui"
)

// Options are the root flags. Each one only overrides a config value when it
// was set explicitly.
type Options struct {
	ConfigFile string
	File       string
	ASCII      bool
	NoColor    bool
	LogFile    string
	LogLevel   string
}

// IO binds the command to a terminal. Zero values use the process stdio.
type IO struct {
	In     io.Reader
	Out    io.Writer
	Prompt prompt.Prompter
}

// NewRootCmd builds the todo command.
func NewRootCmd(stdio IO) *cobra.Command {
	return newRootCmd(stdio, &Options{})
}

func newRootCmd(stdio IO, opt *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Interactive todo list kept in todos.json",
		Long:         "todo shows a menu to add, view, complete and delete todos.\nThe list is saved to todos.json in the current directory after every change.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opt)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, stdio)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opt.ConfigFile, "config", config.DefaultConfigFile, "TOML config file")
	f.StringVar(&opt.File, "file", jsonstore.DefaultPath, "todo file")
	f.BoolVar(&opt.ASCII, "ascii", false, "use [x]/[ ] instead of emoji markers")
	f.BoolVar(&opt.NoColor, "no-color", false, "disable colored output")
	f.StringVar(&opt.LogFile, "log-file", "", "write diagnostics to this file")
	f.StringVar(&opt.LogLevel, "log-level", logging.DefaultLevel, "diagnostics level (debug, info, warn, error)")
	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd(IO{}).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

// resolveConfig layers explicitly set flags over the config file.
func resolveConfig(cmd *cobra.Command, opt *Options) (config.Config, error) {
	flags := cmd.Flags()
	cfg, err := config.Load(opt.ConfigFile, flags.Changed("config"))
	if err != nil {
		return config.Config{}, err
	}
	if flags.Changed("file") {
		cfg.File = opt.File
	}
	if flags.Changed("ascii") {
		cfg.ASCII = opt.ASCII
	}
	if flags.Changed("no-color") {
		cfg.Color = !opt.NoColor
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opt.LogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opt.LogLevel
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, stdio IO) error {
	logger, closer, err := logging.Open(cfg.LogOptions())
	if err != nil {
		return err
	}
	defer closer.Close()

	out := stdio.Out
	if out == nil {
		out = os.Stdout
	}
	p := stdio.Prompt
	if p == nil {
		p = prompt.NewTerminal(stdio.In, out)
	}

	store := jsonstore.New(cfg.File, logger)
	logger.Info("starting", "file", store.Path(), "theme", ui.ThemeFor(cfg.ASCII).Name)

	s := session.New(store, p, out, session.Options{
		Theme:  ui.ThemeFor(cfg.ASCII),
		Color:  cfg.Color,
		Logger: logger,
	})
	s.Run(ctx)
	logger.Info("finished", "todos", len(s.Todos()))
	return nil
}
