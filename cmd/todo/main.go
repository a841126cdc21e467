package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(2)
	}

	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	logger, err := logging.New(os.Stderr, opts)
	if err != nil {
		ui.Fail(os.Stderr, "logging: "+err.Error())
		os.Exit(2)
	}
	ui.SetTheme(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stdout)
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:  cfg.Group,
		Store:  store.New(cfg.Dir, cfg.Name, logger),
		Logger: logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
