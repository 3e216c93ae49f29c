package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/iconwin/internal/config"
	"github.com/1broseidon/iconwin/internal/eventloop"
	"github.com/1broseidon/iconwin/internal/logging"
	"github.com/1broseidon/iconwin/internal/platform"
	"github.com/1broseidon/iconwin/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(runWindow(nil))
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runWindow(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "icon":
		os.Exit(runIcon(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: iconwin [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open the window and run the event loop (default)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  icon inspect        Show the native encoding of the icon")
	fmt.Fprintln(w, "  icon preview        Draw the icon in the terminal")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive icon and settings explorer")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "In the window: left press shows the wait cursor, left release the text")
	fmt.Fprintln(w, "cursor, right release restores the custom cursor. Closing the window or")
	fmt.Fprintln(w, "pressing a key (key_policy: quit) exits.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'iconwin <command> --help' for command-specific options.")
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func runWindow(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/iconwin/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: iconwin run [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open a window with the configured icon and cursor and block until it closes.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger, closer, err := logging.New(logging.Options{Level: level, FilePath: cfg.Logging.File})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	opts, err := cfg.RunOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backend, err := platform.New(platform.BackendOptions{Display: cfg.Display})
	if err != nil {
		logger.Error("failed to open windowing backend", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Close()

	if err := eventloop.Run(backend, opts, logger); err != nil {
		logger.Error("event loop failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/iconwin/config.yaml)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		fmt.Fprintln(os.Stderr, "Usage: iconwin tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Browse the icon's native encodings and edit window settings.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  Tab       Switch between Icon and Window tabs")
		fmt.Fprintln(os.Stderr, "  h/j/k/l   Move the pixel selection (Icon tab)")
		fmt.Fprintln(os.Stderr, "  b         Cycle backend encoding: x11, cocoa, win32")
		fmt.Fprintln(os.Stderr, "  t         Toggle icon/cursor target")
		fmt.Fprintln(os.Stderr, "  e         Edit window settings (Window tab)")
		fmt.Fprintln(os.Stderr, "  o         Open config in $EDITOR")
		fmt.Fprintln(os.Stderr, "  r         Reload config")
		fmt.Fprintln(os.Stderr, "  Ctrl+S    Save config")
		fmt.Fprintln(os.Stderr, "  q, Esc    Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := tui.Run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
