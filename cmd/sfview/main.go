package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sfview/internal/config"
	"sfview/internal/debuglog"
	"sfview/internal/feed"
	"sfview/internal/launcher"
	"sfview/internal/readstate"
	"sfview/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	urlFile    string
	onlyNew    bool
)

var rootCmd = &cobra.Command{
	Use:   "sfview [feedfile ...]",
	Short: "Interactive viewer for feed files",
	Long: `sfview browses one or more feed files in a two-pane terminal
interface. With no arguments it reads a single feed from stdin.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file")
	rootCmd.Flags().StringVar(&urlFile, "url-file", "", "file of read URLs, one per line (overrides config)")
	rootCmd.Flags().BoolVar(&onlyNew, "new-only", false, "show only feeds with new items in the sidebar")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if urlFile != "" {
		cfg.URLFile = urlFile
	}
	if onlyNew {
		cfg.OnlyNew = true
	}

	if err := debuglog.Setup(debuglog.ParseLevel(cfg.Debug)); err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer debuglog.Close()

	l := launcher.New(cfg)
	tracker := readstate.NewTracker(cfg.URLFile, l)
	if err := tracker.Load(); err != nil {
		return fmt.Errorf("reading url file: %w", err)
	}

	store := feed.NewStore(tracker, cfg.LazyLoad)
	defer store.Close()

	var opts []tea.ProgramOption
	opts = append(opts, tea.WithAltScreen())
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if len(args) > 0 {
		for _, path := range args {
			store.AddFile(path)
		}
		if err := store.Load(); err != nil {
			return err
		}
	} else {
		// Feed data occupies stdin, so keyboard input must come from
		// the controlling terminal instead.
		if err := store.AddStream("stdin", os.Stdin); err != nil {
			return err
		}
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return fmt.Errorf("opening terminal: %w", err)
		}
		defer tty.Close()
		opts = append(opts, tea.WithInput(tty))
	}
	l.SetFeedPath(store.ActivePath())

	app := tui.NewApp(cfg, store, tracker, l)
	p := tea.NewProgram(app, opts...)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigc {
			p.Send(tui.Signal(sig))
		}
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	signal.Stop(sigc)

	if err := app.FatalErr(); err != nil {
		return err
	}
	if signo := app.Signo(); signo != 0 {
		debuglog.Infof("exiting on signal %d", signo)
		os.Exit(128 + signo)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
