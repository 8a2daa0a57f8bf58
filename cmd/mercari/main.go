package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"mercari/internal/api"
	"mercari/internal/config"
	"mercari/internal/images"
	"mercari/internal/telemetry"
	"mercari/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// imageTimeout bounds a single image load.
const imageTimeout = 5 * time.Second

// cliConfig holds the parsed command line on top of environment defaults.
type cliConfig struct {
	config.Client
	plain bool
}

func parseFlags(args []string) (cliConfig, error) {
	cfg := cliConfig{Client: config.LoadClient()}

	fs := flag.NewFlagSet("mercari", flag.ContinueOnError)
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "items API base URL (env "+config.APIURLEnv+")")
	fs.StringVar(&cfg.ImageHost, "image-host", cfg.ImageHost, "image host base URL (env "+config.ImageHostEnv+")")
	fs.StringVar(&cfg.FrontendURL, "frontend", cfg.FrontendURL, "frontend base URL for the placeholder image (env "+config.FrontendURLEnv+")")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file (env "+config.LogFileEnv+")")
	fs.BoolVar(&cfg.Debug, "debug", false, "log successful fetches")
	fs.BoolVar(&cfg.plain, "plain", false, "print the item list once instead of starting the TUI")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: mercari [flags]\n       mercari add -name NAME -category CATEGORY -image FILE\n\n")
		fmt.Fprintf(fs.Output(), "Browse marketplace items from the items API.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func listConfig(cfg cliConfig, loadImages bool) ui.ItemListConfig {
	lc := ui.ItemListConfig{
		Source:         api.NewClient(cfg.APIURL),
		ImageHost:      cfg.ImageHost,
		PlaceholderURL: cfg.PlaceholderURL(),
		Debug:          cfg.Debug,
	}
	if loadImages {
		lc.Images = images.NewLoader(imageTimeout)
	}
	return lc
}

func run(ctx context.Context, cfg cliConfig) error {
	tp, err := telemetry.Setup(ctx, "mercari")
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer tp.Shutdown(context.Background())

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if cfg.plain || !interactive {
		return runPlain(cfg)
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(os.TempDir(), "mercari.log")
	}
	f, err := tea.LogToFile(logPath, "mercari")
	if err != nil {
		return fmt.Errorf("log file %q: %w", logPath, err)
	}
	defer f.Close()

	model := ui.NewAppModel(listConfig(cfg, true))
	defer model.Close()
	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// runPlain renders the list once to stdout. Diagnostics go to stderr.
func runPlain(cfg cliConfig) error {
	loaded := false
	v := ui.NewItemListView(listConfig(cfg, false), true, func() { loaded = true })
	defer v.Close()
	if cmd := v.Init(); cmd != nil {
		v.Update(cmd())
	}
	if !loaded {
		return errors.New("items could not be loaded")
	}
	fmt.Println(v.View())
	return nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("mercari: ")

	if len(os.Args) > 1 && os.Args[1] == "add" {
		if err := runAdd(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "mercari add: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mercari: %v\n", err)
		os.Exit(2)
	}
	if err := run(context.Background(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "mercari: %v\n", err)
		os.Exit(1)
	}
}
