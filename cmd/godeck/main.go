// Command godeck renders slide decks described in JSON, YAML or Markdown to
// PowerPoint, PNG and SVG.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/GoDeck/internal/config"
	"github.com/VantageDataChat/GoDeck/internal/logger"
)

// app carries state shared by every subcommand after the root pre-run.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	log    *slog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "godeck",
		Short:         "Render slide decks to PowerPoint, PNG and SVG",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.closer != nil {
				a.closer.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "config file (TOML)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "trace, debug, info, warn, error or fail (overrides config)")

	root.AddCommand(
		newRenderCmd(a),
		newWatchCmd(a),
		newImportCmd(a),
		newTypesCmd(),
		newThemesCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if !logger.ValidLevel(a.logLevel) {
			return fmt.Errorf("invalid --log-level %q", a.logLevel)
		}
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg
	a.log, a.closer = logger.New(cfg.Log.Options(), cmd.ErrOrStderr())
	a.log.Debug("config loaded", "path", a.configPath, "theme", cfg.Theme)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "godeck:", err)
		stop()
		os.Exit(1)
	}
}
