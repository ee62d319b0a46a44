// Package main implements the todocal terminal calendar and its plain-text
// printers.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todocal/internal/scheduler"
	"github.com/sandeepkv93/todocal/internal/update"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(execute())
}

// execute runs the root command and reports a failure once on stderr.
func execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "todocal: %v\n", err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:           "todocal",
	Short:         "Todo list with a month calendar",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var (
	flagConfig string
	flagToday  string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default $TODOCAL_CONFIG or the user config dir)")
	pf.Bool("seed", false, "load sample todos for the start month and the next")
	pf.Int64("seed-value", 0, "random seed for --seed (default from config)")
	pf.StringVar(&flagToday, "today", "", "pin today to `YYYY-MM-DD`")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	engine := scheduler.NewEngine(a.cfg.RolloverBuffer)
	engine.Start()
	defer engine.Stop()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	m := update.NewModel(ctx, update.Deps{
		Coordinator: a.coord,
		Scheduler:   engine,
		Logger:      a.logger,
		Keys:        a.cfg.Keys,
		Now:         a.now,
	})
	a.logger.Info("starting", "backend", a.cfg.Backend, "view", a.cfg.DefaultView)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	a.logger.Info("stopped", "dropped_alarms", engine.Dropped())
	return nil
}
