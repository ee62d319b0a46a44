package main

import (
	"fmt"

	"github.com/sandeepkv93/todocal/internal/model"
	"github.com/sandeepkv93/todocal/internal/query"
	"github.com/sandeepkv93/todocal/internal/update"
	"github.com/sandeepkv93/todocal/internal/views"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print todos, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print todos due today",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print todos due this Sunday to Saturday week",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Print a month calendar",
	Args:  cobra.NoArgs,
	RunE:  runGrid,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var (
	listFilter string
	gridMonth  string
)

func init() {
	rootCmd.AddCommand(listCmd, todayCmd, weekCmd, gridCmd, configCmd)
	listCmd.Flags().StringVar(&listFilter, "filter", "", "all, pending or completed (default from config)")
	gridCmd.Flags().StringVar(&gridMonth, "month", "", "month to print as `YYYY-MM` (default start month)")
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	if cmd.Flags().Changed("filter") {
		a.coord.SetFilter(listFilter)
	}
	snap, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "total %d | pending %d | completed %d | filter %s\n",
		snap.Stats.Total, snap.Stats.Pending, snap.Stats.Completed, snap.State.Filter)
	if len(snap.List) == 0 {
		fmt.Fprintln(out, "no todos match this filter")
		return nil
	}
	fmt.Fprintln(out, views.PlainTodoTable(update.RowsFor(snap.List, snap.Today)))
	return nil
}

func runToday(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}
	printItems(cmd, "Today: "+model.FormatLong(snap.Today), snap.TodayItems, snap.Today)
	return nil
}

func runWeek(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}
	heading := fmt.Sprintf("Week of %s to %s", model.FormatShort(snap.WeekStart), model.FormatShort(snap.WeekEnd))
	printItems(cmd, heading, snap.WeekItems, snap.Today)
	return nil
}

func printItems(cmd *cobra.Command, heading string, items []query.Item, today model.Date) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, heading)
	if len(items) == 0 {
		fmt.Fprintln(out, "nothing due")
		return
	}
	fmt.Fprintln(out, views.PlainTodoTable(update.RowsFor(items, today)))
}

func runGrid(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	if gridMonth != "" {
		m, err := model.ParseMonth(gridMonth)
		if err != nil {
			return fmt.Errorf("--month: %w", err)
		}
		a.coord.GotoMonth(m)
	}
	snap, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), views.PlainCalendar(update.CalendarFor(snap.Grid, model.Date{}, 14)))
	return nil
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return cfg.Encode(cmd.OutOrStdout())
}
