package main

import (
	"testing"
	"time"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/sandeepkv93/todocal/internal/config"
	"github.com/spf13/pflag"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"todocal": main,
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("TODOCAL_CONFIG", env.WorkDir+"/missing.toml")
			return nil
		},
	})
}

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "todocal" {
		t.Fatalf("expected root command name todocal, got %q", rootCmd.Use)
	}
}

func TestClockForPinsDate(t *testing.T) {
	now, err := clockFor("2025-06-11")
	if err != nil {
		t.Fatalf("clockFor: %v", err)
	}
	got := now()
	if got.Year() != 2025 || got.Month() != time.June || got.Day() != 11 {
		t.Fatalf("unexpected pinned time: %v", got)
	}
	if _, err := clockFor("2025-13-01"); err == nil {
		t.Fatalf("expected error for invalid date")
	}
	if now, err := clockFor(""); err != nil || now == nil {
		t.Fatalf("expected wall clock, got %v", err)
	}
}

func TestApplyFlagsOnlyChanged(t *testing.T) {
	newFlags := func() *pflag.FlagSet {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		fs.Bool("seed", false, "")
		fs.Int64("seed-value", 0, "")
		return fs
	}

	base := config.Default()
	base.Seed = true
	base.SeedValue = 9
	if got := applyFlags(base, newFlags()); !got.Seed || got.SeedValue != 9 {
		t.Fatalf("unset flags must keep config values, got %+v", got)
	}

	fs := newFlags()
	if err := fs.Parse([]string{"--seed=false", "--seed-value", "3"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := applyFlags(base, fs); got.Seed || got.SeedValue != 3 {
		t.Fatalf("set flags must win, got seed=%v value=%d", got.Seed, got.SeedValue)
	}
}
