package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"boxbreath/internal"
	"boxbreath/internal/breath"
	"boxbreath/internal/log"
	"boxbreath/internal/settings"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath  string
	historyPath string
	noHistory   bool
	logFile     string
	logLevel    string
	in          float64
	holdIn      float64
	out         float64
	holdOut     float64
	color       string
	hideTimer   bool
}

func rootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           settings.AppName,
		Short:         "Guided box breathing in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := setupLogging(flags.logFile, flags.logLevel)
			if err != nil {
				return err
			}
			defer closeLog()

			s, err := settings.Load(flags.configPath)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, &s, flags); err != nil {
				return err
			}

			historyPath, err := resolveHistoryPath(flags)
			if err != nil {
				return err
			}
			return run(s, historyPath)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "YAML file with startup settings (default: user config dir)")
	f.StringVar(&flags.historyPath, "history", "", "session history database (default: user config dir)")
	f.BoolVar(&flags.noHistory, "no-history", false, "do not record sessions")
	f.Float64Var(&flags.in, "in", 0, "breathe in seconds")
	f.Float64Var(&flags.holdIn, "hold-in", 0, "hold after breathing in, seconds")
	f.Float64Var(&flags.out, "out", 0, "breathe out seconds")
	f.Float64Var(&flags.holdOut, "hold-out", 0, "hold after breathing out, seconds")
	f.StringVar(&flags.color, "color", "", "CSS color for the dot and trail")
	f.BoolVar(&flags.hideTimer, "hide-timer", false, "start with the elapsed timer hidden")
	addLogFlags(cmd, &flags)

	cmd.AddCommand(historyCmd(&flags))
	return cmd
}

func addLogFlags(cmd *cobra.Command, flags *rootFlags) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.logFile, "log-file", "", "write JSON logs to this file")
	pf.StringVar(&flags.logLevel, "log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
}

// applyFlags overrides file settings with the flags the user actually set.
func applyFlags(cmd *cobra.Command, s *settings.Settings, flags rootFlags) error {
	durations := []struct {
		name  string
		value float64
		dst   *time.Duration
	}{
		{"in", flags.in, &s.Breath.In},
		{"hold-in", flags.holdIn, &s.Breath.HoldIn},
		{"out", flags.out, &s.Breath.Out},
		{"hold-out", flags.holdOut, &s.Breath.HoldOut},
	}
	for _, d := range durations {
		if !cmd.Flags().Changed(d.name) {
			continue
		}
		if err := settings.CheckSeconds(d.value); err != nil {
			return fmt.Errorf("--%s %v: %w", d.name, d.value, err)
		}
		dur, err := breath.Seconds(d.value)
		if err != nil {
			return fmt.Errorf("--%s %v: %w", d.name, d.value, err)
		}
		*d.dst = dur
	}

	if cmd.Flags().Changed("color") {
		if err := settings.ValidateColor(flags.color); err != nil {
			return fmt.Errorf("--color %q: %w", flags.color, err)
		}
		s.Breath.Color = flags.color
	}
	if cmd.Flags().Changed("hide-timer") {
		s.HideTimer = flags.hideTimer
	}
	return nil
}

func resolveHistoryPath(flags rootFlags) (string, error) {
	if flags.noHistory {
		return "", nil
	}
	if flags.historyPath != "" {
		return flags.historyPath, nil
	}
	return settings.DefaultHistoryPath()
}

func setupLogging(path, level string) (func(), error) {
	if path == "" {
		log.Setup(level, io.Discard)
		return func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Setup(level, file)
	return func() { file.Close() }, nil
}

func run(s settings.Settings, historyPath string) error {
	m, err := internal.NewModel(internal.Options{
		Settings:    s,
		HistoryPath: historyPath,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	m.SetSender(p.Send)

	log.WithComponent("main").Info("starting", "history", historyPath != "")
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
