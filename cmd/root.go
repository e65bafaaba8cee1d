package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/drill/internal/render"
	"github.com/abhisek/drill/internal/scheduler"
	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
)

// defaultJournal selects the XDG journal path when passed to --journal.
const defaultJournal = "default"

var rootCmd = &cobra.Command{
	Use:   "drill",
	Short: "Adaptive drill client",
	Long: "drill shows prompts chosen by a remote scheduler, judges typed answers " +
		"and reports each outcome back so the scheduler can pick the next prompt.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("server", "", "Scheduler base URL (overrides DRILL_SERVER)")
	flags.Duration("timeout", 0, "Per-request timeout (overrides DRILL_TIMEOUT)")
	flags.Int("retries", 0, "Attempts per request when the scheduler is unavailable (overrides DRILL_RETRY_ATTEMPTS)")
	flags.String("mode", "", "Submit mode: strict or live (overrides DRILL_MODE)")
	flags.Bool("trim", false, "Trim surrounding whitespace before comparing (overrides DRILL_TRIM)")
	flags.Int("histograms", 0, "Number of histograms: 1 (weight) or 2 (weight and size) (overrides DRILL_HISTOGRAMS)")
	flags.String("axis", "", "Histogram axis: explicit or implied (overrides DRILL_AXIS)")
	flags.String("journal", "", `Exchange journal file, or "default" for the XDG data path (overrides DRILL_JOURNAL)`)

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(versionCmd)
}

// schedulerConfig returns the environment config with flag overrides.
func schedulerConfig(cmd *cobra.Command) (scheduler.Config, error) {
	cfg := scheduler.ConfigFromEnv()
	flags := cmd.Flags()
	if v, _ := flags.GetString("server"); v != "" {
		cfg.BaseURL = v
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("retries") {
		cfg.Retry.MaxAttempts, _ = flags.GetInt("retries")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("scheduler config: %w", err)
	}
	return cfg, nil
}

// sessionOptions returns the environment options with flag overrides. An
// explicit --mode resets trimming to that mode's default unless --trim is
// also given.
func sessionOptions(cmd *cobra.Command) (session.Options, error) {
	opts := session.OptionsFromEnv()
	flags := cmd.Flags()
	if v, _ := flags.GetString("mode"); v != "" {
		opts = session.OptionsForMode(session.SubmitMode(v))
	}
	if flags.Changed("trim") {
		opts.Trim, _ = flags.GetBool("trim")
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("session options: %w", err)
	}
	return opts, nil
}

// renderOptions returns the environment options with flag overrides.
func renderOptions(cmd *cobra.Command) (render.Options, error) {
	opts := render.OptionsFromEnv()
	flags := cmd.Flags()
	if flags.Changed("histograms") {
		opts.Histograms, _ = flags.GetInt("histograms")
	}
	if v, _ := flags.GetString("axis"); v != "" {
		opts.Axis = render.AxisMode(v)
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("render options: %w", err)
	}
	return opts, nil
}

// resolveJournalPath returns the journal path using --journal (highest
// priority), then DRILL_JOURNAL. It returns "" when journaling is off and
// required is false; when required it falls back to the default XDG path.
func resolveJournalPath(cmd *cobra.Command, required bool) (string, error) {
	p, _ := cmd.Flags().GetString("journal")
	switch {
	case p == defaultJournal:
		return store.DefaultDBPath()
	case p != "":
		return p, store.EnsureDir(p)
	case os.Getenv("DRILL_JOURNAL") != "" || required:
		return store.DefaultDBPath()
	}
	return "", nil
}
