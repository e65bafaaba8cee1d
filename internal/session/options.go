package session

import (
	"fmt"
	"os"
	"strconv"
)

// SubmitMode selects what triggers answer evaluation.
type SubmitMode string

const (
	// ModeStrict evaluates only on an explicit commit (Enter).
	ModeStrict SubmitMode = "strict"

	// ModeLivePrefix evaluates on every input change and rejects as soon as
	// the input stops being a prefix of the expected answer.
	ModeLivePrefix SubmitMode = "live"
)

// Options configures a Session.
type Options struct {
	// SubmitMode is "strict" or "live". Default: strict.
	SubmitMode SubmitMode

	// Trim strips surrounding whitespace from the input before comparing.
	// Defaults to true for strict mode and false for live mode.
	Trim bool
}

// DefaultOptions returns strict-mode options with trimming.
func DefaultOptions() Options {
	return OptionsForMode(ModeStrict)
}

// OptionsForMode returns the options for mode with its default trimming.
func OptionsForMode(mode SubmitMode) Options {
	return Options{
		SubmitMode: mode,
		Trim:       mode == ModeStrict,
	}
}

// OptionsFromEnv builds Options from DRILL_MODE and DRILL_TRIM, falling back
// to defaults for unset values.
func OptionsFromEnv() Options {
	opts := DefaultOptions()

	if m := os.Getenv("DRILL_MODE"); m != "" {
		opts = OptionsForMode(SubmitMode(m))
	}
	if t := os.Getenv("DRILL_TRIM"); t != "" {
		if v, err := strconv.ParseBool(t); err == nil {
			opts.Trim = v
		}
	}

	return opts
}

// Validate checks that the submit mode is known.
func (o Options) Validate() error {
	switch o.SubmitMode {
	case ModeStrict, ModeLivePrefix:
		return nil
	default:
		return fmt.Errorf("unknown submit mode: %q (want %q or %q)", o.SubmitMode, ModeStrict, ModeLivePrefix)
	}
}
