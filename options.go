package shader

import (
	"fmt"
	"log/slog"
	"os"
)

// FailurePolicy decides what happens when a source file cannot be read,
// a diagnostic log cannot be decoded, or a reload fails.
type FailurePolicy int

const (
	// FailFast terminates through the FatalFunc. This is the default and
	// matches the behaviour live-coding setups that halt on a broken shader
	// rely on.
	FailFast FailurePolicy = iota
	// ReturnErrors hands every failure back to the caller. A failed reload
	// keeps the previous program bound and usable.
	ReturnErrors
)

func (p FailurePolicy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case ReturnErrors:
		return "return-errors"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParsePolicy parses the String form of a FailurePolicy.
func ParsePolicy(s string) (FailurePolicy, error) {
	switch s {
	case "fail-fast", "":
		return FailFast, nil
	case "return-errors":
		return ReturnErrors, nil
	default:
		return FailFast, fmt.Errorf("unknown failure policy %q", s)
	}
}

// FatalFunc is called with an unrecoverable error under FailFast.
// The default logs the error and exits the process with status 1. If a
// FatalFunc returns, the error is returned to the caller as well.
type FatalFunc func(err error)

// Option configures an Engine or Program.
type Option func(*settings)

type settings struct {
	policy     FailurePolicy
	logger     *slog.Logger
	fatal      FatalFunc
	legacyLeak bool
	inPlace    bool
}

// WithPolicy sets the failure policy.
func WithPolicy(p FailurePolicy) Option {
	return func(s *settings) { s.policy = p }
}

// WithLogger sets the logger used for reload notes and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithFatal replaces the function that terminates the process under FailFast.
func WithFatal(f FatalFunc) Option {
	return func(s *settings) { s.fatal = f }
}

// WithLegacyStageLeaks keeps shader stages allocated when compiling the
// second stage or linking fails, and keeps the stage that failed to compile.
// Only useful for reproducing resource accounting of older builds.
func WithLegacyStageLeaks() Option {
	return func(s *settings) { s.legacyLeak = true }
}

// WithInPlaceReload makes Reload relink the current program object instead
// of building a fresh one. If the relink fails, the sources of the last
// successful link are linked into the same object again, so the handle stays
// usable.
func WithInPlaceReload() Option {
	return func(s *settings) { s.inPlace = true }
}

func newSettings(opts []Option) settings {
	s := settings{
		policy: FailFast,
		logger: defaultLogger,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.fatal == nil {
		logger := s.logger
		s.fatal = func(err error) {
			logger.Error("shader: unrecoverable failure", "err", err)
			os.Exit(1)
		}
	}
	return s
}

// fail routes err through the FatalFunc under FailFast and returns it.
func (s *settings) fail(err error) error {
	if s.policy == FailFast {
		s.fatal(err)
	}
	return err
}
