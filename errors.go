package levelset

import "fmt"

// ConfigurationError indicates that the engine or a speed field was asked
// to run with parameters that cannot produce a valid segmentation: an
// oversized Gaussian kernel, an unimplemented speed-field method, or a
// missing required input.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("levelset: configuration error: %s", e.Msg)
}

// DomainError indicates that a speed field's statistics are degenerate,
// most commonly because an initialization mask left Ain or Aout at zero.
// It is detected at speed-field construction, before the engine ever
// calls Run, so callers can treat it the same way as a ConfigurationError.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("levelset: domain error: %s", e.Msg)
}

// InvariantViolation is raised (via panic) by the consistency checker when
// the phi grid and boundary lists have fallen out of agreement. It
// indicates a bug in the engine, not a recoverable runtime condition.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("levelset: invariant violation: %s", e.Msg)
}
