package domain

import "fmt"

// AmbiguousPeriodError indicates the caller supplied two raw statement
// records for the same fiscal period. The normalizer never merges or picks
// one; the caller must resolve the conflict upstream.
type AmbiguousPeriodError struct {
	Period Period
}

func (e *AmbiguousPeriodError) Error() string {
	return fmt.Sprintf("ambiguous statement data: duplicate fiscal period %s", e.Period)
}

// InvariantViolationError indicates canonical input reaching the ratio engine
// violates its ordering or uniqueness contract. This is an integration bug,
// not a data gap, and aborts the whole computation.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return "canonical period invariant violated: " + e.Reason
}
