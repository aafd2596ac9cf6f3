// Package doctor implements read-only health checks over the bootstrapped
// environment. Checks never mutate state; each one yields a Result the CLI
// renders with a status, a message, and an optional recommendation.
package doctor

import "github.com/condaprep/condaprep/internal/messages"

// Status classifies a check outcome.
type Status int

const (
	// StatusOK means the check passed.
	StatusOK Status = iota
	// StatusWarn means the check found something worth attention.
	StatusWarn
	// StatusFail means the check found a problem that needs fixing.
	StatusFail
)

// String returns the status label used in doctor output.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return messages.DoctorStatusOK
	case StatusWarn:
		return messages.DoctorStatusWarn
	default:
		return messages.DoctorStatusFail
	}
}

// Result is the outcome of a single health check.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}
