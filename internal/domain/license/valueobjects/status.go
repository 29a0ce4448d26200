// Package valueobjects contains immutable value types for the license domain.
package valueobjects

import "fmt"

// LicenseStatus is the administrative lifecycle state of a license.
// Expiration is not a status: it is derived from the expiration timestamp at
// read time, so a license can be active and expired at once.
type LicenseStatus string

const (
	StatusActive    LicenseStatus = "active"
	StatusSuspended LicenseStatus = "suspended"
	StatusCancelled LicenseStatus = "cancelled"
)

// statusTransitions enumerates the allowed lifecycle transitions.
// Cancelled is terminal.
var statusTransitions = map[LicenseStatus][]LicenseStatus{
	StatusActive:    {StatusSuspended, StatusCancelled},
	StatusSuspended: {StatusActive, StatusCancelled},
	StatusCancelled: {},
}

// NewLicenseStatus creates a LicenseStatus from a string.
func NewLicenseStatus(s string) (LicenseStatus, error) {
	status := LicenseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid license status: %s", s)
	}
	return status, nil
}

// IsValid reports whether the status is one of the known lifecycle states.
func (s LicenseStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving to target.
func (s LicenseStatus) CanTransitionTo(target LicenseStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s LicenseStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

func (s LicenseStatus) String() string {
	return string(s)
}

// ValidStatuses returns all known lifecycle states.
func ValidStatuses() []LicenseStatus {
	return []LicenseStatus{StatusActive, StatusSuspended, StatusCancelled}
}
