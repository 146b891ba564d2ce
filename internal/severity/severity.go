// Package severity provides severity level constants for issues reported
// while binding a specification document to descriptors.
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of an issue found during binding.
type Severity int

const (
	// SeverityError indicates a document construct the binder considers invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates constructs that bind imperfectly, such as a
	// schema whose artifact kind had to be guessed from partial information.
	SeverityWarning

	// SeverityInfo indicates informational messages about binding choices,
	// for example a renamed type or a derived discriminator literal.
	SeverityInfo

	// SeverityCritical indicates constructs that cannot be bound at all and
	// were skipped.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
