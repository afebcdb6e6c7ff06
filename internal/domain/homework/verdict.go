// internal/domain/homework/verdict.go
package homework

import "fmt"

// Verdict is the review outcome reported for a submission.
type Verdict string

const (
	VerdictApproved  Verdict = "approved"
	VerdictReviewing Verdict = "reviewing"
	VerdictRejected  Verdict = "rejected"
)

// Verdicts lists every known verdict.
var Verdicts = []Verdict{VerdictApproved, VerdictReviewing, VerdictRejected}

// Message returns the text shown to the user for v.
func (v Verdict) Message() string {
	switch v {
	case VerdictApproved:
		return "The work has been reviewed: the reviewer liked everything. Hooray!"
	case VerdictReviewing:
		return "The work has been taken for review by the reviewer."
	case VerdictRejected:
		return "The work has been reviewed: the reviewer has comments."
	default:
		return ""
	}
}

// ParseVerdict maps the raw API status onto a Verdict.
func ParseVerdict(status string) (Verdict, error) {
	v := Verdict(status)
	switch v {
	case VerdictApproved, VerdictReviewing, VerdictRejected:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
}
