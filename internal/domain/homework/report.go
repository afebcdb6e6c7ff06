// internal/domain/homework/report.go
package homework

import (
	"encoding/json"
	"fmt"
	"math"
)

// JSON keys of the review API payload.
const (
	KeyHomeworks    = "homeworks"
	KeyCurrentDate  = "current_date"
	KeyHomeworkName = "homework_name"
	KeyStatus       = "status"
)

// SubmissionReport is a validated API response.
type SubmissionReport struct {
	Homeworks      []any // most recent first
	CurrentDate    int64
	HasCurrentDate bool
}

// Latest returns the most recent homework record, or false when the window is empty.
func (r *SubmissionReport) Latest() (any, bool) {
	if len(r.Homeworks) == 0 {
		return nil, false
	}
	return r.Homeworks[0], true
}

// CurrentDate extracts the server timestamp from a raw report.
// It is best-effort: any shape problem simply yields false.
func CurrentDate(raw any) (int64, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return 0, false
	}
	return toInt64(m[KeyCurrentDate])
}

// ValidateReport checks the shape of a decoded API response.
// An empty homeworks list is valid: nothing changed in the polling window.
func ValidateReport(raw any) (*SubmissionReport, error) {
	const op = "ValidateReport"

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, responseError(op, "", ErrWrongType, "report is %s, want object", typeName(raw))
	}
	hwRaw, ok := m[KeyHomeworks]
	if !ok {
		return nil, responseError(op, KeyHomeworks, ErrMissingKey, "report has no %q", KeyHomeworks)
	}
	homeworks, ok := hwRaw.([]any)
	if !ok {
		return nil, responseError(op, KeyHomeworks, ErrWrongType, "%q is %s, want array", KeyHomeworks, typeName(hwRaw))
	}

	report := &SubmissionReport{Homeworks: homeworks}
	report.CurrentDate, report.HasCurrentDate = toInt64(m[KeyCurrentDate])
	return report, nil
}

// RenderStatus builds the notification text for a single homework record.
func RenderStatus(record any) (string, error) {
	const op = "RenderStatus"

	m, ok := record.(map[string]any)
	if !ok {
		return "", responseError(op, "", ErrWrongType, "homework is %s, want object", typeName(record))
	}

	name, _ := m[KeyHomeworkName].(string)
	if name == "" {
		return "", responseError(op, KeyHomeworkName, ErrMissingKey, "homework has no name")
	}

	statusRaw, ok := m[KeyStatus]
	if !ok {
		return "", responseError(op, KeyStatus, ErrMissingKey, "homework %q has no status", name)
	}
	status, ok := statusRaw.(string)
	if !ok {
		return "", responseError(op, KeyStatus, ErrWrongType, "status of %q is %s, want string", name, typeName(statusRaw))
	}

	verdict, err := ParseVerdict(status)
	if err != nil {
		return "", &Error{Kind: KindResponse, Op: op, Key: KeyStatus, Err: err}
	}
	return fmt.Sprintf("Changed status of submission \"%s\". %s", name, verdict.Message()), nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
