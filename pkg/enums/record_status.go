package enums

import "fmt"

// RecordStatus tracks the validation lifecycle of a performance record.
// Only validated records are considered by the stats summary.
type RecordStatus string

const (
	RecordStatusDraft     RecordStatus = "draft"
	RecordStatusValidated RecordStatus = "validated"
)

// String implements fmt.Stringer.
func (s RecordStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RecordStatus.
func (s RecordStatus) IsValid() bool {
	return s == RecordStatusDraft || s == RecordStatusValidated
}

// ParseRecordStatus converts raw input into a RecordStatus.
func ParseRecordStatus(value string) (RecordStatus, error) {
	switch RecordStatus(value) {
	case RecordStatusDraft:
		return RecordStatusDraft, nil
	case RecordStatusValidated:
		return RecordStatusValidated, nil
	}
	return "", fmt.Errorf("invalid record status %q", value)
}
