package entity

// Status represents the lifecycle state shared by orders and service records.
type Status string

const (
	// StatusDraft is the initial work-in-progress state.
	StatusDraft Status = "draft"
	// StatusSubmitted means the record has been handed to the counterparty.
	StatusSubmitted Status = "submitted"
	// StatusConfirmed means the counterparty accepted the record.
	StatusConfirmed Status = "confirmed"
	// StatusInvalid is the terminal voided state.
	StatusInvalid Status = "invalid"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the Status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusConfirmed, StatusInvalid:
		return true
	default:
		return false
	}
}

// ValidStatuses lists every lifecycle state, used for validation messages.
func ValidStatuses() []Status {
	return []Status{StatusDraft, StatusSubmitted, StatusConfirmed, StatusInvalid}
}
