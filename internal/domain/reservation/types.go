package reservation

import "errors"

var ErrInvalidStatus = errors.New("invalid reservation status")

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsBlocking reports whether a reservation in this status occupies its
// rooms for the purpose of overlap checks.
func (s Status) IsBlocking() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this status.
// Completed is an administrative alias of checked_out for downstream
// eligibility; the optional checked_out -> completed step is the only
// transition allowed out of a terminal status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCheckedOut, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// BlockingStatusStrings is the set persisted statuses that participate in
// availability queries, in the form the storage layer binds directly.
func BlockingStatusStrings() []string {
	return []string{string(StatusPending), string(StatusConfirmed), string(StatusCheckedIn)}
}

// Channel is the origin of a booking request. Direct web bookings carry a
// completed payment authorization and confirm immediately; staff-assisted
// bookings start pending back-office validation.
type Channel string

const (
	ChannelWeb   Channel = "web"
	ChannelStaff Channel = "staff"
)

func (c Channel) IsValid() bool {
	return c == ChannelWeb || c == ChannelStaff
}

func (c Channel) InitialStatus() Status {
	if c == ChannelStaff {
		return StatusPending
	}
	return StatusConfirmed
}
