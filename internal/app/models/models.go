package models

// MatchStatus defines the lifecycle state of a match
type MatchStatus string

const (
	// MatchStatusPending is the initial state of a generated match suggestion
	MatchStatusPending MatchStatus = "pending"
	// MatchStatusApproved is a terminal state; the pairing is committed
	MatchStatusApproved MatchStatus = "approved"
	// MatchStatusRejected is a terminal state; the pairing was declined
	MatchStatusRejected MatchStatus = "rejected"
)

// IsTerminal reports whether no further transitions are permitted from the status
func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusApproved || s == MatchStatusRejected
}

// MatchAction defines the requested state transition for a pending match
type MatchAction string

const (
	MatchActionApprove MatchAction = "approve"
	MatchActionReject  MatchAction = "reject"
)

// Coordinates holds a geocoded point in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
