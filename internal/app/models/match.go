package models

import "time"

// Match defines the match model based on the 'matches' table.
// A (student, volunteer) pair has at most one match row regardless of status;
// once the status leaves pending the row is immutable.
type Match struct {
	ID              string      `json:"id" db:"id"`                             // Unique identifier (UUID)
	StudentID       *string     `json:"studentId" db:"student_id"`              // Nullable if the student was deleted later
	VolunteerID     *string     `json:"volunteerId" db:"volunteer_id"`          // Nullable if the volunteer was deleted later
	ConfidenceScore int         `json:"confidenceScore" db:"confidence_score"`  // 0-100 compatibility score
	MatchReason     string      `json:"matchReason" db:"match_reason"`          // Generated human-readable justification
	Status          MatchStatus `json:"status" db:"status" example:"pending"`   // pending, approved or rejected
	ApprovedAt      *time.Time  `json:"approvedAt,omitempty" db:"approved_at"`  // Set only on approval
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student   *Student   `json:"student,omitempty"`   // Associated student record
	Volunteer *Volunteer `json:"volunteer,omitempty"` // Associated volunteer record
}
