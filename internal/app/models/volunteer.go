package models

import "time"

// Volunteer defines the volunteer model based on the 'volunteers' table
type Volunteer struct {
	ID                string       `json:"id" db:"id"`                                        // Unique identifier (UUID)
	FullName          string       `json:"fullName" db:"full_name" example:"Yuri Abramov"`    // Volunteer's full name
	Email             string       `json:"email" db:"email"`                                  // Contact email
	Phone             string       `json:"phone" db:"phone"`                                  // Contact phone
	City              string       `json:"city" db:"city" example:"Haifa"`                    // Free-text city name
	NativeLanguage    string       `json:"nativeLanguage" db:"native_language"`               // Free-text native language
	Gender            *string      `json:"gender,omitempty" db:"gender"`                      // Optional free-text gender
	Capacity          int          `json:"capacity" db:"capacity" example:"3"`                // Maximum concurrently approved students (>= 1)
	CurrentMatches    int          `json:"currentMatches" db:"current_matches" example:"1"`   // Approved students right now; never exceeds Capacity
	IsActive          bool         `json:"isActive" db:"is_active"`                           // Whether the volunteer accepts new pairings
	ScholarshipActive bool         `json:"scholarshipActive" db:"scholarship_active"`         // Program participation gate
	Coordinates       *Coordinates `json:"coordinates,omitempty"`                             // Nullable until geocoded
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
}

// RemainingCapacity returns how many more students the volunteer can take
func (v *Volunteer) RemainingCapacity() int {
	remaining := v.Capacity - v.CurrentMatches
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsEligible reports whether the volunteer may enter a matching run at all
func (v *Volunteer) IsEligible() bool {
	return v.IsActive && v.ScholarshipActive && v.RemainingCapacity() > 0
}
