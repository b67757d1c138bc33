package models

import "time"

// Student defines the student model based on the 'students' table.
// City, native language and gender come from uncontrolled free-text intake
// (spreadsheet import or manual entry), so they are plain strings rather than
// enums. Language comparison is case-sensitive; special-request matching is
// case-insensitive substring.
type Student struct {
	ID             string     `json:"id" db:"id" example:"7b0e6f2a-3a41-4c8e-9f11-6a2f0c9d4b21"` // Unique identifier (UUID)
	FullName       string     `json:"fullName" db:"full_name" example:"Dana Levi"`               // Student's full name
	Email          string     `json:"email" db:"email" example:"dana@example.com"`               // Contact email
	Phone          string     `json:"phone" db:"phone" example:"+972501234567"`                  // Contact phone
	City           string     `json:"city" db:"city" example:"Haifa"`                            // Free-text city name
	NativeLanguage string     `json:"nativeLanguage" db:"native_language" example:"Russian"`     // Free-text native language
	Gender         *string    `json:"gender,omitempty" db:"gender" example:"female"`             // Optional free-text gender
	SpecialRequest *string    `json:"specialRequest,omitempty" db:"special_request"`             // Free-text placement notes
	Coordinates    *Coordinates `json:"coordinates,omitempty"`                                   // Nullable until geocoded
	IsMatched      bool       `json:"isMatched" db:"is_matched" example:"false"`                 // True iff the student has exactly one approved match
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`                                 // Timestamp when the record was created
}
